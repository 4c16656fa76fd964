package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/domains/catalog/repository"
	"bookstore-catalog/internal/infrastructure/database"
)

type repos struct {
	gw      *database.Gateway
	authors catalog.AuthorRepository
	genres  catalog.GenreRepository
	books   catalog.BookRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()

	gw, err := database.OpenSQLiteMemory(context.Background(), uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = gw.Close() })

	return repos{
		gw:      gw,
		authors: repository.NewAuthorRepository(gw),
		genres:  repository.NewGenreRepository(gw),
		books:   repository.NewBookRepository(gw),
	}
}

func (r repos) addAuthor(t *testing.T, name string) *catalog.Author {
	t.Helper()
	a := &catalog.Author{Name: name}
	require.NoError(t, r.authors.Add(context.Background(), a))
	return a
}

func (r repos) addGenre(t *testing.T, name string) *catalog.Genre {
	t.Helper()
	g := &catalog.Genre{Name: name}
	require.NoError(t, r.genres.Add(context.Background(), g))
	return g
}

func (r repos) addBook(t *testing.T, title, price string, qty int, a *catalog.Author, g *catalog.Genre) *catalog.Book {
	t.Helper()
	b := &catalog.Book{
		Title:             title,
		Price:             decimal.RequireFromString(price),
		QuantityAvailable: qty,
		AuthorID:          a.ID,
		GenreID:           g.ID,
	}
	require.NoError(t, r.books.Add(context.Background(), b))
	return b
}

func titles(books []catalog.BookWithRelations) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.Title)
	}
	return out
}
