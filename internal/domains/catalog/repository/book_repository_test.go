package repository_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/database"
)

func TestBookRepository_AddAndGet(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")
	b := r.addBook(t, "The Shining", "12.99", 3, king, horror)
	assert.NotZero(t, b.ID)

	got, err := r.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "The Shining", got.Title)
	assert.True(t, decimal.RequireFromString("12.99").Equal(got.Price), "price %s", got.Price)
	assert.Equal(t, 3, got.QuantityAvailable)
	assert.Equal(t, catalog.Author{ID: king.ID, Name: "Stephen King"}, got.Author)
	assert.Equal(t, catalog.Genre{ID: horror.ID, Name: "Horror"}, got.Genre)
}

func TestBookRepository_GetByID_Absent(t *testing.T) {
	r := setupRepos(t)

	got, err := r.books.GetByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookRepository_Add_UnknownReferences(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")

	err := r.books.Add(ctx, &catalog.Book{
		Title:    "Orphan",
		Price:    decimal.NewFromInt(1),
		AuthorID: king.ID,
		GenreID:  999,
	})
	assert.ErrorIs(t, err, database.ErrIntegrityViolation)

	err = r.books.Add(ctx, &catalog.Book{
		Title:    "Orphan",
		Price:    decimal.NewFromInt(1),
		AuthorID: 999,
		GenreID:  999,
	})
	assert.ErrorIs(t, err, database.ErrIntegrityViolation)

	all, err := r.books.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestBookRepository_RejectsInvalid(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")

	tests := []struct {
		name string
		book catalog.Book
	}{
		{"blank title", catalog.Book{Title: " ", Price: decimal.NewFromInt(1)}},
		{"negative price", catalog.Book{Title: "It", Price: decimal.NewFromInt(-1)}},
		{"sub-cent price", catalog.Book{Title: "It", Price: decimal.RequireFromString("1.999")}},
		{"negative quantity", catalog.Book{Title: "It", Price: decimal.NewFromInt(1), QuantityAvailable: -1}},
		{"price over column range", catalog.Book{Title: "It", Price: decimal.RequireFromString("10000000000.00")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.book
			b.AuthorID, b.GenreID = king.ID, horror.ID
			assert.ErrorIs(t, r.books.Add(ctx, &b), catalog.ErrInvalidEntity)
		})
	}
}

func TestBookRepository_UpdatePrice(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")
	b := r.addBook(t, "The Shining", "12.99", 3, king, horror)

	b.Price = decimal.RequireFromString("15.50")
	require.NoError(t, r.books.Update(ctx, b))

	got, err := r.books.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("15.5").Equal(got.Price), "price %s", got.Price)
	assert.Equal(t, "The Shining", got.Title)
	assert.Equal(t, 3, got.QuantityAvailable)
}

func TestBookRepository_Update_MovesBetweenOwners(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	straub := r.addAuthor(t, "Peter Straub")
	horror := r.addGenre(t, "Horror")
	b := r.addBook(t, "The Talisman", "9.99", 1, king, horror)

	b.AuthorID = straub.ID
	require.NoError(t, r.books.Update(ctx, b))

	gotKing, err := r.authors.GetByID(ctx, king.ID)
	require.NoError(t, err)
	assert.Empty(t, gotKing.Books)

	gotStraub, err := r.authors.GetByID(ctx, straub.ID)
	require.NoError(t, err)
	require.Len(t, gotStraub.Books, 1)
	assert.Equal(t, b.ID, gotStraub.Books[0].ID)

	b.GenreID = 999
	assert.ErrorIs(t, r.books.Update(ctx, b), database.ErrIntegrityViolation)
}

func TestBookRepository_UpdateAndRemove_Missing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")

	missing := &catalog.Book{ID: 77, Title: "Ghost", Price: decimal.Zero, AuthorID: king.ID, GenreID: horror.ID}
	assert.ErrorIs(t, r.books.Update(ctx, missing), catalog.ErrNotFound)
	assert.ErrorIs(t, r.books.Remove(ctx, missing), catalog.ErrNotFound)
}

func TestBookRepository_Remove(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")
	shining := r.addBook(t, "The Shining", "12.99", 3, king, horror)
	it := r.addBook(t, "It", "15.00", 1, king, horror)

	require.NoError(t, r.books.Remove(ctx, shining))

	all, err := r.books.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"It"}, titles(all))
	assert.Equal(t, it.ID, all[0].ID)

	author, err := r.authors.GetByID(ctx, king.ID)
	require.NoError(t, err)
	require.NotNil(t, author)
	assert.Len(t, author.Books, 1)
}

func TestBookRepository_Search(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	tolkien := r.addAuthor(t, "J.R.R. Tolkien")
	horror := r.addGenre(t, "Horror")
	fantasy := r.addGenre(t, "Fantasy")
	r.addBook(t, "The Shining", "12.99", 3, king, horror)
	r.addBook(t, "The Hobbit", "10.00", 5, tolkien, fantasy)
	r.addBook(t, "The Dark Tower", "20.00", 2, king, fantasy)
	r.addBook(t, "100% Shining_Stars", "1.00", 1, tolkien, horror)

	tests := []struct {
		name   string
		search func(context.Context, string) ([]catalog.BookWithRelations, error)
		query  string
		want   []string
	}{
		{"title empty matches all", r.books.SearchByTitle, "", []string{"The Shining", "The Hobbit", "The Dark Tower", "100% Shining_Stars"}},
		{"title case insensitive", r.books.SearchByTitle, "SHINING", []string{"The Shining", "100% Shining_Stars"}},
		{"title no match", r.books.SearchByTitle, "zzz", []string{}},
		{"title percent is literal", r.books.SearchByTitle, "%", []string{"100% Shining_Stars"}},
		{"title underscore is literal", r.books.SearchByTitle, "g_s", []string{"100% Shining_Stars"}},
		{"author substring", r.books.SearchByAuthor, "king", []string{"The Shining", "The Dark Tower"}},
		{"author empty matches all", r.books.SearchByAuthor, "", []string{"The Shining", "The Hobbit", "The Dark Tower", "100% Shining_Stars"}},
		{"genre substring", r.books.SearchByGenre, "FANT", []string{"The Hobbit", "The Dark Tower"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.search(ctx, tt.query)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestBookRepository_SearchByAuthor_CarriesRelations(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")
	r.addBook(t, "It", "15.00", 1, king, horror)

	got, err := r.books.SearchByAuthor(ctx, "stephen")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Stephen King", got[0].Author.Name)
	assert.Equal(t, "Horror", got[0].Genre.Name)
}

// A full catalog session: authors, genres and books created, read back,
// searched, updated and removed through the three repositories.
func TestCatalog_EndToEnd(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")
	shining := r.addBook(t, "The Shining", "12.99", 3, king, horror)
	r.addBook(t, "It", "15.00", 0, king, horror)

	author, err := r.authors.GetByID(ctx, king.ID)
	require.NoError(t, err)
	require.NotNil(t, author)
	assert.Len(t, author.Books, 2)

	found, err := r.books.SearchByAuthor(ctx, "king")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Shining", "It"}, titles(found))

	shining.QuantityAvailable = 2
	require.NoError(t, r.books.Update(ctx, shining))

	got, err := r.books.GetByID(ctx, shining.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.QuantityAvailable)

	require.NoError(t, r.genres.Remove(ctx, horror))

	author, err = r.authors.GetByID(ctx, king.ID)
	require.NoError(t, err)
	require.NotNil(t, author)
	assert.Empty(t, author.Books)

	all, err := r.books.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCatalog_StephenKingScenario(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	king := r.addAuthor(t, "Stephen King")
	horror := r.addGenre(t, "Horror")
	shining := r.addBook(t, "The Shining", "10.99", 5, king, horror)

	got, err := r.books.GetByID(ctx, shining.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Stephen King", got.Author.Name)
	assert.Equal(t, "Horror", got.Genre.Name)
	assert.Equal(t, "10.99", got.Price.StringFixed(2))
	assert.Equal(t, 5, got.QuantityAvailable)

	found, err := r.books.SearchByAuthor(ctx, "king")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, shining.ID, found[0].ID)
}

func TestBookRepository_Search_NonASCII(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	zola := r.addAuthor(t, "Émile Zola")
	novel := r.addGenre(t, "Roman ÉPIQUE")
	r.addBook(t, "L'Œuvre", "8.00", 2, zola, novel)
	r.addBook(t, "Germinal", "9.50", 4, zola, novel)

	tests := []struct {
		name   string
		search func(context.Context, string) ([]catalog.BookWithRelations, error)
		query  string
		want   []string
	}{
		{"author exact", r.books.SearchByAuthor, "Émile Zola", []string{"L'Œuvre", "Germinal"}},
		{"author lower", r.books.SearchByAuthor, "émile", []string{"L'Œuvre", "Germinal"}},
		{"author upper", r.books.SearchByAuthor, "ÉMILE ZOLA", []string{"L'Œuvre", "Germinal"}},
		{"genre folded", r.books.SearchByGenre, "épique", []string{"L'Œuvre", "Germinal"}},
		{"title ligature", r.books.SearchByTitle, "œuvre", []string{"L'Œuvre"}},
		{"accents not stripped", r.books.SearchByAuthor, "emile", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}
