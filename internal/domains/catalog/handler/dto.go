package handler

import (
	"github.com/shopspring/decimal"

	"bookstore-catalog/internal/domains/catalog"
)

// AuthorRequest - POST /api/v1/authors, PUT /api/v1/authors/:id
type AuthorRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r AuthorRequest) toEntity(id int64) *catalog.Author {
	return &catalog.Author{ID: id, Name: r.Name}
}

// GenreRequest - POST /api/v1/genres, PUT /api/v1/genres/:id
type GenreRequest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r GenreRequest) toEntity(id int64) *catalog.Genre {
	return &catalog.Genre{ID: id, Name: r.Name}
}

// BookRequest - POST /api/v1/books, PUT /api/v1/books/:id
// Price accepts a JSON string or number.
type BookRequest struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available"`
	AuthorID          int64           `json:"author_id"`
	GenreID           int64           `json:"genre_id"`
}

func (r BookRequest) toEntity(id int64) *catalog.Book {
	return &catalog.Book{
		ID:                id,
		Title:             r.Title,
		Price:             r.Price,
		QuantityAvailable: r.QuantityAvailable,
		AuthorID:          r.AuthorID,
		GenreID:           r.GenreID,
	}
}

// BookSummary is a book in a search result, with its author and genre names.
type BookSummary struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available"`
	AuthorID          int64           `json:"author_id"`
	AuthorName        string          `json:"author_name"`
	GenreID           int64           `json:"genre_id"`
	GenreName         string          `json:"genre_name"`
}

func toBookSummary(b catalog.BookWithRelations, _ int) BookSummary {
	return BookSummary{
		ID:                b.ID,
		Title:             b.Title,
		Price:             b.Price,
		QuantityAvailable: b.QuantityAvailable,
		AuthorID:          b.Author.ID,
		AuthorName:        b.Author.Name,
		GenreID:           b.Genre.ID,
		GenreName:         b.Genre.Name,
	}
}
