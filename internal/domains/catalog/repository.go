package catalog

import "context"

// AuthorRepository defines data access for authors.
// Every write commits before returning.
type AuthorRepository interface {
	// GetByID returns the author with its books, or nil, nil when no row matches.
	GetByID(ctx context.Context, id int64) (*AuthorWithBooks, error)

	GetAll(ctx context.Context) ([]AuthorWithBooks, error)

	// Add inserts the author and sets its ID.
	Add(ctx context.Context, author *Author) error

	// Update replaces every column of the stored row.
	Update(ctx context.Context, author *Author) error

	// Remove deletes the author. Books referencing it are deleted with it.
	Remove(ctx context.Context, author *Author) error
}

// GenreRepository defines data access for genres.
type GenreRepository interface {
	GetByID(ctx context.Context, id int64) (*GenreWithBooks, error)
	GetAll(ctx context.Context) ([]GenreWithBooks, error)
	Add(ctx context.Context, genre *Genre) error
	Update(ctx context.Context, genre *Genre) error

	// Remove deletes the genre. Books referencing it are deleted with it.
	Remove(ctx context.Context, genre *Genre) error
}

// BookRepository defines data access for books.
// Search methods match a case-insensitive substring and never return nil.
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (*BookWithRelations, error)
	GetAll(ctx context.Context) ([]BookWithRelations, error)
	Add(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Remove(ctx context.Context, book *Book) error

	SearchByTitle(ctx context.Context, query string) ([]BookWithRelations, error)
	SearchByAuthor(ctx context.Context, query string) ([]BookWithRelations, error)
	SearchByGenre(ctx context.Context, query string) ([]BookWithRelations, error)
}
