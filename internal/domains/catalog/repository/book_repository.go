package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/database"
)

const booksTable = "books"

// bookRepository implements catalog.BookRepository over the storage gateway.
type bookRepository struct {
	gw *database.Gateway
}

// NewBookRepository creates a new book repository instance
func NewBookRepository(gw *database.Gateway) catalog.BookRepository {
	return &bookRepository{gw: gw}
}

// ========================================
// READ
// ========================================

// list fetches books joined with their author and genre.
func (r *bookRepository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]catalog.BookWithRelations, error) {
	q := r.gw.Builder().
		Select(append(bookColumns, "a.id", "a.name", "g.id", "g.name")...).
		From(booksTable+" b").
		Join("authors a ON a.id = b.author_id").
		Join("genres g ON g.id = b.genre_id").
		OrderBy("b.id")
	if where != nil {
		q = q.Where(where)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build books query: %w", err)
	}

	rows, err := r.gw.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fail(booksTable, op, err)
	}
	defer rows.Close()

	out := []catalog.BookWithRelations{}
	for rows.Next() {
		var b catalog.BookWithRelations
		if err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Price,
			&b.QuantityAvailable,
			&b.AuthorID,
			&b.GenreID,
			&b.Author.ID,
			&b.Author.Name,
			&b.Genre.ID,
			&b.Genre.Name,
		); err != nil {
			return nil, fail(booksTable, op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fail(booksTable, op, err)
	}

	return out, nil
}

// GetByID retrieves a book with its author and genre, or nil, nil when absent.
func (r *bookRepository) GetByID(ctx context.Context, id int64) (*catalog.BookWithRelations, error) {
	books, err := r.list(ctx, "get", squirrel.Eq{"b.id": id})
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, nil
	}
	return &books[0], nil
}

func (r *bookRepository) GetAll(ctx context.Context) ([]catalog.BookWithRelations, error) {
	return r.list(ctx, "list", nil)
}

// ========================================
// SEARCH
// ========================================

func (r *bookRepository) SearchByTitle(ctx context.Context, query string) ([]catalog.BookWithRelations, error) {
	return r.list(ctx, "search by title", containsFold(r.gw.Dialect, "b.title", query))
}

func (r *bookRepository) SearchByAuthor(ctx context.Context, query string) ([]catalog.BookWithRelations, error) {
	return r.list(ctx, "search by author", containsFold(r.gw.Dialect, "a.name", query))
}

func (r *bookRepository) SearchByGenre(ctx context.Context, query string) ([]catalog.BookWithRelations, error) {
	return r.list(ctx, "search by genre", containsFold(r.gw.Dialect, "g.name", query))
}

// ========================================
// WRITE
// ========================================

// Add inserts the book and sets its ID. Unknown author or genre ids
// surface as database.ErrIntegrityViolation.
func (r *bookRepository) Add(ctx context.Context, b *catalog.Book) error {
	if err := b.Validate(); err != nil {
		return err
	}

	query, args, err := r.gw.Builder().
		Insert(booksTable).
		Columns("title", "price", "quantity_available", "author_id", "genre_id").
		Values(b.Title, b.Price, b.QuantityAvailable, b.AuthorID, b.GenreID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build books insert: %w", err)
	}

	id, err := database.TxResult(ctx, r.gw, func(tx *sql.Tx) (int64, error) {
		var id int64
		err := tx.QueryRowContext(ctx, query, args...).Scan(&id)
		return id, err
	})
	if err != nil {
		return fail(booksTable, "insert", err)
	}

	b.ID = id
	return nil
}

// Update replaces every column of the stored book.
func (r *bookRepository) Update(ctx context.Context, b *catalog.Book) error {
	if err := b.Validate(); err != nil {
		return err
	}

	query, args, err := r.gw.Builder().
		Update(booksTable).
		SetMap(map[string]interface{}{
			"title":              b.Title,
			"price":              b.Price,
			"quantity_available": b.QuantityAvailable,
			"author_id":          b.AuthorID,
			"genre_id":           b.GenreID,
		}).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build books update: %w", err)
	}

	return execOne(ctx, r.gw, booksTable, "update", query, args)
}

func (r *bookRepository) Remove(ctx context.Context, b *catalog.Book) error {
	query, args, err := r.gw.Builder().
		Delete(booksTable).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build books delete: %w", err)
	}

	return execOne(ctx, r.gw, booksTable, "delete", query, args)
}
