package repository

import (
	"context"

	"github.com/samber/lo"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/database"
)

// authorRepository implements catalog.AuthorRepository over the storage gateway.
type authorRepository struct {
	authors ownerTable
}

// NewAuthorRepository creates a new author repository instance
func NewAuthorRepository(gw *database.Gateway) catalog.AuthorRepository {
	return &authorRepository{
		authors: ownerTable{gw: gw, table: "authors", fk: "author_id"},
	}
}

func toAuthor(o owner) catalog.AuthorWithBooks {
	return catalog.AuthorWithBooks{
		Author: catalog.Author{ID: o.ID, Name: o.Name},
		Books:  o.Books,
	}
}

// GetByID retrieves author by id with its books
func (r *authorRepository) GetByID(ctx context.Context, id int64) (*catalog.AuthorWithBooks, error) {
	o, err := r.authors.getByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	a := toAuthor(*o)
	return &a, nil
}

func (r *authorRepository) GetAll(ctx context.Context) ([]catalog.AuthorWithBooks, error) {
	owners, err := r.authors.load(ctx, nil)
	if err != nil {
		return nil, err
	}
	return lo.Map(owners, func(o owner, _ int) catalog.AuthorWithBooks { return toAuthor(o) }), nil
}

func (r *authorRepository) Add(ctx context.Context, a *catalog.Author) error {
	if err := a.Validate(); err != nil {
		return err
	}
	id, err := r.authors.insert(ctx, a.Name)
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

func (r *authorRepository) Update(ctx context.Context, a *catalog.Author) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return r.authors.update(ctx, a.ID, a.Name)
}

func (r *authorRepository) Remove(ctx context.Context, a *catalog.Author) error {
	return r.authors.delete(ctx, a.ID)
}
