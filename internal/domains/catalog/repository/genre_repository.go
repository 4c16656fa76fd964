package repository

import (
	"context"

	"github.com/samber/lo"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/database"
)

// genreRepository implements catalog.GenreRepository over the storage gateway.
type genreRepository struct {
	genres ownerTable
}

// NewGenreRepository creates a new genre repository instance
func NewGenreRepository(gw *database.Gateway) catalog.GenreRepository {
	return &genreRepository{
		genres: ownerTable{gw: gw, table: "genres", fk: "genre_id"},
	}
}

func toGenre(o owner) catalog.GenreWithBooks {
	return catalog.GenreWithBooks{
		Genre: catalog.Genre{ID: o.ID, Name: o.Name},
		Books: o.Books,
	}
}

// GetByID retrieves genre by id with its books
func (r *genreRepository) GetByID(ctx context.Context, id int64) (*catalog.GenreWithBooks, error) {
	o, err := r.genres.getByID(ctx, id)
	if err != nil || o == nil {
		return nil, err
	}
	g := toGenre(*o)
	return &g, nil
}

func (r *genreRepository) GetAll(ctx context.Context) ([]catalog.GenreWithBooks, error) {
	owners, err := r.genres.load(ctx, nil)
	if err != nil {
		return nil, err
	}
	return lo.Map(owners, func(o owner, _ int) catalog.GenreWithBooks { return toGenre(o) }), nil
}

func (r *genreRepository) Add(ctx context.Context, g *catalog.Genre) error {
	if err := g.Validate(); err != nil {
		return err
	}
	id, err := r.genres.insert(ctx, g.Name)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *genreRepository) Update(ctx context.Context, g *catalog.Genre) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return r.genres.update(ctx, g.ID, g.Name)
}

func (r *genreRepository) Remove(ctx context.Context, g *catalog.Genre) error {
	return r.genres.delete(ctx, g.ID)
}
