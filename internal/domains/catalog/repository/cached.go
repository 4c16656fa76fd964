package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/pkg/cache"
	"bookstore-catalog/pkg/logger"
)

// Cache keys. Every write drops the whole namespace: an author or genre
// change is visible through book reads and the other way round.
const (
	cacheNamespace = "catalog:"

	authorKeyPrefix = cacheNamespace + "author:"
	authorListKey   = cacheNamespace + "authors"
	genreKeyPrefix  = cacheNamespace + "genre:"
	genreListKey    = cacheNamespace + "genres"
	bookKeyPrefix   = cacheNamespace + "book:"
	bookListKey     = cacheNamespace + "books"
	bookSearchKey   = cacheNamespace + "books:search:"
)

// readThrough holds the cache shared by the decorators.
// Cache failures are logged and the call falls back to the store.
type readThrough struct {
	cache cache.Cache
	ttl   time.Duration
}

func (c readThrough) get(ctx context.Context, key string, dest interface{}) bool {
	found, err := c.cache.Get(ctx, key, dest)
	if err != nil {
		logger.Warn("[CACHE] get "+key, err)
		return false
	}
	return found
}

func (c readThrough) set(ctx context.Context, key string, value interface{}) {
	if err := c.cache.Set(ctx, key, value, c.ttl); err != nil {
		logger.Warn("[CACHE] set "+key, err)
	}
}

func (c readThrough) invalidate(ctx context.Context) {
	if err := c.cache.DeletePattern(ctx, cacheNamespace+"*"); err != nil {
		logger.Warn("[CACHE] invalidate catalog", err)
	}
}

// fetchOne caches a lookup. Absence is not cached.
func fetchOne[T any](ctx context.Context, c readThrough, key string, load func() (*T, error)) (*T, error) {
	var hit T
	if c.get(ctx, key, &hit) {
		return &hit, nil
	}

	v, err := load()
	if err != nil || v == nil {
		return v, err
	}
	c.set(ctx, key, v)
	return v, nil
}

func fetchList[T any](ctx context.Context, c readThrough, key string, load func() ([]T, error)) ([]T, error) {
	hit := []T{}
	if c.get(ctx, key, &hit) {
		return hit, nil
	}

	v, err := load()
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, v)
	return v, nil
}

// write runs a mutation and drops cached reads afterwards.
// The cache is dropped on failure too: a failed commit may still have applied.
func (c readThrough) write(ctx context.Context, fn func() error) error {
	err := fn()
	if !errors.Is(err, catalog.ErrInvalidEntity) {
		c.invalidate(ctx)
	}
	return err
}

func idKey(prefix string, id int64) string {
	return prefix + strconv.FormatInt(id, 10)
}

// Searches are case-insensitive, so keys are too.
func searchKey(field, query string) string {
	return bookSearchKey + field + ":" + strings.ToLower(query)
}

// ========================================
// AUTHORS
// ========================================

type cachedAuthorRepository struct {
	next catalog.AuthorRepository
	rt   readThrough
}

// NewCachedAuthorRepository decorates next with cache-aside reads.
func NewCachedAuthorRepository(next catalog.AuthorRepository, c cache.Cache, ttl time.Duration) catalog.AuthorRepository {
	return &cachedAuthorRepository{next: next, rt: readThrough{cache: c, ttl: ttl}}
}

func (r *cachedAuthorRepository) GetByID(ctx context.Context, id int64) (*catalog.AuthorWithBooks, error) {
	return fetchOne(ctx, r.rt, idKey(authorKeyPrefix, id), func() (*catalog.AuthorWithBooks, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *cachedAuthorRepository) GetAll(ctx context.Context) ([]catalog.AuthorWithBooks, error) {
	return fetchList(ctx, r.rt, authorListKey, func() ([]catalog.AuthorWithBooks, error) {
		return r.next.GetAll(ctx)
	})
}

func (r *cachedAuthorRepository) Add(ctx context.Context, a *catalog.Author) error {
	return r.rt.write(ctx, func() error { return r.next.Add(ctx, a) })
}

func (r *cachedAuthorRepository) Update(ctx context.Context, a *catalog.Author) error {
	return r.rt.write(ctx, func() error { return r.next.Update(ctx, a) })
}

func (r *cachedAuthorRepository) Remove(ctx context.Context, a *catalog.Author) error {
	return r.rt.write(ctx, func() error { return r.next.Remove(ctx, a) })
}

// ========================================
// GENRES
// ========================================

type cachedGenreRepository struct {
	next catalog.GenreRepository
	rt   readThrough
}

// NewCachedGenreRepository decorates next with cache-aside reads.
func NewCachedGenreRepository(next catalog.GenreRepository, c cache.Cache, ttl time.Duration) catalog.GenreRepository {
	return &cachedGenreRepository{next: next, rt: readThrough{cache: c, ttl: ttl}}
}

func (r *cachedGenreRepository) GetByID(ctx context.Context, id int64) (*catalog.GenreWithBooks, error) {
	return fetchOne(ctx, r.rt, idKey(genreKeyPrefix, id), func() (*catalog.GenreWithBooks, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *cachedGenreRepository) GetAll(ctx context.Context) ([]catalog.GenreWithBooks, error) {
	return fetchList(ctx, r.rt, genreListKey, func() ([]catalog.GenreWithBooks, error) {
		return r.next.GetAll(ctx)
	})
}

func (r *cachedGenreRepository) Add(ctx context.Context, g *catalog.Genre) error {
	return r.rt.write(ctx, func() error { return r.next.Add(ctx, g) })
}

func (r *cachedGenreRepository) Update(ctx context.Context, g *catalog.Genre) error {
	return r.rt.write(ctx, func() error { return r.next.Update(ctx, g) })
}

func (r *cachedGenreRepository) Remove(ctx context.Context, g *catalog.Genre) error {
	return r.rt.write(ctx, func() error { return r.next.Remove(ctx, g) })
}

// ========================================
// BOOKS
// ========================================

type cachedBookRepository struct {
	next catalog.BookRepository
	rt   readThrough
}

// NewCachedBookRepository decorates next with cache-aside reads.
func NewCachedBookRepository(next catalog.BookRepository, c cache.Cache, ttl time.Duration) catalog.BookRepository {
	return &cachedBookRepository{next: next, rt: readThrough{cache: c, ttl: ttl}}
}

func (r *cachedBookRepository) GetByID(ctx context.Context, id int64) (*catalog.BookWithRelations, error) {
	return fetchOne(ctx, r.rt, idKey(bookKeyPrefix, id), func() (*catalog.BookWithRelations, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *cachedBookRepository) GetAll(ctx context.Context) ([]catalog.BookWithRelations, error) {
	return fetchList(ctx, r.rt, bookListKey, func() ([]catalog.BookWithRelations, error) {
		return r.next.GetAll(ctx)
	})
}

func (r *cachedBookRepository) SearchByTitle(ctx context.Context, query string) ([]catalog.BookWithRelations, error) {
	return fetchList(ctx, r.rt, searchKey("title", query), func() ([]catalog.BookWithRelations, error) {
		return r.next.SearchByTitle(ctx, query)
	})
}

func (r *cachedBookRepository) SearchByAuthor(ctx context.Context, query string) ([]catalog.BookWithRelations, error) {
	return fetchList(ctx, r.rt, searchKey("author", query), func() ([]catalog.BookWithRelations, error) {
		return r.next.SearchByAuthor(ctx, query)
	})
}

func (r *cachedBookRepository) SearchByGenre(ctx context.Context, query string) ([]catalog.BookWithRelations, error) {
	return fetchList(ctx, r.rt, searchKey("genre", query), func() ([]catalog.BookWithRelations, error) {
		return r.next.SearchByGenre(ctx, query)
	})
}

func (r *cachedBookRepository) Add(ctx context.Context, b *catalog.Book) error {
	return r.rt.write(ctx, func() error { return r.next.Add(ctx, b) })
}

func (r *cachedBookRepository) Update(ctx context.Context, b *catalog.Book) error {
	return r.rt.write(ctx, func() error { return r.next.Update(ctx, b) })
}

func (r *cachedBookRepository) Remove(ctx context.Context, b *catalog.Book) error {
	return r.rt.write(ctx, func() error { return r.next.Remove(ctx, b) })
}
