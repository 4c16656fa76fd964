package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/infrastructure/database"
	"bookstore-catalog/pkg/logger"
)

var bookColumns = []string{
	"b.id", "b.title", "b.price", "b.quantity_available", "b.author_id", "b.genre_id",
}

// nullBook holds the book side of an owner LEFT JOIN books row.
type nullBook struct {
	ID                sql.NullInt64
	Title             sql.NullString
	Price             decimal.NullDecimal
	QuantityAvailable sql.NullInt64
	AuthorID          sql.NullInt64
	GenreID           sql.NullInt64
}

func (n *nullBook) dest() []interface{} {
	return []interface{}{&n.ID, &n.Title, &n.Price, &n.QuantityAvailable, &n.AuthorID, &n.GenreID}
}

func (n *nullBook) book() (catalog.Book, bool) {
	if !n.ID.Valid {
		return catalog.Book{}, false
	}
	return catalog.Book{
		ID:                n.ID.Int64,
		Title:             n.Title.String,
		Price:             n.Price.Decimal,
		QuantityAvailable: int(n.QuantityAvailable.Int64),
		AuthorID:          n.AuthorID.Int64,
		GenreID:           n.GenreID.Int64,
	}, true
}

// owner is the shared shape of authors and genres: a named row owning books.
type owner struct {
	ID    int64
	Name  string
	Books []catalog.Book
}

// ownerTable implements the storage of a named table referenced by books.fk.
// Author and Genre repositories only differ in table and fk.
type ownerTable struct {
	gw    *database.Gateway
	table string
	fk    string
}

// load fetches owners and their books in one statement.
// Rows arrive ordered by owner id so books can be grouped in a single pass.
func (t ownerTable) load(ctx context.Context, where squirrel.Sqlizer) ([]owner, error) {
	q := t.gw.Builder().
		Select(append([]string{"o.id", "o.name"}, bookColumns...)...).
		From(t.table+" o").
		LeftJoin("books b ON b."+t.fk+" = o.id").
		OrderBy("o.id", "b.id")
	if where != nil {
		q = q.Where(where)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", t.table, err)
	}

	rows, err := t.gw.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, t.fail("load", err)
	}
	defer rows.Close()

	out := []owner{}
	for rows.Next() {
		var (
			id   int64
			name string
			nb   nullBook
		)
		if err := rows.Scan(append([]interface{}{&id, &name}, nb.dest()...)...); err != nil {
			return nil, t.fail("scan", err)
		}

		if len(out) == 0 || out[len(out)-1].ID != id {
			out = append(out, owner{ID: id, Name: name, Books: []catalog.Book{}})
		}
		if b, ok := nb.book(); ok {
			last := &out[len(out)-1]
			last.Books = append(last.Books, b)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, t.fail("iterate", err)
	}

	return out, nil
}

func (t ownerTable) getByID(ctx context.Context, id int64) (*owner, error) {
	owners, err := t.load(ctx, squirrel.Eq{"o.id": id})
	if err != nil {
		return nil, err
	}
	if len(owners) == 0 {
		return nil, nil
	}
	return &owners[0], nil
}

func (t ownerTable) insert(ctx context.Context, name string) (int64, error) {
	query, args, err := t.gw.Builder().
		Insert(t.table).
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s insert: %w", t.table, err)
	}

	id, err := database.TxResult(ctx, t.gw, func(tx *sql.Tx) (int64, error) {
		var id int64
		err := tx.QueryRowContext(ctx, query, args...).Scan(&id)
		return id, err
	})
	if err != nil {
		return 0, t.fail("insert", err)
	}
	return id, nil
}

func (t ownerTable) update(ctx context.Context, id int64, name string) error {
	query, args, err := t.gw.Builder().
		Update(t.table).
		Set("name", name).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build %s update: %w", t.table, err)
	}

	return t.execOne(ctx, "update", query, args)
}

// delete removes the row; the schema cascades to books.fk.
func (t ownerTable) delete(ctx context.Context, id int64) error {
	query, args, err := t.gw.Builder().
		Delete(t.table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build %s delete: %w", t.table, err)
	}

	return t.execOne(ctx, "delete", query, args)
}

func (t ownerTable) execOne(ctx context.Context, op, query string, args []interface{}) error {
	return execOne(ctx, t.gw, t.table, op, query, args)
}

func (t ownerTable) fail(op string, err error) error {
	return fail(t.table, op, err)
}

// execOne runs a single-row write in its own transaction.
// A statement matching no row reports catalog.ErrNotFound.
func execOne(ctx context.Context, gw *database.Gateway, table, op, query string, args []interface{}) error {
	err := gw.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return catalog.ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return err
		}
		return fail(table, op, err)
	}
	return nil
}

func fail(table, op string, err error) error {
	err = database.TranslateError(err)
	logger.Error(fmt.Sprintf("%s %s: database error", table, op), err)
	return fmt.Errorf("%s %s: %w", table, op, err)
}

// likePattern builds a LIKE pattern matching query as a lower-cased substring.
// Wildcards in query match literally.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}

// containsFold matches column against query, see likePattern.
// Both sides are folded with strings.ToLower semantics.
func containsFold(d database.Dialect, column, query string) squirrel.Sqlizer {
	return squirrel.Expr(d.Fold(column)+" LIKE ? ESCAPE '\\'", likePattern(query))
}
