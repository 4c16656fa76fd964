package catalog

import (
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Constants for validation
const (
	MaxNameLength  = 255
	MaxTitleLength = 255
	PriceScale     = 2

	// MaxQuantity is the largest value of the INTEGER quantity column.
	MaxQuantity = math.MaxInt32
)

// MaxPrice is the largest value of the NUMERIC(12,2) price column.
var MaxPrice = decimal.RequireFromString("9999999999.99")

// Entities are stored in their own tables and reference each other by id only.
// Related records are attached to the read models below, which are always
// built from a fresh query.

// Author is a stored author row.
type Author struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Genre is a stored genre row.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Book is a stored book row. AuthorID and GenreID are required foreign keys.
type Book struct {
	ID                int64           `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable int             `json:"quantity_available"`
	AuthorID          int64           `json:"author_id"`
	GenreID           int64           `json:"genre_id"`
}

// AuthorWithBooks is an author together with every book referencing it.
type AuthorWithBooks struct {
	Author
	Books []Book `json:"books"`
}

// GenreWithBooks is a genre together with every book referencing it.
type GenreWithBooks struct {
	Genre
	Books []Book `json:"books"`
}

// BookWithRelations is a book together with its author and genre.
type BookWithRelations struct {
	Book
	Author Author `json:"author"`
	Genre  Genre  `json:"genre"`
}

// ========================================
// VALIDATION
// ========================================

var notBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
})

var nonNegativePrice = validation.By(func(value interface{}) error {
	price, _ := value.(decimal.Decimal)
	if price.IsNegative() {
		return validation.NewError("validation_negative_price", "must not be negative")
	}
	if price.GreaterThan(MaxPrice) {
		return validation.NewError("validation_price_too_large", "must be at most "+MaxPrice.StringFixed(PriceScale))
	}
	if !price.Equal(price.Round(PriceScale)) {
		return validation.NewError("validation_price_scale", "must have at most 2 decimal places")
	}
	return nil
})

// Validate checks the Author invariants.
func (a Author) Validate() error {
	return wrapInvalid(validation.ValidateStruct(&a,
		validation.Field(&a.Name, notBlank, validation.RuneLength(0, MaxNameLength)),
	))
}

// Validate checks the Genre invariants.
func (g Genre) Validate() error {
	return wrapInvalid(validation.ValidateStruct(&g,
		validation.Field(&g.Name, notBlank, validation.RuneLength(0, MaxNameLength)),
	))
}

// Validate checks the Book invariants. Referenced ids are checked by the store.
func (b Book) Validate() error {
	return wrapInvalid(validation.ValidateStruct(&b,
		validation.Field(&b.Title, notBlank, validation.RuneLength(0, MaxTitleLength)),
		validation.Field(&b.Price, nonNegativePrice),
		validation.Field(&b.QuantityAvailable, validation.Min(0), validation.Max(MaxQuantity)),
	))
}
