package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/shared/response"
)

type BookHandler struct {
	repo catalog.BookRepository
}

func NewBookHandler(repo catalog.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/books, GET /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) GetAll(c *gin.Context) {
	books, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, books)
}

func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if b == nil {
		response.NotFound(c, "book not found")
		return
	}
	response.Success(c, http.StatusOK, b)
}

// ════════════════════════════════════════════════════════════════
// SEARCH: GET /api/v1/books/search/{title,author,genre}?<field>=
// ════════════════════════════════════════════════════════════════

// An empty or missing query matches every book. A search never 404s.
func (h *BookHandler) search(param string, fn func(context.Context, string) ([]catalog.BookWithRelations, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		books, err := fn(c.Request.Context(), c.Query(param))
		if err != nil {
			respondError(c, err)
			return
		}
		response.Success(c, http.StatusOK, lo.Map(books, toBookSummary))
	}
}

func (h *BookHandler) SearchByTitle() gin.HandlerFunc {
	return h.search("title", h.repo.SearchByTitle)
}

func (h *BookHandler) SearchByAuthor() gin.HandlerFunc {
	return h.search("author", h.repo.SearchByAuthor)
}

func (h *BookHandler) SearchByGenre() gin.HandlerFunc {
	return h.search("genre", h.repo.SearchByGenre)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/books
// ════════════════════════════════════════════════════════════════

// Create adds a book. Unknown author_id or genre_id answer 409.
func (h *BookHandler) Create(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	b := req.toEntity(0)
	if err := h.repo.Add(c.Request.Context(), b); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, location(c, b.ID), b)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Update(c *gin.Context) {
	pathID, ok := parseID(c)
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	id, ok := resolveBodyID(c, pathID, req.ID)
	if !ok {
		return
	}

	if err := h.repo.Update(c.Request.Context(), req.toEntity(id)); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /api/v1/books/:id
// ════════════════════════════════════════════════════════════════

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if b == nil {
		response.NotFound(c, "book not found")
		return
	}

	if err := h.repo.Remove(c.Request.Context(), &b.Book); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
