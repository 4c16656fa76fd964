package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/shared/response"
)

type AuthorHandler struct {
	repo catalog.AuthorRepository
}

func NewAuthorHandler(repo catalog.AuthorRepository) *AuthorHandler {
	return &AuthorHandler{repo: repo}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/authors, GET /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetAll(c *gin.Context) {
	authors, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, authors)
}

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if a == nil {
		response.NotFound(c, "author not found")
		return
	}
	response.Success(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	a := req.toEntity(0)
	if err := h.repo.Add(c.Request.Context(), a); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, location(c, a.ID), a)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	pathID, ok := parseID(c)
	if !ok {
		return
	}

	var req AuthorRequest
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
// DELETE: DELETE /api/v1/authors/:id
// ════════════════════════════════════════════════════════════════

// Delete removes the author and, through the schema, its books.
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	a, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if a == nil {
		response.NotFound(c, "author not found")
		return
	}

	if err := h.repo.Remove(c.Request.Context(), &a.Author); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
