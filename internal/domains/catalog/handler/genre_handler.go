package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/shared/response"
)

type GenreHandler struct {
	repo catalog.GenreRepository
}

func NewGenreHandler(repo catalog.GenreRepository) *GenreHandler {
	return &GenreHandler{repo: repo}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /api/v1/genres, GET /api/v1/genres/:id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) GetAll(c *gin.Context) {
	genres, err := h.repo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, genres)
}

func (h *GenreHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	g, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if g == nil {
		response.NotFound(c, "genre not found")
		return
	}
	response.Success(c, http.StatusOK, g)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /api/v1/genres
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Create(c *gin.Context) {
	var req GenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	g := req.toEntity(0)
	if err := h.repo.Add(c.Request.Context(), g); err != nil {
		respondError(c, err)
		return
	}
	response.Created(c, location(c, g.ID), g)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /api/v1/genres/:id
// ════════════════════════════════════════════════════════════════

func (h *GenreHandler) Update(c *gin.Context) {
	pathID, ok := parseID(c)
	if !ok {
		return
	}

	var req GenreRequest
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
// DELETE: DELETE /api/v1/genres/:id
// ════════════════════════════════════════════════════════════════

// Delete removes the genre and, through the schema, its books.
func (h *GenreHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	g, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if g == nil {
		response.NotFound(c, "genre not found")
		return
	}

	if err := h.repo.Remove(c.Request.Context(), &g.Genre); err != nil {
		respondError(c, err)
		return
	}
	response.NoContent(c)
}
