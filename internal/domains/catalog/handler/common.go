package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"bookstore-catalog/internal/domains/catalog"
	"bookstore-catalog/internal/shared/response"
)

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, fmt.Sprintf("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// resolveBodyID reconciles the id in a replace body with the path id.
// Zero means the path id.
func resolveBodyID(c *gin.Context, pathID, bodyID int64) (int64, bool) {
	if bodyID != 0 && bodyID != pathID {
		response.BadRequest(c, fmt.Sprintf("body id %d does not match path id %d", bodyID, pathID))
		return 0, false
	}
	return pathID, true
}

// location is the URL of a resource created under the request's collection path.
func location(c *gin.Context, id int64) string {
	return strings.TrimSuffix(c.Request.URL.Path, "/") + "/" + strconv.FormatInt(id, 10)
}

// respondError writes the error envelope for a repository failure.
// Server side failures are logged and reported with a generic message.
func respondError(c *gin.Context, err error) {
	status := catalog.ToHTTPStatus(err)
	code := catalog.ToErrorCode(err)

	switch {
	case status >= http.StatusInternalServerError:
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg("Request failed")

		if status == http.StatusServiceUnavailable {
			response.ErrorResponse(c, status, code, "Storage unavailable")
			return
		}
		response.InternalServerError(c, "Internal server error")

	case errors.Is(err, catalog.ErrInvalidEntity):
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ErrorWithDetails(c, status, code, "Invalid entity", verrs)
			return
		}
		response.ErrorResponse(c, status, code, err.Error())

	case status == http.StatusConflict:
		response.ErrorResponse(c, status, code, "Referenced entity does not exist or constraint violated")

	default:
		response.ErrorResponse(c, status, code, err.Error())
	}
}
