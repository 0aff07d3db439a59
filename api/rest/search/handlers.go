package search

import (
	"net/http"

	"codeberg.org/openshelf/server/internal/errors"
	"codeberg.org/openshelf/server/internal/llm"
	"codeberg.org/openshelf/server/internal/retriever"
	"github.com/gin-gonic/gin"
)

// returns a handler that searches the given provider's embedding column.
// Validation happens before any embedding call so a bad request never pays
// a provider round trip.
func SearchHandler(searcher Searcher, provider llm.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		limit := defaultLimit
		if req.Limit != nil {
			limit = *req.Limit
		}

		if limit <= 0 {
			errors.BadRequest(c, "limit must be a positive integer", nil)
			return
		}

		results, err := searcher.Search(c.Request.Context(), provider, req.Query, limit)
		if err != nil {
			errors.InternalError(c, "search failed", err)
			return
		}

		if results == nil {
			results = []retriever.Result{}
		}

		c.JSON(http.StatusOK, results)
	}
}
