package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devcopilot/assistant-api/internal/core/domain"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

// SearchHandler serves semantic lookup over previously generated snippets and
// the supported-language listing.
type SearchHandler struct {
	index ports.SnippetIndex
}

func NewSearchHandler(index ports.SnippetIndex) *SearchHandler {
	return &SearchHandler{index: index}
}

// Search handles GET /api/semantic-search.
//
// @Summary      Search generated snippets by meaning
// @Tags         search
// @Produce      json
// @Param        query     query     string  true   "Free-text query"
// @Param        language  query     string  false  "Restrict to one language"
// @Param        limit     query     int     false  "Maximum results (default 5)"
// @Success      200       {object}  searchResponse
// @Failure      400       {object}  map[string]string
// @Router       /api/semantic-search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	matches, err := h.index.Search(c.Request().Context(), query, c.QueryParam("language"), limit)
	if err != nil {
		return err
	}

	results := make([]searchResultItem, 0, len(matches))
	for _, m := range matches {
		results = append(results, searchResultItem{
			Code:        m.Code,
			Description: m.Description,
			Language:    m.Language,
			Score:       m.Score,
		})
	}

	return c.JSON(http.StatusOK, searchResponse{Results: results})
}

// Languages handles GET /api/languages.
//
// @Summary      List supported languages
// @Tags         search
// @Produce      json
// @Success      200  {object}  languagesResponse
// @Router       /api/languages [get]
func (h *SearchHandler) Languages(c echo.Context) error {
	return c.JSON(http.StatusOK, languagesResponse{Languages: domain.SupportedLanguages})
}
