package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcopilot/assistant-api/internal/core/domain"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

// PreferencesHandler serves per-user assistant defaults. Both routes sit
// behind the required auth middleware.
type PreferencesHandler struct {
	prefs ports.PreferenceRepository
}

func NewPreferencesHandler(prefs ports.PreferenceRepository) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

type updatePreferencesRequest struct {
	Values map[string]string `json:"values" validate:"required"`
}

// Get handles GET /api/preferences.
//
// @Summary      Fetch the caller's preferences
// @Tags         preferences
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Preferences
// @Failure      401  {object}  map[string]string
// @Router       /api/preferences [get]
func (h *PreferencesHandler) Get(c echo.Context) error {
	_, userID, ok := ctxIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	prefs, err := h.prefs.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, prefs)
}

// Update handles PUT /api/preferences.
//
// @Summary      Replace the caller's preferences
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePreferencesRequest  true  "Preference values"
// @Success      200   {object}  domain.Preferences
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/preferences [put]
func (h *PreferencesHandler) Update(c echo.Context) error {
	_, userID, ok := ctxIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req updatePreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	prefs := &domain.Preferences{UserID: userID, Values: req.Values}
	if err := h.prefs.Upsert(c.Request().Context(), prefs); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, prefs)
}
