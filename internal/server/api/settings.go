// Package api provides HTTP API handlers for the Airbrush drawing system.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/airbrush/internal/app"
	"github.com/ayusman/airbrush/internal/canvas"
)

// SettingsHandler handles HTTP requests for the drawing settings.
type SettingsHandler struct {
	app *app.App
}

// NewSettingsHandler creates a new SettingsHandler over the given app.
func NewSettingsHandler(a *app.App) *SettingsHandler {
	return &SettingsHandler{app: a}
}

// ServeHTTP implements the http.Handler interface.
func (h *SettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type updateSettingsRequest struct {
	BrushSize      *int    `json:"brush_size"`
	BrushColor     *string `json:"brush_color"`
	SmoothingLevel *int    `json:"smoothing_level"`
	Eraser         *bool   `json:"eraser"`
}

type settingsResponse struct {
	BrushSize      int    `json:"brush_size"`
	BrushColor     string `json:"brush_color"`
	SmoothingLevel int    `json:"smoothing_level"`
	Eraser         bool   `json:"eraser"`
	Enabled        bool   `json:"enabled"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toSettingsResponse converts the live settings to their wire form.
func (h *SettingsHandler) toSettingsResponse(s canvas.Settings) settingsResponse {
	return settingsResponse{
		BrushSize:      s.BrushSize,
		BrushColor:     canvas.FormatHexColor(s.BrushColor),
		SmoothingLevel: s.SmoothingLevel,
		Eraser:         s.Eraser,
		Enabled:        h.app.IsEnabled(),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// get handles GET /api/settings and returns the current settings.
func (h *SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.toSettingsResponse(h.app.Settings()))
}

// update handles PUT /api/settings. Absent fields keep their current
// values; out-of-range values are clamped, and the response reports what
// was actually applied.
func (h *SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	s := h.app.Settings()

	if req.BrushSize != nil {
		s.BrushSize = *req.BrushSize
	}
	if req.BrushColor != nil {
		s.BrushColor = canvas.ParseHexColor(*req.BrushColor, s.BrushColor)
	}
	if req.SmoothingLevel != nil {
		s.SmoothingLevel = *req.SmoothingLevel
	}
	if req.Eraser != nil {
		s.Eraser = *req.Eraser
	}

	applied := h.app.SetSettings(s)

	writeJSON(w, http.StatusOK, h.toSettingsResponse(applied))
}
