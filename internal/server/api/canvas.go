package api

import (
	"net/http"

	"github.com/ayusman/airbrush/internal/app"
)

// CanvasHandler handles HTTP requests for the drawing canvas.
type CanvasHandler struct {
	app *app.App
}

// NewCanvasHandler creates a new CanvasHandler over the given app.
func NewCanvasHandler(a *app.App) *CanvasHandler {
	return &CanvasHandler{app: a}
}

// ServeHTTP implements the http.Handler interface.
func (h *CanvasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.export(w, r)
	case http.MethodDelete:
		h.clear(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// export handles GET /api/canvas and returns the canvas flattened over
// black as a PNG.
func (h *CanvasHandler) export(w http.ResponseWriter, r *http.Request) {
	png, err := h.app.ExportPNG()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export canvas")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// clear handles DELETE /api/canvas. Clearing an already empty canvas
// succeeds.
func (h *CanvasHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.app.ClearCanvas()
	w.WriteHeader(http.StatusNoContent)
}
