package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/airbrush/internal/app"
	"github.com/ayusman/airbrush/internal/store"
)

// SnapshotsHandler handles HTTP requests for saved canvas snapshots.
type SnapshotsHandler struct {
	app *app.App
}

// NewSnapshotsHandler creates a new SnapshotsHandler over the given app.
func NewSnapshotsHandler(a *app.App) *SnapshotsHandler {
	return &SnapshotsHandler{app: a}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// the collection or item methods.
func (h *SnapshotsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.app.Store() == nil {
		writeError(w, http.StatusServiceUnavailable, "No store configured")
		return
	}

	// Expected paths: /api/snapshots or /api/snapshots/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/snapshots")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createSnapshotRequest struct {
	Name string `json:"name"`
}

type snapshotResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"created_at"`
}

type listSnapshotsResponse struct {
	Snapshots []snapshotResponse `json:"snapshots"`
}

// toSnapshotResponse converts a store.Snapshot to its wire form. The PNG
// payload is only served from the item endpoint.
func toSnapshotResponse(s *store.Snapshot) snapshotResponse {
	return snapshotResponse{
		ID:        s.ID,
		Name:      s.Name,
		Width:     s.Width,
		Height:    s.Height,
		CreatedAt: s.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// list handles GET /api/snapshots and returns all snapshot metadata.
func (h *SnapshotsHandler) list(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.app.Store().Snapshots().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list snapshots")
		return
	}

	response := listSnapshotsResponse{
		Snapshots: make([]snapshotResponse, 0, len(snapshots)),
	}

	for _, s := range snapshots {
		response.Snapshots = append(response.Snapshots, toSnapshotResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/snapshots and saves the current canvas.
func (h *SnapshotsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	snap, err := h.app.SaveSnapshot(req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save snapshot")
		return
	}

	writeJSON(w, http.StatusCreated, toSnapshotResponse(snap))
}

// get handles GET /api/snapshots/{id} and returns the stored PNG.
func (h *SnapshotsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	snap, err := h.app.Store().Snapshots().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snapshot not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get snapshot")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(snap.PNG)
}

// delete handles DELETE /api/snapshots/{id} and removes a snapshot.
func (h *SnapshotsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.app.Store().Snapshots().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Snapshot not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete snapshot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
