// Package assignments exposes the allocation engine over HTTP.
package assignments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/taskforge/allocd/core/assign"
	"github.com/taskforge/allocd/core/logger"
	"github.com/taskforge/allocd/core/store"
)

// NewAutoAssignHandler returns the handler for
// POST /api/projects/{project_id}/assignments/auto?keep=true|false.
// Precondition failures map to 400, a committed run to 201.
func NewAutoAssignHandler(engine *assign.Engine, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		projectID, err := strconv.ParseInt(r.PathValue("project_id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid project id")
			return
		}
		keep := parseKeep(r.URL.Query().Get("keep"))

		res, err := engine.Run(r.Context(), projectID, assign.RunOptions{Keep: keep})
		switch {
		case errors.Is(err, assign.ErrNoMembers), errors.Is(err, assign.ErrNoRequirements):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			log.Errorf("auto assign project %d: %v", projectID, err)
			writeError(w, http.StatusInternalServerError, "assignment run failed")
			return
		}
		writeJSON(w, http.StatusCreated, res)
	})
}

// NewListHandler returns the handler for
// GET /api/projects/{project_id}/assignments.
func NewListHandler(assignments store.AssignmentStore, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		projectID, err := strconv.ParseInt(r.PathValue("project_id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid project id")
			return
		}
		list, err := assignments.ListAssignments(r.Context(), projectID)
		if err != nil {
			log.Errorf("list assignments project %d: %v", projectID, err)
			writeError(w, http.StatusInternalServerError, "listing failed")
			return
		}
		writeJSON(w, http.StatusOK, list)
	})
}

// parseKeep treats 1, true and yes as true, anything else as false.
func parseKeep(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
