package assignments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/allocd/core/assign"
	"github.com/taskforge/allocd/core/model"
	"github.com/taskforge/allocd/core/store"
	"github.com/taskforge/allocd/infra/logger"
)

func newTestMux(t *testing.T, mem *store.MemoryStore) *http.ServeMux {
	t.Helper()
	engine, err := assign.NewEngine(mem, mem, mem, nil, nil, logger.NopLogger{})
	require.NoError(t, err)
	mux := http.NewServeMux()
	mux.Handle("POST /api/projects/{project_id}/assignments/auto", NewAutoAssignHandler(engine, logger.NopLogger{}))
	mux.Handle("GET /api/projects/{project_id}/assignments", NewListHandler(mem, logger.NopLogger{}))
	return mux
}

func seeded(t *testing.T) *store.MemoryStore {
	t.Helper()
	mem := store.NewMemoryStore()
	mem.AddMember(model.TeamMember{ProjectID: 7, Name: "A", Role: "Backend", Skills: "Go, API"})
	mem.AddMember(model.TeamMember{ProjectID: 7, Name: "B", Role: "Frontend", Skills: "React"})
	mem.AddRequirement(model.Requirement{ProjectID: 7, Title: "Orders API", Confirmed: true})
	mem.AddRequirement(model.Requirement{ProjectID: 7, Title: "Cart screen", Summary: "React UI", Confirmed: true})
	return mem
}

func TestAutoAssignHandler_Created(t *testing.T) {
	mux := newTestMux(t, seeded(t))

	req := httptest.NewRequest(http.MethodPost, "/api/projects/7/assignments/auto", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res assign.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.CreatedCount)
	assert.Len(t, res.Assignments, 2)
	assert.NotEmpty(t, res.AssignmentsGrouped)
}

func TestAutoAssignHandler_KeepQuery(t *testing.T) {
	mem := seeded(t)
	mux := newTestMux(t, mem)

	for _, target := range []string{
		"/api/projects/7/assignments/auto?keep=true",
		"/api/projects/7/assignments/auto?keep=1",
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/projects/7/assignments", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 4, "two keep=true runs append both batches")
}

func TestAutoAssignHandler_PreconditionError(t *testing.T) {
	mem := store.NewMemoryStore()
	mem.AddRequirement(model.Requirement{ProjectID: 7, Title: "lonely", Confirmed: true})
	mux := newTestMux(t, mem)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects/7/assignments/auto", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "team members")

	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, httptest.NewRequest(http.MethodGet, "/api/projects/7/assignments", nil))
	var list []model.Assignment
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestAutoAssignHandler_InvalidProjectID(t *testing.T) {
	mux := newTestMux(t, seeded(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/projects/abc/assignments/auto", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
