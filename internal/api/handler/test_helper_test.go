package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/martijn/clientbook/internal/api/dto"
	"github.com/martijn/clientbook/internal/core/repository"
	"github.com/martijn/clientbook/internal/infrastructure/sqlstore"
	"github.com/rs/zerolog"
)

// testEnv holds all test dependencies
type testEnv struct {
	db            *sqlstore.DB
	repo          repository.ClientRepository
	router        *gin.Engine
	clientHandler *ClientHandler
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlstore.Open(context.Background(), sqlstore.Options{
		Driver:       sqlstore.DriverSQLite,
		DSN:          ":memory:",
		Table:        "clients",
		CreateSchema: true,
		Logger:       zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	repo := sqlstore.NewClientRepository(db)
	env := newTestEnvWithRepo(repo)
	env.db = db

	t.Cleanup(env.cleanup)
	return env
}

// newTestEnvWithRepo wires the routes around any repository, e.g. a failing stub
func newTestEnvWithRepo(repo repository.ClientRepository) *testEnv {
	clientHandler := NewClientHandler(repo)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.POST("/clients", clientHandler.CreateClient)
	router.GET("/clients", clientHandler.ListClients)
	router.GET("/clients/search", clientHandler.SearchClients)
	router.GET("/clients/:id", clientHandler.GetClient)
	router.PATCH("/clients/:id", clientHandler.UpdateClient)
	router.DELETE("/clients/:id", clientHandler.DeleteClient)

	return &testEnv{
		repo:          repo,
		router:        router,
		clientHandler: clientHandler,
	}
}

// cleanup closes the test database
func (env *testEnv) cleanup() {
	if env.db != nil {
		env.db.Close()
	}
}

// seedClients inserts clients through the repository and returns their ids
func (env *testEnv) seedClients(t *testing.T) []int64 {
	t.Helper()

	seed := []struct {
		name, address, phone string
	}{
		{"Alice", "1 Main St", "555-0100"},
		{"Bob", "22 Elm Rd", "555-0111"},
		{"Carol", "9 Alice Way", "555-0122"},
	}

	ids := make([]int64, 0, len(seed))
	for _, s := range seed {
		id, err := env.repo.Create(context.Background(), s.name, s.address, s.phone)
		if err != nil {
			t.Fatalf("failed to seed client %s: %v", s.name, err)
		}
		ids = append(ids, id)
	}
	return ids
}

// makeRequest performs a request with an optional JSON body and returns the response
func (env *testEnv) makeRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func parseClientResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ClientResponse {
	t.Helper()

	var resp dto.ClientResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

func parseClientListResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ClientListResponse {
	t.Helper()

	var resp dto.ClientListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}

// parseErrorResponse parses the response body into ErrorResponse
func parseErrorResponse(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()

	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, w.Body.String())
	}
	return resp
}
