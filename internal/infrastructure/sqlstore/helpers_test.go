package sqlstore

import (
	"context"
	"testing"

	"github.com/martijn/clientbook/internal/core/domain"
	"github.com/martijn/clientbook/internal/core/repository"
	"github.com/rs/zerolog"
)

// newTestDB opens an in-memory SQLite store with the client table in place.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), Options{
		Driver:       DriverSQLite,
		DSN:          ":memory:",
		Table:        "clients",
		CreateSchema: true,
		Logger:       zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func newTestRepo(t *testing.T) repository.ClientRepository {
	t.Helper()
	return NewClientRepository(newTestDB(t))
}

func mustCreate(t *testing.T, repo repository.ClientRepository, name, address, phone string) int64 {
	t.Helper()

	id, err := repo.Create(context.Background(), name, address, phone)
	if err != nil {
		t.Fatalf("failed to create client %s: %v", name, err)
	}
	return id
}

func mustGet(t *testing.T, repo repository.ClientRepository, id int64) *domain.Client {
	t.Helper()

	client, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get client %d: %v", id, err)
	}
	if client == nil {
		t.Fatalf("client %d not found", id)
	}
	return client
}

func names(clients []*domain.Client) []string {
	out := make([]string, len(clients))
	for i, c := range clients {
		out[i] = c.Name
	}
	return out
}
