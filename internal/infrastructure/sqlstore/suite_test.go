package sqlstore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/martijn/clientbook/internal/core/domain"
	"github.com/martijn/clientbook/internal/core/repository"
)

// runRepositorySuite exercises the behaviour every store must share. repo
// must start with an empty table.
func runRepositorySuite(t *testing.T, repo repository.ClientRepository) {
	ctx := context.Background()

	t.Run("list on empty table returns empty slice", func(t *testing.T) {
		clients, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if clients == nil || len(clients) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v", clients)
		}
	})

	t.Run("create then get round trips", func(t *testing.T) {
		id := mustCreate(t, repo, "Alice", "1 Main St", "555-0100")
		if id <= 0 {
			t.Fatalf("expected positive id, got %d", id)
		}

		got := mustGet(t, repo, id)
		want := &domain.Client{ID: id, Name: "Alice", Address: "1 Main St", PhoneNumber: "555-0100"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("get missing id returns nil without error", func(t *testing.T) {
		client, err := repo.GetByID(ctx, 999999)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if client != nil {
			t.Fatalf("expected nil, got %+v", client)
		}
	})

	t.Run("list returns every row in insertion order", func(t *testing.T) {
		mustCreate(t, repo, "Bob", "22 Elm Rd", "555-0111")
		mustCreate(t, repo, "Carol", "9 Alice Way", "555-0122")

		clients, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, want := names(clients), []string{"Alice", "Bob", "Carol"}; !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("search matches any field", func(t *testing.T) {
		tests := []struct {
			attribute string
			want      []string
		}{
			{"Alice", []string{"Alice", "Carol"}}, // Carol lives on Alice Way
			{"Elm", []string{"Bob"}},
			{"555-01", []string{"Alice", "Bob", "Carol"}},
			{"0122", []string{"Carol"}},
			{"nobody", []string{}},
		}

		for _, tt := range tests {
			t.Run(tt.attribute, func(t *testing.T) {
				clients, err := repo.Search(ctx, tt.attribute)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got := names(clients); !reflect.DeepEqual(got, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
			})
		}
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		mustCreate(t, repo, "100% Juice", "Dock_7", "555-0133")

		for attribute, want := range map[string][]string{
			"%":  {"100% Juice"},
			"_7": {"100% Juice"},
			"!":  {},
		} {
			clients, err := repo.Search(ctx, attribute)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", attribute, err)
			}
			if got := names(clients); !reflect.DeepEqual(got, want) {
				t.Errorf("search %q: expected %v, got %v", attribute, want, got)
			}
		}
	})

	t.Run("update changes only the given fields", func(t *testing.T) {
		id := mustCreate(t, repo, "Dave", "5 Oak Ave", "555-0144")

		updated, err := repo.Update(ctx, id, domain.Changes{domain.FieldAddress: "6 Oak Ave"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated {
			t.Fatal("expected update to report a matched row")
		}

		got := mustGet(t, repo, id)
		if got.Name != "Dave" || got.Address != "6 Oak Ave" || got.PhoneNumber != "555-0144" {
			t.Errorf("unexpected client after update: %+v", got)
		}

		updated, err = repo.Update(ctx, id, domain.Changes{
			domain.FieldName:        "David",
			domain.FieldPhoneNumber: "555-0145",
		})
		if err != nil || !updated {
			t.Fatalf("expected second update to succeed, got %v, %v", updated, err)
		}
		got = mustGet(t, repo, id)
		if got.Name != "David" || got.Address != "6 Oak Ave" || got.PhoneNumber != "555-0145" {
			t.Errorf("unexpected client after second update: %+v", got)
		}
	})

	t.Run("update with unchanged values still reports a match", func(t *testing.T) {
		id := mustCreate(t, repo, "Erin", "7 Pine Ct", "555-0155")

		updated, err := repo.Update(ctx, id, domain.Changes{domain.FieldName: "Erin"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !updated {
			t.Error("expected update to report a matched row")
		}
	})

	t.Run("update missing id reports false", func(t *testing.T) {
		updated, err := repo.Update(ctx, 999999, domain.Changes{domain.FieldName: "Ghost"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated {
			t.Error("expected update of missing id to report false")
		}
	})

	t.Run("update rejects empty and unknown changes", func(t *testing.T) {
		if _, err := repo.Update(ctx, 1, domain.Changes{}); !errors.Is(err, domain.ErrNoChanges) {
			t.Errorf("expected ErrNoChanges, got %v", err)
		}
		if _, err := repo.Update(ctx, 1, nil); !errors.Is(err, domain.ErrNoChanges) {
			t.Errorf("expected ErrNoChanges for nil changes, got %v", err)
		}

		_, err := repo.Update(ctx, 1, domain.Changes{domain.Field("id = 0, name"): "x"})
		if !errors.Is(err, domain.ErrUnknownField) {
			t.Errorf("expected ErrUnknownField, got %v", err)
		}
		if repository.IsPersistenceError(err) {
			t.Error("validation failures must not be reported as persistence errors")
		}
	})

	t.Run("delete reports true once", func(t *testing.T) {
		id := mustCreate(t, repo, "Frank", "8 Birch Ln", "555-0166")

		deleted, err := repo.Delete(ctx, id)
		if err != nil || !deleted {
			t.Fatalf("expected first delete to succeed, got %v, %v", deleted, err)
		}

		deleted, err = repo.Delete(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deleted {
			t.Error("expected repeated delete to report false")
		}

		client, err := repo.GetByID(ctx, id)
		if err != nil || client != nil {
			t.Errorf("expected deleted client to be absent, got %+v, %v", client, err)
		}
	})
}
