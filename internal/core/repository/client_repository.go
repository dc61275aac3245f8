package repository

import (
	"context"

	"github.com/martijn/clientbook/internal/core/domain"
)

type ClientRepository interface {
	Create(ctx context.Context, name, address, phoneNumber string) (int64, error)
	ListAll(ctx context.Context) ([]*domain.Client, error)

	// GetByID returns (nil, nil) when no client has the given id.
	GetByID(ctx context.Context, id int64) (*domain.Client, error)

	// Search matches attribute as a substring of name, address or phone number.
	Search(ctx context.Context, attribute string) ([]*domain.Client, error)

	// Update and Delete report false when no client has the given id.
	Update(ctx context.Context, id int64, changes domain.Changes) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
