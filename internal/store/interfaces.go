package store

import (
	"context"

	"github.com/gvnetwork/contacts-api/models"
)

// UserRepository is the data-access layer for user accounts.
type UserRepository interface {
	// FindUserByUsername looks an account up by its unique username.
	// Returns ErrNoUserWasFound when the account does not exist.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// TouchLastLogin records a successful login for the user.
	TouchLastLogin(ctx context.Context, userID int64) error
}

// ContactRepository is the data-access layer for contact records.
// All queries are parameterized; user input never reaches query text.
type ContactRepository interface {
	List(ctx context.Context) ([]models.Contact, error)
	GetByID(ctx context.Context, id string) (models.Contact, error)
	Create(ctx context.Context, contact models.Contact) (models.Contact, error)
	Update(ctx context.Context, id string, update models.ContactUpdate) (models.Contact, error)
	Delete(ctx context.Context, id string) error

	// SearchPage returns one page of contacts matching query together with
	// the total number of matches across all pages.
	SearchPage(ctx context.Context, query string, page, limit int) ([]models.Contact, int, error)

	// Analytics aggregates contact counts, optionally filtered by tier
	// and/or location (empty strings disable the filter).
	Analytics(ctx context.Context, tier models.Tier, location string) (models.Analytics, error)
}

// ConnectionRepository is the data-access layer for connection edges.
type ConnectionRepository interface {
	Create(ctx context.Context, connection models.Connection) (models.Connection, error)
	Delete(ctx context.Context, contactID, targetContactID string) error
	ListByContact(ctx context.Context, contactID string) ([]models.Connection, error)

	// Count returns the total number of edges in the store.
	Count(ctx context.Context) (int, error)
}
