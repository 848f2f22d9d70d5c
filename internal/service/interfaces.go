package service

import (
	"context"

	"github.com/gvnetwork/contacts-api/models"
)

// AuthService handles credential verification and JWT token lifecycle.
type AuthService interface {
	// Login authenticates a user and issues a signed token.
	Login(ctx context.Context, request models.LoginRequest) (models.Token, models.User, error)

	// ParseToken validates and decodes a raw JWT string. Any validation
	// failure is normalised to ErrTokenIsExpiredOrInvalid.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ContactsService is the gateway in front of the contacts store. Every
// read passes through field-level redaction for the calling user before
// data leaves the service; every contact mutation invalidates the search
// cache.
type ContactsService interface {
	List(ctx context.Context, user *models.User) ([]models.Contact, error)
	Get(ctx context.Context, user *models.User, id string) (models.Contact, error)
	Create(ctx context.Context, user *models.User, contact models.Contact) (models.Contact, error)
	Update(ctx context.Context, user *models.User, id string, update models.ContactUpdate) (models.Contact, error)
	Delete(ctx context.Context, user *models.User, id string) error

	// SearchPaginated serves one page of search results, consulting the
	// shared cache before the store. An empty query returns an empty page
	// without touching either.
	SearchPaginated(ctx context.Context, user *models.User, query string, page, limit int) (models.SearchResult, error)

	Analytics(ctx context.Context, user *models.User, tier models.Tier, location string) (models.Analytics, error)
	NetworkStats(ctx context.Context, user *models.User) (models.NetworkStats, error)

	AddConnection(ctx context.Context, user *models.User, contactID string, request models.ConnectionRequest) (models.Connection, error)
	RemoveConnection(ctx context.Context, user *models.User, contactID, targetContactID string) error
	ListConnections(ctx context.Context, user *models.User, contactID string) ([]models.Connection, error)

	// WarmCache pre-populates the search cache with the known-common
	// queries and returns the number of pages cached.
	WarmCache(ctx context.Context) int
}

// AIService answers natural-language questions about the network and
// extracts structured contact profiles from free text. Implementations
// must always produce an answer: when the hosted model is unavailable or
// unconfigured they fall back to a local heuristic.
type AIService interface {
	Chat(ctx context.Context, user *models.User, request models.ChatRequest) (models.ChatResponse, error)
	ParseProfile(ctx context.Context, request models.ParseProfileRequest) (models.ParsedProfile, error)
}
