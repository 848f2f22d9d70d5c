// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gvnetwork/contacts-api/internal/access"
	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/store"
	"github.com/gvnetwork/contacts-api/models"
)

// defaultPageLimit is the search page size used when the caller does not
// specify one.
const defaultPageLimit = 20

// maxPageLimit bounds the page size a caller may request.
const maxPageLimit = 100

// contactsService is the gateway in front of the contacts store.
//
// Two invariants hold for every method:
//   - no contact record leaves the service without passing through
//     field-level redaction for the calling user;
//   - the search cache stores unredacted pages, so redaction happens
//     after a cache hit, per caller.
type contactsService struct {
	contactRepository    store.ContactRepository
	connectionRepository store.ConnectionRepository
	searchCache          *cache.SearchCache

	logger *logger.Logger
}

// NewContactsService constructs a ContactsService over the given
// repositories and shared search cache.
func NewContactsService(contacts store.ContactRepository, connections store.ConnectionRepository, searchCache *cache.SearchCache, logger *logger.Logger) ContactsService {
	return &contactsService{
		contactRepository:    contacts,
		connectionRepository: connections,
		searchCache:          searchCache,
		logger:               logger,
	}
}

// List returns every contact the user may read, redacted per field rules.
func (s *contactsService) List(ctx context.Context, user *models.User) ([]models.Contact, error) {
	if !access.HasPermission(user, models.ResourceContacts, models.ActionRead) {
		return nil, ErrPermissionDenied
	}

	contacts, err := s.contactRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing contacts failed: %w", err)
	}

	return access.RedactContacts(user, contacts), nil
}

// Get returns a single contact, redacted per field rules.
func (s *contactsService) Get(ctx context.Context, user *models.User, id string) (models.Contact, error) {
	if !access.HasPermission(user, models.ResourceContacts, models.ActionRead) {
		return models.Contact{}, ErrPermissionDenied
	}

	contact, err := s.contactRepository.GetByID(ctx, id)
	if err != nil {
		return models.Contact{}, fmt.Errorf("contact lookup failed: %w", err)
	}

	return access.RedactContact(user, contact), nil
}

// Create persists a new contact. The tier defaults to tier3 when omitted.
func (s *contactsService) Create(ctx context.Context, user *models.User, contact models.Contact) (models.Contact, error) {
	log := logger.FromContext(ctx)

	if contact.Tier == "" {
		contact.Tier = models.Tier3
	}
	if !models.ValidTier(contact.Tier) {
		return models.Contact{}, ErrInvalidTier
	}
	if strings.TrimSpace(contact.Name) == "" {
		return models.Contact{}, ErrInvalidDataProvided
	}

	if !access.CanEditContact(user, contact.Tier) {
		log.Error().Str("username", usernameOf(user)).Msg("contact creation denied")
		return models.Contact{}, ErrPermissionDenied
	}

	created, err := s.contactRepository.Create(ctx, contact)
	if err != nil {
		return models.Contact{}, fmt.Errorf("contact creation failed: %w", err)
	}

	s.invalidateSearches(ctx)

	return access.RedactContact(user, created), nil
}

// Update applies a partial update. The user must be allowed to edit both
// the contact's current tier and, when the update moves it, the new tier.
func (s *contactsService) Update(ctx context.Context, user *models.User, id string, update models.ContactUpdate) (models.Contact, error) {
	log := logger.FromContext(ctx)

	existing, err := s.contactRepository.GetByID(ctx, id)
	if err != nil {
		return models.Contact{}, fmt.Errorf("contact lookup failed: %w", err)
	}

	if !access.CanEditContact(user, existing.Tier) {
		log.Error().Str("username", usernameOf(user)).Str("contact_id", id).Msg("contact update denied")
		return models.Contact{}, ErrPermissionDenied
	}

	if update.Tier != nil {
		if !models.ValidTier(*update.Tier) {
			return models.Contact{}, ErrInvalidTier
		}
		if !access.CanEditContact(user, *update.Tier) {
			return models.Contact{}, ErrPermissionDenied
		}
	}

	updated, err := s.contactRepository.Update(ctx, id, update)
	if err != nil {
		return models.Contact{}, fmt.Errorf("contact update failed: %w", err)
	}

	s.invalidateSearches(ctx)

	return access.RedactContact(user, updated), nil
}

// Delete removes a contact and, through the schema, its connection edges.
func (s *contactsService) Delete(ctx context.Context, user *models.User, id string) error {
	log := logger.FromContext(ctx)

	if !access.CanDeleteContact(user) {
		log.Error().Str("username", usernameOf(user)).Str("contact_id", id).Msg("contact deletion denied")
		return ErrPermissionDenied
	}

	if err := s.contactRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("contact deletion failed: %w", err)
	}

	s.invalidateSearches(ctx)

	return nil
}

// SearchPaginated serves one page of search results.
//
// The cache is consulted first under the normalized key; on a miss the
// store is queried and the raw page cached. Pagination metadata is computed
// from the store's actual totals. An empty or whitespace-only query returns
// an empty page without touching cache or store.
func (s *contactsService) SearchPaginated(ctx context.Context, user *models.User, query string, page, limit int) (models.SearchResult, error) {
	log := logger.FromContext(ctx)

	if !access.HasPermission(user, models.ResourceContacts, models.ActionRead) {
		return models.SearchResult{}, ErrPermissionDenied
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if strings.TrimSpace(query) == "" {
		return models.SearchResult{
			Contacts: []models.Contact{},
			Pagination: models.Pagination{
				CurrentPage:  page,
				ItemsPerPage: limit,
			},
		}, nil
	}

	key := cache.Key(query, page, limit)
	if result, ok := s.searchCache.Get(key); ok {
		log.Debug().Str("key", key).Msg("search cache hit")
		result.Contacts = access.RedactContacts(user, result.Contacts)
		return result, nil
	}

	result, err := s.fetchSearchPage(ctx, query, page, limit)
	if err != nil {
		return models.SearchResult{}, err
	}

	s.searchCache.Put(key, result)

	result.Contacts = access.RedactContacts(user, result.Contacts)
	return result, nil
}

// fetchSearchPage queries the store and assembles the raw (unredacted)
// result page. It is also the fetch function behind cache warming.
func (s *contactsService) fetchSearchPage(ctx context.Context, query string, page, limit int) (models.SearchResult, error) {
	contacts, total, err := s.contactRepository.SearchPage(ctx, query, page, limit)
	if err != nil {
		return models.SearchResult{}, fmt.Errorf("contact search failed: %w", err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return models.SearchResult{
		Contacts: contacts,
		Pagination: models.Pagination{
			CurrentPage:  page,
			ItemsPerPage: limit,
			TotalItems:   total,
			TotalPages:   totalPages,
		},
	}, nil
}

// Analytics aggregates contact counts with optional tier/location filters.
func (s *contactsService) Analytics(ctx context.Context, user *models.User, tier models.Tier, location string) (models.Analytics, error) {
	if !access.HasPermission(user, models.ResourceContacts, models.ActionRead) {
		return models.Analytics{}, ErrPermissionDenied
	}

	if tier != "" && !models.ValidTier(tier) {
		return models.Analytics{}, ErrInvalidTier
	}

	analytics, err := s.contactRepository.Analytics(ctx, tier, location)
	if err != nil {
		return models.Analytics{}, fmt.Errorf("analytics query failed: %w", err)
	}

	return analytics, nil
}

// NetworkStats computes network-wide aggregates over contacts and edges.
func (s *contactsService) NetworkStats(ctx context.Context, user *models.User) (models.NetworkStats, error) {
	if !access.HasPermission(user, models.ResourceContacts, models.ActionRead) {
		return models.NetworkStats{}, ErrPermissionDenied
	}

	analytics, err := s.contactRepository.Analytics(ctx, "", "")
	if err != nil {
		return models.NetworkStats{}, fmt.Errorf("network stats query failed: %w", err)
	}

	connections, err := s.connectionRepository.Count(ctx)
	if err != nil {
		return models.NetworkStats{}, fmt.Errorf("network stats query failed: %w", err)
	}

	stats := models.NetworkStats{
		TotalContacts:    analytics.TotalContacts,
		TotalConnections: connections,
		ByTier:           analytics.ByTier,
	}
	if analytics.TotalContacts > 0 {
		stats.AvgConnectionsPerNode = float64(connections) / float64(analytics.TotalContacts)
	}

	return stats, nil
}

// AddConnection creates a directed edge from contactID to the requested
// target.
func (s *contactsService) AddConnection(ctx context.Context, user *models.User, contactID string, request models.ConnectionRequest) (models.Connection, error) {
	log := logger.FromContext(ctx)

	if !access.HasPermission(user, models.ResourceContacts, models.ActionWrite) {
		log.Error().Str("username", usernameOf(user)).Msg("connection creation denied")
		return models.Connection{}, ErrPermissionDenied
	}

	if contactID == "" || request.TargetContactID == "" {
		return models.Connection{}, ErrInvalidDataProvided
	}
	if contactID == request.TargetContactID {
		return models.Connection{}, ErrSelfConnection
	}

	connection, err := s.connectionRepository.Create(ctx, models.Connection{
		ContactID:       contactID,
		TargetContactID: request.TargetContactID,
		Strength:        request.Strength,
		Type:            request.Type,
		Notes:           request.Notes,
	})
	if err != nil {
		return models.Connection{}, fmt.Errorf("connection creation failed: %w", err)
	}

	return connection, nil
}

// RemoveConnection deletes the edge from contactID to targetContactID.
func (s *contactsService) RemoveConnection(ctx context.Context, user *models.User, contactID, targetContactID string) error {
	if !access.HasPermission(user, models.ResourceContacts, models.ActionWrite) {
		return ErrPermissionDenied
	}

	if err := s.connectionRepository.Delete(ctx, contactID, targetContactID); err != nil {
		return fmt.Errorf("connection deletion failed: %w", err)
	}

	return nil
}

// ListConnections returns every edge originating from contactID.
func (s *contactsService) ListConnections(ctx context.Context, user *models.User, contactID string) ([]models.Connection, error) {
	if !access.HasPermission(user, models.ResourceContacts, models.ActionRead) {
		return nil, ErrPermissionDenied
	}

	connections, err := s.connectionRepository.ListByContact(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("listing connections failed: %w", err)
	}

	return connections, nil
}

// WarmCache pre-populates the search cache with the known-common queries.
func (s *contactsService) WarmCache(ctx context.Context) int {
	return s.searchCache.Warm(ctx, s.fetchSearchPage)
}

// invalidateSearches drops every cached search page. Mutations are rare
// compared to searches, so a full clear is simpler than tracking which
// queries a changed contact could match.
func (s *contactsService) invalidateSearches(ctx context.Context) {
	logger.FromContext(ctx).Debug().Msg("invalidating search cache after mutation")
	s.searchCache.Invalidate()
}
