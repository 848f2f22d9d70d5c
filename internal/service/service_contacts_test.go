// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gvnetwork/contacts-api/internal/access"
	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/store"
	"github.com/gvnetwork/contacts-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubContactRepository struct {
	contacts []models.Contact

	listCalls   int
	searchCalls int
	err         error
}

func (s *stubContactRepository) List(_ context.Context) ([]models.Contact, error) {
	s.listCalls++
	return s.contacts, s.err
}

func (s *stubContactRepository) GetByID(_ context.Context, id string) (models.Contact, error) {
	if s.err != nil {
		return models.Contact{}, s.err
	}
	for _, contact := range s.contacts {
		if contact.ID == id {
			return contact, nil
		}
	}
	return models.Contact{}, store.ErrContactNotFound
}

func (s *stubContactRepository) Create(_ context.Context, contact models.Contact) (models.Contact, error) {
	if s.err != nil {
		return models.Contact{}, s.err
	}
	if contact.ID == "" {
		contact.ID = "generated"
	}
	s.contacts = append(s.contacts, contact)
	return contact, nil
}

func (s *stubContactRepository) Update(_ context.Context, id string, update models.ContactUpdate) (models.Contact, error) {
	for i, contact := range s.contacts {
		if contact.ID != id {
			continue
		}
		if update.Name != nil {
			contact.Name = *update.Name
		}
		if update.Tier != nil {
			contact.Tier = *update.Tier
		}
		s.contacts[i] = contact
		return contact, nil
	}
	return models.Contact{}, store.ErrContactNotFound
}

func (s *stubContactRepository) Delete(_ context.Context, id string) error {
	for i, contact := range s.contacts {
		if contact.ID == id {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			return nil
		}
	}
	return store.ErrContactNotFound
}

func (s *stubContactRepository) SearchPage(_ context.Context, query string, page, limit int) ([]models.Contact, int, error) {
	s.searchCalls++
	if s.err != nil {
		return nil, 0, s.err
	}

	needle := strings.ToLower(query)
	var matched []models.Contact
	for _, contact := range s.contacts {
		haystack := strings.ToLower(contact.Name + " " + string(contact.Tier) + " " + contact.Location)
		if query == "" || strings.Contains(haystack, needle) {
			matched = append(matched, contact)
		}
	}

	offset := (page - 1) * limit
	if offset >= len(matched) {
		return []models.Contact{}, len(matched), nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], len(matched), nil
}

func (s *stubContactRepository) Analytics(_ context.Context, tier models.Tier, location string) (models.Analytics, error) {
	if s.err != nil {
		return models.Analytics{}, s.err
	}

	analytics := models.Analytics{ByTier: map[models.Tier]int{}, ByLocation: map[string]int{}}
	for _, contact := range s.contacts {
		if tier != "" && contact.Tier != tier {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(contact.Location), strings.ToLower(location)) {
			continue
		}
		analytics.TotalContacts++
		analytics.ByTier[contact.Tier]++
		if contact.Location != "" {
			analytics.ByLocation[contact.Location]++
		}
		if contact.HasKids {
			analytics.WithKids++
		}
		if contact.IsMarried {
			analytics.Married++
		}
	}
	return analytics, nil
}

type stubConnectionRepository struct {
	connections []models.Connection
	createErr   error
}

func (s *stubConnectionRepository) Create(_ context.Context, connection models.Connection) (models.Connection, error) {
	if s.createErr != nil {
		return models.Connection{}, s.createErr
	}
	connection.ID = int64(len(s.connections) + 1)
	s.connections = append(s.connections, connection)
	return connection, nil
}

func (s *stubConnectionRepository) Delete(_ context.Context, contactID, targetContactID string) error {
	for i, connection := range s.connections {
		if connection.ContactID == contactID && connection.TargetContactID == targetContactID {
			s.connections = append(s.connections[:i], s.connections[i+1:]...)
			return nil
		}
	}
	return store.ErrConnectionNotFound
}

func (s *stubConnectionRepository) ListByContact(_ context.Context, contactID string) ([]models.Connection, error) {
	var matched []models.Connection
	for _, connection := range s.connections {
		if connection.ContactID == contactID {
			matched = append(matched, connection)
		}
	}
	return matched, nil
}

func (s *stubConnectionRepository) Count(_ context.Context) (int, error) {
	return len(s.connections), nil
}

func testUser(role models.Role, team models.Team) *models.User {
	return &models.User{
		UserID:      1,
		Username:    "tester",
		Team:        team,
		Role:        role,
		Permissions: access.PermissionsForRole(role, team),
	}
}

func newContactsFixture(contacts ...models.Contact) (*stubContactRepository, *stubConnectionRepository, ContactsService) {
	contactRepo := &stubContactRepository{contacts: contacts}
	connectionRepo := &stubConnectionRepository{}
	searchCache := cache.New(time.Minute, 16, logger.Nop())
	return contactRepo, connectionRepo, NewContactsService(contactRepo, connectionRepo, searchCache, logger.Nop())
}

func tier1Contact() models.Contact {
	return models.Contact{
		ID:    "c-1",
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "+1 555 0100",
		Tier:  models.Tier1,
	}
}

func TestContactsService_Get_RedactsTier1PhoneForCAIT(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())

	caitEditor := testUser(models.RoleEditor, models.TeamCAIT)
	contact, err := svc.Get(context.Background(), caitEditor, "c-1")
	require.NoError(t, err)
	assert.Empty(t, contact.Phone, "CAIT must not see tier1 phone numbers")
	assert.Equal(t, "alice@example.com", contact.Email)

	admin := testUser(models.RoleAdmin, models.TeamG)
	contact, err = svc.Get(context.Background(), admin, "c-1")
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", contact.Phone)
}

func TestContactsService_List_PermissionDenied(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())

	nobody := &models.User{Username: "nobody"}
	_, err := svc.List(context.Background(), nobody)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestContactsService_SearchPaginated_CacheFirst(t *testing.T) {
	repo, _, svc := newContactsFixture(tier1Contact())
	admin := testUser(models.RoleAdmin, models.TeamG)

	first, err := svc.SearchPaginated(context.Background(), admin, "alice", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, repo.searchCalls)

	second, err := svc.SearchPaginated(context.Background(), admin, "  Alice ", 1, 20)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.searchCalls, "normalized repeat query must be served from cache")
	assert.Equal(t, first, second)
}

func TestContactsService_SearchPaginated_RedactsCachedPagePerCaller(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())

	// The admin populates the cache with the raw page.
	admin := testUser(models.RoleAdmin, models.TeamG)
	result, err := svc.SearchPaginated(context.Background(), admin, "alice", 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Contacts, 1)
	require.Equal(t, "+1 555 0100", result.Contacts[0].Phone)

	// The cached entry is redacted for each caller, not once globally.
	caitEditor := testUser(models.RoleEditor, models.TeamCAIT)
	result, err = svc.SearchPaginated(context.Background(), caitEditor, "alice", 1, 20)
	require.NoError(t, err)
	require.Len(t, result.Contacts, 1)
	assert.Empty(t, result.Contacts[0].Phone)
}

func TestContactsService_SearchPaginated_EmptyQuery(t *testing.T) {
	repo, _, svc := newContactsFixture(tier1Contact())
	admin := testUser(models.RoleAdmin, models.TeamG)

	result, err := svc.SearchPaginated(context.Background(), admin, "   ", 0, 0)
	require.NoError(t, err)

	assert.NotNil(t, result.Contacts)
	assert.Empty(t, result.Contacts)
	assert.Equal(t, 1, result.Pagination.CurrentPage)
	assert.Equal(t, defaultPageLimit, result.Pagination.ItemsPerPage)
	assert.Zero(t, repo.searchCalls, "empty query must not reach the store")
}

func TestContactsService_SearchPaginated_ClampsLimit(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())
	admin := testUser(models.RoleAdmin, models.TeamG)

	result, err := svc.SearchPaginated(context.Background(), admin, "alice", 1, 5000)
	require.NoError(t, err)
	assert.Equal(t, maxPageLimit, result.Pagination.ItemsPerPage)
}

func TestContactsService_SearchPaginated_PaginationTotals(t *testing.T) {
	contacts := make([]models.Contact, 0, 45)
	for i := 0; i < 45; i++ {
		contacts = append(contacts, models.Contact{ID: fmt.Sprintf("c-%d", i), Name: "Gary Fan", Tier: models.Tier2})
	}
	_, _, svc := newContactsFixture(contacts...)
	admin := testUser(models.RoleAdmin, models.TeamG)

	result, err := svc.SearchPaginated(context.Background(), admin, "gary", 3, 20)
	require.NoError(t, err)

	assert.Len(t, result.Contacts, 5)
	assert.Equal(t, 3, result.Pagination.CurrentPage)
	assert.Equal(t, 45, result.Pagination.TotalItems)
	assert.Equal(t, 3, result.Pagination.TotalPages)
}

func TestContactsService_Create(t *testing.T) {
	_, _, svc := newContactsFixture()
	editor := testUser(models.RoleEditor, models.TeamG)

	created, err := svc.Create(context.Background(), editor, models.Contact{Name: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, models.Tier3, created.Tier, "tier defaults to tier3")
	assert.NotEmpty(t, created.ID)
}

func TestContactsService_Create_Validation(t *testing.T) {
	_, _, svc := newContactsFixture()
	editor := testUser(models.RoleEditor, models.TeamG)

	_, err := svc.Create(context.Background(), editor, models.Contact{Name: "Bob", Tier: "tier9"})
	assert.ErrorIs(t, err, ErrInvalidTier)

	_, err = svc.Create(context.Background(), editor, models.Contact{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	viewer := testUser(models.RoleViewer, models.TeamG)
	_, err = svc.Create(context.Background(), viewer, models.Contact{Name: "Bob"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestContactsService_NilUserIsDenied(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())

	_, err := svc.Create(context.Background(), nil, models.Contact{Name: "Bob"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	name := "Alice B"
	_, err = svc.Update(context.Background(), nil, "c-1", models.ContactUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	assert.ErrorIs(t, svc.Delete(context.Background(), nil, "c-1"), ErrPermissionDenied)

	_, err = svc.AddConnection(context.Background(), nil, "c-1", models.ConnectionRequest{TargetContactID: "c-2"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestContactsService_Update_ChecksNewTier(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())
	editor := testUser(models.RoleEditor, models.TeamG)

	badTier := models.Tier("tier9")
	_, err := svc.Update(context.Background(), editor, "c-1", models.ContactUpdate{Tier: &badTier})
	assert.ErrorIs(t, err, ErrInvalidTier)

	name := "Alice B"
	updated, err := svc.Update(context.Background(), editor, "c-1", models.ContactUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
}

func TestContactsService_Delete_RequiresDeleteGrant(t *testing.T) {
	repo, _, svc := newContactsFixture(tier1Contact())

	editor := testUser(models.RoleEditor, models.TeamG)
	assert.ErrorIs(t, svc.Delete(context.Background(), editor, "c-1"), ErrPermissionDenied)

	admin := testUser(models.RoleAdmin, models.TeamG)
	require.NoError(t, svc.Delete(context.Background(), admin, "c-1"))
	assert.Empty(t, repo.contacts)
}

func TestContactsService_MutationInvalidatesCache(t *testing.T) {
	repo, _, svc := newContactsFixture(tier1Contact())
	admin := testUser(models.RoleAdmin, models.TeamG)

	_, err := svc.SearchPaginated(context.Background(), admin, "alice", 1, 20)
	require.NoError(t, err)
	_, err = svc.SearchPaginated(context.Background(), admin, "alice", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, repo.searchCalls)

	_, err = svc.Create(context.Background(), admin, models.Contact{Name: "Bob"})
	require.NoError(t, err)

	_, err = svc.SearchPaginated(context.Background(), admin, "alice", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.searchCalls, "mutations must drop cached search pages")
}

func TestContactsService_NetworkStats(t *testing.T) {
	_, connectionRepo, svc := newContactsFixture(
		models.Contact{ID: "c-1", Name: "A", Tier: models.Tier1},
		models.Contact{ID: "c-2", Name: "B", Tier: models.Tier1},
		models.Contact{ID: "c-3", Name: "C", Tier: models.Tier2},
		models.Contact{ID: "c-4", Name: "D", Tier: models.Tier3},
	)
	connectionRepo.connections = []models.Connection{
		{ContactID: "c-1", TargetContactID: "c-2"},
		{ContactID: "c-1", TargetContactID: "c-3"},
		{ContactID: "c-2", TargetContactID: "c-4"},
		{ContactID: "c-3", TargetContactID: "c-4"},
		{ContactID: "c-4", TargetContactID: "c-1"},
		{ContactID: "c-2", TargetContactID: "c-3"},
	}

	admin := testUser(models.RoleAdmin, models.TeamG)
	stats, err := svc.NetworkStats(context.Background(), admin)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalContacts)
	assert.Equal(t, 6, stats.TotalConnections)
	assert.InDelta(t, 1.5, stats.AvgConnectionsPerNode, 0.001)
	assert.Equal(t, 2, stats.ByTier[models.Tier1])
}

func TestContactsService_Analytics_InvalidTier(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())
	admin := testUser(models.RoleAdmin, models.TeamG)

	_, err := svc.Analytics(context.Background(), admin, "tier9", "")
	assert.ErrorIs(t, err, ErrInvalidTier)
}

func TestContactsService_AddConnection(t *testing.T) {
	_, connectionRepo, svc := newContactsFixture(tier1Contact())
	editor := testUser(models.RoleEditor, models.TeamG)

	connection, err := svc.AddConnection(context.Background(), editor, "c-1", models.ConnectionRequest{
		TargetContactID: "c-2",
		Strength:        "strong",
	})
	require.NoError(t, err)
	assert.Equal(t, "c-1", connection.ContactID)
	assert.Len(t, connectionRepo.connections, 1)
}

func TestContactsService_AddConnection_Validation(t *testing.T) {
	_, _, svc := newContactsFixture(tier1Contact())
	editor := testUser(models.RoleEditor, models.TeamG)

	_, err := svc.AddConnection(context.Background(), editor, "c-1", models.ConnectionRequest{TargetContactID: "c-1"})
	assert.ErrorIs(t, err, ErrSelfConnection)

	_, err = svc.AddConnection(context.Background(), editor, "c-1", models.ConnectionRequest{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	viewer := testUser(models.RoleViewer, models.TeamG)
	_, err = svc.AddConnection(context.Background(), viewer, "c-1", models.ConnectionRequest{TargetContactID: "c-2"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestContactsService_RemoveConnection(t *testing.T) {
	_, connectionRepo, svc := newContactsFixture(tier1Contact())
	connectionRepo.connections = []models.Connection{{ContactID: "c-1", TargetContactID: "c-2"}}

	editor := testUser(models.RoleEditor, models.TeamG)
	require.NoError(t, svc.RemoveConnection(context.Background(), editor, "c-1", "c-2"))
	assert.Empty(t, connectionRepo.connections)

	err := svc.RemoveConnection(context.Background(), editor, "c-1", "c-2")
	assert.ErrorIs(t, err, store.ErrConnectionNotFound)
}

func TestContactsService_WarmCache(t *testing.T) {
	repo, _, svc := newContactsFixture(tier1Contact())

	warmed := svc.WarmCache(context.Background())
	assert.Equal(t, len(cache.WarmQueries), warmed)
	require.Equal(t, len(cache.WarmQueries), repo.searchCalls)

	// A warmed query is served without touching the store again.
	admin := testUser(models.RoleAdmin, models.TeamG)
	_, err := svc.SearchPaginated(context.Background(), admin, "tier1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, len(cache.WarmQueries), repo.searchCalls)
}
