// SPDX-License-Identifier: Apache-2.0

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gvnetwork/contacts-api/internal/access"
	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/monitor"
	"github.com/gvnetwork/contacts-api/internal/ratelimit"
	"github.com/gvnetwork/contacts-api/internal/service"
	"github.com/gvnetwork/contacts-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed bearer tokens accepted by the stub auth service.
const (
	adminToken      = "admin-token"
	viewerToken     = "viewer-token"
	caitEditorToken = "cait-editor-token"
)

func claimsFor(username string, role models.Role, team models.Team) *models.Claims {
	return &models.Claims{
		UserID:      1,
		Username:    username,
		Team:        team,
		Role:        role,
		Permissions: access.PermissionsForRole(role, team),
	}
}

type stubAuthService struct {
	token models.Token
	user  models.User
	err   error
}

func (s *stubAuthService) Login(_ context.Context, _ models.LoginRequest) (models.Token, models.User, error) {
	if s.err != nil {
		return models.Token{}, models.User{}, s.err
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	switch tokenString {
	case adminToken:
		return models.Token{Claims: claimsFor("gary", models.RoleAdmin, models.TeamG)}, nil
	case viewerToken:
		return models.Token{Claims: claimsFor("viewer", models.RoleViewer, models.TeamG)}, nil
	case caitEditorToken:
		return models.Token{Claims: claimsFor("cait.editor", models.RoleEditor, models.TeamCAIT)}, nil
	default:
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
}

type stubContactsService struct {
	contacts     []models.Contact
	searchResult models.SearchResult
	err          error

	lastQuery string
	lastPage  int
	lastLimit int
	warmed    int
}

func (s *stubContactsService) List(_ context.Context, _ *models.User) ([]models.Contact, error) {
	return s.contacts, s.err
}

func (s *stubContactsService) Get(_ context.Context, _ *models.User, id string) (models.Contact, error) {
	if s.err != nil {
		return models.Contact{}, s.err
	}
	return models.Contact{ID: id, Name: "Alice"}, nil
}

func (s *stubContactsService) Create(_ context.Context, _ *models.User, contact models.Contact) (models.Contact, error) {
	if s.err != nil {
		return models.Contact{}, s.err
	}
	contact.ID = "created"
	return contact, nil
}

func (s *stubContactsService) Update(_ context.Context, _ *models.User, id string, _ models.ContactUpdate) (models.Contact, error) {
	if s.err != nil {
		return models.Contact{}, s.err
	}
	return models.Contact{ID: id}, nil
}

func (s *stubContactsService) Delete(_ context.Context, _ *models.User, _ string) error {
	return s.err
}

func (s *stubContactsService) SearchPaginated(_ context.Context, _ *models.User, query string, page, limit int) (models.SearchResult, error) {
	s.lastQuery, s.lastPage, s.lastLimit = query, page, limit
	return s.searchResult, s.err
}

func (s *stubContactsService) Analytics(_ context.Context, _ *models.User, _ models.Tier, _ string) (models.Analytics, error) {
	return models.Analytics{TotalContacts: len(s.contacts)}, s.err
}

func (s *stubContactsService) NetworkStats(_ context.Context, _ *models.User) (models.NetworkStats, error) {
	return models.NetworkStats{TotalContacts: len(s.contacts)}, s.err
}

func (s *stubContactsService) AddConnection(_ context.Context, _ *models.User, contactID string, request models.ConnectionRequest) (models.Connection, error) {
	if s.err != nil {
		return models.Connection{}, s.err
	}
	return models.Connection{ID: 1, ContactID: contactID, TargetContactID: request.TargetContactID}, nil
}

func (s *stubContactsService) RemoveConnection(_ context.Context, _ *models.User, _, _ string) error {
	return s.err
}

func (s *stubContactsService) ListConnections(_ context.Context, _ *models.User, _ string) ([]models.Connection, error) {
	return nil, s.err
}

func (s *stubContactsService) WarmCache(_ context.Context) int {
	return s.warmed
}

type stubAIService struct {
	chat    models.ChatResponse
	profile models.ParsedProfile
	err     error
}

func (s *stubAIService) Chat(_ context.Context, _ *models.User, _ models.ChatRequest) (models.ChatResponse, error) {
	return s.chat, s.err
}

func (s *stubAIService) ParseProfile(_ context.Context, _ models.ParseProfileRequest) (models.ParsedProfile, error) {
	return s.profile, s.err
}

type handlerFixture struct {
	auth        *stubAuthService
	contacts    *stubContactsService
	ai          *stubAIService
	searchCache *cache.SearchCache
	monitor     *monitor.Monitor
	router      *chi.Mux
}

// newTestHandler builds a full router over stub services. A nil limits map
// disables rate limiting entirely.
func newTestHandler(t *testing.T, limits map[ratelimit.Class]ratelimit.Limit) *handlerFixture {
	t.Helper()

	fixture := &handlerFixture{
		auth:        &stubAuthService{token: models.Token{SignedString: "signed"}, user: models.User{UserID: 7, Username: "gary"}},
		contacts:    &stubContactsService{},
		ai:          &stubAIService{},
		searchCache: cache.New(time.Minute, 16, logger.Nop()),
		monitor:     monitor.New(logger.Nop()),
	}

	handler := NewHandler(
		&service.Services{
			AuthService:     fixture.auth,
			ContactsService: fixture.contacts,
			AIService:       fixture.ai,
		},
		fixture.searchCache,
		ratelimit.New(limits, logger.Nop()),
		fixture.monitor,
		models.AppBuildInfo{Version: "1.2.3", Commit: "abc123"},
		logger.Nop(),
	)
	fixture.router = handler.Init()

	return fixture
}

// do runs one request through the router and returns the recorder.
func (f *handlerFixture) do(method, target, body, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, r)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&value))
	return value
}

func TestLogin(t *testing.T) {
	f := newTestHandler(t, nil)

	w := f.do(http.MethodPost, "/api/auth/login", `{"username":"gary","password":"password","team":"TeamG"}`, "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "Bearer signed", w.Header().Get("Authorization"))

	response := decodeBody[models.LoginResponse](t, w)
	assert.Equal(t, "signed", response.Token)
	require.NotNil(t, response.User)
	assert.Equal(t, "gary", response.User.Username)
}

func TestLogin_InvalidJSON(t *testing.T) {
	f := newTestHandler(t, nil)

	w := f.do(http.MethodPost, "/api/auth/login", `{"username":`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON was passed")
}

func TestLogin_BadCredentials(t *testing.T) {
	f := newTestHandler(t, nil)
	f.auth.err = service.ErrWrongPassword

	w := f.do(http.MethodPost, "/api/auth/login", `{"username":"gary","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid login/password")
}

func TestLogin_UnknownTeam(t *testing.T) {
	f := newTestHandler(t, nil)
	f.auth.err = service.ErrUnknownTeam

	w := f.do(http.MethodPost, "/api/auth/login", `{"username":"gary","password":"password","team":"Marketing"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	f := newTestHandler(t, nil)

	w := f.do(http.MethodPost, "/api/auth/logout", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeBody[models.SuccessResponse](t, w).Success)
}

func TestAuthMiddleware(t *testing.T) {
	f := newTestHandler(t, nil)

	// No header at all.
	w := f.do(http.MethodGet, "/api/contacts", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "empty `Authorization` header")

	// Header without a token part.
	r := httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	r.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid `Authorization` header")

	// Header with an empty token part.
	r = httptest.NewRequest(http.MethodGet, "/api/contacts", nil)
	r.Header.Set("Authorization", "Bearer ")
	rec = httptest.NewRecorder()
	f.router.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty token")

	// Token the auth service rejects.
	w = f.do(http.MethodGet, "/api/contacts", "", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token reaches the handler.
	f.contacts.contacts = []models.Contact{{ID: "c-1", Name: "Alice"}}
	w = f.do(http.MethodGet, "/api/contacts", "", adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	contacts := decodeBody[[]models.Contact](t, w)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Alice", contacts[0].Name)
}

func TestVersionAndHealthNeedNoAuth(t *testing.T) {
	f := newTestHandler(t, nil)

	w := f.do(http.MethodGet, "/api/version", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.2.3", decodeBody[models.AppBuildInfo](t, w).Version)

	w = f.do(http.MethodGet, "/api/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	health := decodeBody[map[string]any](t, w)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, true, health["healthy"])
}
