package service

import (
	"github.com/gvnetwork/contacts-api/internal/cache"
	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/store"
	"github.com/gvnetwork/contacts-api/models"
)

// Services aggregates every application service exposed to the transport
// layer.
type Services struct {
	AuthService     AuthService
	ContactsService ContactsService
	AIService       AIService
}

// NewServices wires the service layer over the repositories and the shared
// search cache.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, searchCache *cache.SearchCache, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		ContactsService: NewContactsService(storages.ContactRepository, storages.ConnectionRepository, searchCache, logger),
		AIService:       NewAIService(storages.ContactRepository, cfg.App, logger),
	}
}

// usernameOf is safe on a nil user, matching the nil tolerance of the
// access helpers that guard every service entry point.
func usernameOf(user *models.User) string {
	if user == nil {
		return ""
	}
	return user.Username
}
