package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gvnetwork/contacts-api/internal/access"
	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/store"
	"github.com/gvnetwork/contacts-api/models"
)

// aiStrategy answers a chat query over a set of contacts and extracts
// structured profiles from free text. Two implementations exist: the
// hosted model and the local heuristic fallback.
type aiStrategy interface {
	Chat(ctx context.Context, query string, contacts []models.Contact) (string, []models.Contact, error)
	ParseProfile(ctx context.Context, text string) (models.ParsedProfile, error)
	Source() string
}

// aiService is the concrete implementation of AIService. It prefers the
// hosted model when an API key is configured and degrades to the local
// heuristic strategy on any remote failure, so chat and profile parsing
// always produce an answer.
type aiService struct {
	contactRepository store.ContactRepository

	remote aiStrategy // nil when no API key is configured
	local  aiStrategy

	logger *logger.Logger
}

// NewAIService constructs an AIService. When cfg.AIAPIKey is empty the
// hosted strategy is not wired at all and every request is answered
// locally.
func NewAIService(contacts store.ContactRepository, cfg config.App, logger *logger.Logger) AIService {
	service := &aiService{
		contactRepository: contacts,
		local:             newLocalStrategy(),
		logger:            logger,
	}

	if cfg.AIAPIKey != "" {
		service.remote = newRemoteStrategy(cfg, logger)
	} else {
		logger.Info().Msg("no AI API key configured, using local heuristic strategy")
	}

	return service
}

// Chat answers a natural-language question about the user's network.
//
// The working set is the contacts supplied in the request, or the full
// store when none were supplied. Either way the set is redacted for the
// calling user before any strategy sees it, so the answer can never leak
// a field the user is not allowed to read.
func (s *aiService) Chat(ctx context.Context, user *models.User, request models.ChatRequest) (models.ChatResponse, error) {
	log := logger.FromContext(ctx)

	if !access.CanUseAIChat(user) {
		log.Error().Str("username", usernameOf(user)).Msg("ai chat denied")
		return models.ChatResponse{}, ErrPermissionDenied
	}

	if strings.TrimSpace(request.Query) == "" {
		return models.ChatResponse{}, ErrInvalidDataProvided
	}

	contacts := request.Contacts
	if len(contacts) == 0 {
		stored, err := s.contactRepository.List(ctx)
		if err != nil {
			return models.ChatResponse{}, fmt.Errorf("loading contacts for chat failed: %w", err)
		}
		contacts = stored
	}
	contacts = access.RedactContacts(user, contacts)

	strategy := s.local
	if s.remote != nil {
		strategy = s.remote
	}

	answer, matched, err := strategy.Chat(ctx, request.Query, contacts)
	if err != nil && strategy != s.local {
		log.Warn().Err(err).Msg("hosted AI call failed, falling back to local heuristics")
		strategy = s.local
		answer, matched, err = strategy.Chat(ctx, request.Query, contacts)
	}
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("chat failed: %w", err)
	}

	return models.ChatResponse{
		Response:        answer,
		MatchedContacts: matched,
		Source:          strategy.Source(),
	}, nil
}

// ParseProfile extracts structured contact fields from free text, using
// the hosted model when available and the local extractor otherwise.
func (s *aiService) ParseProfile(ctx context.Context, request models.ParseProfileRequest) (models.ParsedProfile, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(request.Text) == "" {
		return models.ParsedProfile{}, ErrInvalidDataProvided
	}

	strategy := s.local
	if s.remote != nil {
		strategy = s.remote
	}

	profile, err := strategy.ParseProfile(ctx, request.Text)
	if err != nil && strategy != s.local {
		log.Warn().Err(err).Msg("hosted AI call failed, falling back to local heuristics")
		strategy = s.local
		profile, err = strategy.ParseProfile(ctx, request.Text)
	}
	if err != nil {
		return models.ParsedProfile{}, fmt.Errorf("profile parsing failed: %w", err)
	}

	profile.Source = strategy.Source()
	return profile, nil
}
