package service

import (
	"context"
	"fmt"

	"github.com/gvnetwork/contacts-api/internal/config"
	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
	"github.com/gvnetwork/contacts-api/models"
)

// remoteStrategy proxies chat and profile-parsing requests to the hosted
// language-model service. Any transport or service error is returned to
// the caller, which falls back to the local strategy.
type remoteStrategy struct {
	client   *utils.HTTPClient
	endpoint string

	logger *logger.Logger
}

// chatUpstreamRequest is the wire format sent to the hosted model. The
// contact set travels with the request so the model answers over exactly
// the (already redacted) data the caller may see.
type chatUpstreamRequest struct {
	Query    string           `json:"query,omitempty"`
	Text     string           `json:"text,omitempty"`
	Contacts []models.Contact `json:"contacts,omitempty"`
}

type chatUpstreamResponse struct {
	Response   string   `json:"response"`
	MatchedIDs []string `json:"matched_ids"`
}

func newRemoteStrategy(cfg config.App, logger *logger.Logger) aiStrategy {
	client := utils.NewHTTPClient()
	client.SetTimeout(cfg.AITimeout)
	client.SetAuthToken(cfg.AIAPIKey)

	return &remoteStrategy{
		client:   client,
		endpoint: cfg.AIEndpoint,
		logger:   logger,
	}
}

func (r *remoteStrategy) Source() string { return "remote" }

// Chat sends the query plus the caller-visible contact set upstream and
// maps the returned IDs back onto concrete contacts.
func (r *remoteStrategy) Chat(ctx context.Context, query string, contacts []models.Contact) (string, []models.Contact, error) {
	var upstream chatUpstreamResponse
	response, err := r.client.R().
		SetContext(ctx).
		SetBody(chatUpstreamRequest{Query: query, Contacts: contacts}).
		SetResult(&upstream).
		Post(r.endpoint + "/chat")
	if err != nil {
		return "", nil, fmt.Errorf("hosted AI request failed: %w", err)
	}
	if response.IsError() {
		return "", nil, fmt.Errorf("hosted AI returned status %d", response.StatusCode())
	}
	if upstream.Response == "" {
		return "", nil, fmt.Errorf("hosted AI returned an empty answer")
	}

	byID := make(map[string]models.Contact, len(contacts))
	for _, contact := range contacts {
		byID[contact.ID] = contact
	}

	matched := make([]models.Contact, 0, len(upstream.MatchedIDs))
	for _, id := range upstream.MatchedIDs {
		if contact, ok := byID[id]; ok {
			matched = append(matched, contact)
		}
	}

	return upstream.Response, matched, nil
}

// ParseProfile asks the hosted model to extract structured contact fields
// from free text.
func (r *remoteStrategy) ParseProfile(ctx context.Context, text string) (models.ParsedProfile, error) {
	var profile models.ParsedProfile
	response, err := r.client.R().
		SetContext(ctx).
		SetBody(chatUpstreamRequest{Text: text}).
		SetResult(&profile).
		Post(r.endpoint + "/parse-profile")
	if err != nil {
		return models.ParsedProfile{}, fmt.Errorf("hosted AI request failed: %w", err)
	}
	if response.IsError() {
		return models.ParsedProfile{}, fmt.Errorf("hosted AI returned status %d", response.StatusCode())
	}

	return profile, nil
}
