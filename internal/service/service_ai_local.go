package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gvnetwork/contacts-api/models"
)

// localStrategy answers chat queries and parses profiles with plain
// keyword heuristics. It needs no network, no credentials and never
// fails, which is what makes it a safe fallback for the hosted model.
type localStrategy struct{}

func newLocalStrategy() aiStrategy {
	return &localStrategy{}
}

func (l *localStrategy) Source() string { return "local" }

// tierHints maps query phrasings to the tier they refer to.
var tierHints = map[string]models.Tier{
	"tier 1": models.Tier1, "tier1": models.Tier1, "top tier": models.Tier1,
	"tier 2": models.Tier2, "tier2": models.Tier2,
	"tier 3": models.Tier3, "tier3": models.Tier3,
}

// locationPattern captures up to three capitalized words after a location
// preposition, so "based in New York City and ..." yields "New York City"
// rather than the rest of the sentence.
var locationPattern = regexp.MustCompile(`(?i:\b(?:in|from|near|based in)\s+)([A-Z][a-zA-Z'-]*(?:\s+[A-Z][a-zA-Z'-]*){0,2})`)

// Chat matches contacts against the structured hints found in the query
// (tier, kids, marital status, location) plus free-text tokens, and
// phrases a short natural-language answer.
func (l *localStrategy) Chat(_ context.Context, query string, contacts []models.Contact) (string, []models.Contact, error) {
	lowered := strings.ToLower(query)

	var wantTier models.Tier
	for hint, tier := range tierHints {
		if strings.Contains(lowered, hint) {
			wantTier = tier
			break
		}
	}

	wantKids := strings.Contains(lowered, "kid") || strings.Contains(lowered, "children")
	wantMarried := strings.Contains(lowered, "married") || strings.Contains(lowered, "spouse")

	var wantLocation string
	if m := locationPattern.FindStringSubmatch(query); m != nil {
		wantLocation = strings.ToLower(strings.TrimSpace(m[1]))
	}

	matched := make([]models.Contact, 0)
	for _, contact := range contacts {
		if wantTier != "" && contact.Tier != wantTier {
			continue
		}
		if wantKids && !contact.HasKids {
			continue
		}
		if wantMarried && !contact.IsMarried {
			continue
		}
		if wantLocation != "" && !strings.Contains(strings.ToLower(contact.Location), wantLocation) {
			continue
		}
		if wantTier == "" && !wantKids && !wantMarried && wantLocation == "" && !tokensMatch(lowered, contact) {
			continue
		}
		matched = append(matched, contact)
	}

	return phraseAnswer(query, matched), matched, nil
}

// tokensMatch reports whether any word of the query appears in the
// contact's searchable text fields.
func tokensMatch(loweredQuery string, contact models.Contact) bool {
	haystack := strings.ToLower(strings.Join(append([]string{
		contact.Name, contact.RelationshipToGary, contact.Notes, contact.Location,
	}, contact.Interests...), " "))

	for _, token := range strings.Fields(loweredQuery) {
		token = strings.Trim(token, "?,.!")
		if len(token) < 3 {
			continue
		}
		if strings.Contains(haystack, token) {
			return true
		}
	}

	return false
}

func phraseAnswer(query string, matched []models.Contact) string {
	if len(matched) == 0 {
		return fmt.Sprintf("No contacts in your network match %q.", query)
	}

	names := make([]string, 0, len(matched))
	for _, contact := range matched {
		names = append(names, contact.Name)
		if len(names) == 5 {
			break
		}
	}

	answer := fmt.Sprintf("Found %d contact(s) matching %q: %s", len(matched), query, strings.Join(names, ", "))
	if len(matched) > len(names) {
		answer += fmt.Sprintf(" and %d more", len(matched)-len(names))
	}

	return answer + "."
}

var (
	emailPattern     = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phonePattern     = regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`)
	namePattern      = regexp.MustCompile(`(?:[Nn]ame(?: is|:)|[Mm]et)\s+([A-Z][\w'-]*(?:\s+[A-Z][\w'-]*)*)`)
	interestsPattern = regexp.MustCompile(`(?i)(?:interested in|interests:|likes|loves|into)\s+([^.\n]+)`)
)

// ParseProfile extracts contact fields from free text with regular
// expressions. The full input is preserved in Notes so nothing the
// extractor missed is lost.
func (l *localStrategy) ParseProfile(_ context.Context, text string) (models.ParsedProfile, error) {
	profile := models.ParsedProfile{Notes: strings.TrimSpace(text)}

	if m := namePattern.FindStringSubmatch(text); m != nil {
		profile.Name = m[1]
	}
	if m := emailPattern.FindString(text); m != "" {
		profile.Email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		profile.Phone = strings.TrimSpace(m)
	}
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		profile.Location = strings.TrimSpace(m[1])
	}
	if m := interestsPattern.FindStringSubmatch(text); m != nil {
		for _, interest := range strings.FieldsFunc(m[1], func(r rune) bool { return r == ',' || r == ';' }) {
			interest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(interest), "and "))
			if interest != "" {
				profile.Interests = append(profile.Interests, interest)
			}
		}
	}

	return profile, nil
}
