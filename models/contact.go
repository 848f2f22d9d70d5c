package models

import "time"

// Tier is the classification bucket denoting contact importance. It drives
// both UI treatment and field-visibility rules.
type Tier string

const (
	Tier1 Tier = "tier1"
	Tier2 Tier = "tier2"
	Tier3 Tier = "tier3"
)

// ValidTier reports whether t is one of the three known tiers.
func ValidTier(t Tier) bool {
	return t == Tier1 || t == Tier2 || t == Tier3
}

// Contact is a tiered address-book entry. The canonical record lives in the
// remote store; the application holds only transient copies.
type Contact struct {
	// ID is the unique identifier of the contact (UUID string).
	ID string `json:"id"`

	// Name is the contact's display name.
	Name string `json:"name"`

	// Email is the contact's address. Subject to field-level redaction.
	Email string `json:"email,omitempty"`

	// Phone is the contact's number. Subject to field-level redaction;
	// some teams never see tier-1 phone numbers.
	Phone string `json:"phone,omitempty"`

	// Tier classifies the importance of the contact.
	Tier Tier `json:"tier"`

	// RelationshipToGary describes how the contact is connected to Gary.
	RelationshipToGary string `json:"relationship_to_gary,omitempty"`

	// HasKids and IsMarried are relationship metadata used by search
	// heuristics and analytics.
	HasKids   bool `json:"has_kids"`
	IsMarried bool `json:"is_married"`

	// Location is a free-form city/region string.
	Location string `json:"location,omitempty"`

	// Interests is a list of free-form interest tags.
	Interests []string `json:"interests,omitempty"`

	// Notes holds arbitrary relationship notes.
	Notes string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Contact model.
func (c Contact) TableName() string {
	return "contacts"
}

// ContactUpdate carries a partial update for a contact. Nil fields are
// left unchanged by the store.
type ContactUpdate struct {
	Name               *string   `json:"name,omitempty"`
	Email              *string   `json:"email,omitempty"`
	Phone              *string   `json:"phone,omitempty"`
	Tier               *Tier     `json:"tier,omitempty"`
	RelationshipToGary *string   `json:"relationship_to_gary,omitempty"`
	HasKids            *bool     `json:"has_kids,omitempty"`
	IsMarried          *bool     `json:"is_married,omitempty"`
	Location           *string   `json:"location,omitempty"`
	Interests          *[]string `json:"interests,omitempty"`
	Notes              *string   `json:"notes,omitempty"`
}

// Empty reports whether the update contains no fields to change.
func (u ContactUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Tier == nil &&
		u.RelationshipToGary == nil && u.HasKids == nil && u.IsMarried == nil &&
		u.Location == nil && u.Interests == nil && u.Notes == nil
}
