package access

import (
	"github.com/gvnetwork/contacts-api/models"
)

// RedactContact strips every field the requesting user is not allowed to see
// for the contact's tier and returns the cleaned copy. The input contact is
// not modified.
//
// Redaction is not optional: the gateway applies it to every contact before
// the record leaves the service layer.
func RedactContact(user *models.User, contact models.Contact) models.Contact {
	redacted := contact

	for _, field := range restrictedFields(user, contact.Tier) {
		switch field {
		case "phone":
			redacted.Phone = ""
		case "email":
			redacted.Email = ""
		case "location":
			redacted.Location = ""
		case "notes":
			redacted.Notes = ""
		case "relationship_to_gary":
			redacted.RelationshipToGary = ""
		case "interests":
			redacted.Interests = nil
		}
	}

	return redacted
}

// RedactContacts applies [RedactContact] to every element of contacts and
// returns a new slice.
func RedactContacts(user *models.User, contacts []models.Contact) []models.Contact {
	redacted := make([]models.Contact, len(contacts))
	for i, contact := range contacts {
		redacted[i] = RedactContact(user, contact)
	}
	return redacted
}

func restrictedFields(user *models.User, tier models.Tier) []string {
	entry, ok := permissionFor(user, models.ResourceContacts)
	if !ok {
		return nil
	}
	return entry.FieldRestrictions[tier]
}
