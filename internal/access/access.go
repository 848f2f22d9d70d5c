// Package access implements the field-level permission model.
//
// Permissions are static projections of a user's role and team: the role
// decides which actions are allowed on which resources, the team decides
// which contact fields are hidden per tier. All checks are pure functions
// over the user's permission list — no I/O, no side effects, and absence of
// data always resolves to "deny".
package access

import (
	"github.com/gvnetwork/contacts-api/models"
)

// roleGrants is the static role → resource → actions table.
var roleGrants = map[models.Role]map[models.Resource][]models.Action{
	models.RoleAdmin: {
		models.ResourceContacts: {models.ActionRead, models.ActionWrite, models.ActionDelete},
		models.ResourceAIChat:   {models.ActionRead, models.ActionWrite},
		models.ResourceExport:   {models.ActionRead},
		models.ResourceAdmin:    {models.ActionRead, models.ActionWrite, models.ActionDelete},
	},
	models.RoleEditor: {
		models.ResourceContacts: {models.ActionRead, models.ActionWrite},
		models.ResourceAIChat:   {models.ActionRead, models.ActionWrite},
		models.ResourceExport:   {models.ActionRead},
	},
	models.RoleViewer: {
		models.ResourceContacts: {models.ActionRead},
		models.ResourceAIChat:   {models.ActionRead},
	},
}

// teamFieldRestrictions maps a team to the contact fields hidden from its
// non-admin members, per tier. A listed field is vetoed even when the
// resource-level action is otherwise granted.
var teamFieldRestrictions = map[models.Team]map[models.Tier][]string{
	models.TeamCAIT: {
		models.Tier1: {"phone"},
	},
}

// PermissionsForRole builds the permission list embedded into a user record
// (and into their token) at login time. Admins carry no field restrictions
// regardless of team.
func PermissionsForRole(role models.Role, team models.Team) []models.Permission {
	grants, ok := roleGrants[role]
	if !ok {
		return nil
	}

	var restrictions map[models.Tier][]string
	if role != models.RoleAdmin {
		restrictions = teamFieldRestrictions[team]
	}

	// Fixed resource order keeps the permission list deterministic for
	// token snapshots and tests.
	order := []models.Resource{
		models.ResourceContacts,
		models.ResourceAIChat,
		models.ResourceExport,
		models.ResourceAdmin,
	}

	permissions := make([]models.Permission, 0, len(grants))
	for _, resource := range order {
		actions, granted := grants[resource]
		if !granted {
			continue
		}

		permission := models.Permission{
			Resource: resource,
			Actions:  append([]models.Action(nil), actions...),
		}
		if resource == models.ResourceContacts && len(restrictions) > 0 {
			permission.FieldRestrictions = restrictions
		}

		permissions = append(permissions, permission)
	}

	return permissions
}

// HasPermission reports whether user may perform action on resource.
// A nil user, a missing permission entry, or an action outside the entry's
// allowed set all resolve to false.
func HasPermission(user *models.User, resource models.Resource, action models.Action) bool {
	entry, ok := permissionFor(user, resource)
	if !ok {
		return false
	}

	for _, allowed := range entry.Actions {
		if allowed == action {
			return true
		}
	}

	return false
}

// HasFieldPermission is the field-aware variant of [HasPermission]: it
// performs the same resource/action check and additionally applies the
// field veto. When the entry declares field restrictions for tier that
// contain field, the result is false regardless of the action grant.
func HasFieldPermission(user *models.User, resource models.Resource, action models.Action, field string, tier models.Tier) bool {
	if !HasPermission(user, resource, action) {
		return false
	}

	entry, _ := permissionFor(user, resource)
	for _, restricted := range entry.FieldRestrictions[tier] {
		if restricted == field {
			return false
		}
	}

	return true
}

// CanSeeField reports whether user may see the named contact field on a
// contact of the given tier.
func CanSeeField(user *models.User, field string, tier models.Tier) bool {
	return HasFieldPermission(user, models.ResourceContacts, models.ActionRead, field, tier)
}

// CanEditContact reports whether user may modify a contact of the given
// tier. Editing requires both a general write grant and a read grant on
// contacts of that tier.
func CanEditContact(user *models.User, tier models.Tier) bool {
	return HasPermission(user, models.ResourceContacts, models.ActionWrite) &&
		HasPermission(user, models.ResourceContacts, models.ActionRead)
}

// CanDeleteContact reports whether user may delete contacts.
func CanDeleteContact(user *models.User) bool {
	return HasPermission(user, models.ResourceContacts, models.ActionDelete)
}

// CanUseAIChat reports whether user may call the AI chat endpoints.
func CanUseAIChat(user *models.User) bool {
	return HasPermission(user, models.ResourceAIChat, models.ActionRead)
}

// CanExport reports whether user may export contact data.
func CanExport(user *models.User) bool {
	return HasPermission(user, models.ResourceExport, models.ActionRead)
}

// IsAdmin reports whether user holds the admin resource.
func IsAdmin(user *models.User) bool {
	return HasPermission(user, models.ResourceAdmin, models.ActionRead)
}

func permissionFor(user *models.User, resource models.Resource) (models.Permission, bool) {
	if user == nil {
		return models.Permission{}, false
	}

	for _, entry := range user.Permissions {
		if entry.Resource == resource {
			return entry, true
		}
	}

	return models.Permission{}, false
}
