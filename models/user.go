package models

import "time"

// Role defines the access level a user holds within their team.
type Role string

const (
	// RoleAdmin grants full access to every resource, including user
	// administration and data export.
	RoleAdmin Role = "admin"

	// RoleEditor grants read and write access to contacts and the AI chat,
	// but not deletion or administration.
	RoleEditor Role = "editor"

	// RoleViewer grants read-only access to contacts.
	RoleViewer Role = "viewer"
)

// Team is the organizational grouping a user belongs to. The team determines
// the user's default role and which contact fields are hidden from them.
type Team string

const (
	TeamCAIT Team = "CAIT"
	TeamG    Team = "TeamG"
)

// KnownTeams lists every team accepted at login time.
var KnownTeams = []Team{TeamCAIT, TeamG}

// Resource names a protected part of the application that permissions
// are granted against.
type Resource string

const (
	ResourceContacts Resource = "contacts"
	ResourceAIChat   Resource = "ai_chat"
	ResourceExport   Resource = "export"
	ResourceAdmin    Resource = "admin"
)

// Action is an operation a user may perform on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
)

// Permission grants a set of actions on a single resource, optionally
// restricted at the field level per contact tier.
//
// A resource appears at most once in a user's permission list. When
// FieldRestrictions names a field under a tier, that field is hidden for
// contacts of that tier even if ActionRead is otherwise granted — the
// field veto overrides the general grant.
type Permission struct {
	// Resource is the protected resource this permission applies to.
	Resource Resource `json:"resource"`

	// Actions is the set of operations allowed on the resource.
	Actions []Action `json:"actions"`

	// FieldRestrictions maps a contact tier to the list of field names
	// hidden from the user for contacts of that tier. Empty for
	// unrestricted permissions.
	FieldRestrictions map[Tier][]string `json:"field_restrictions,omitempty"`
}

// User represents an account entity used for authentication and authorization.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is the user's contact address. Non-sensitive.
	Email string `json:"email"`

	// Team is the organizational grouping the user belongs to.
	Team Team `json:"team"`

	// Role is the user's access level within the team.
	Role Role `json:"role"`

	// Permissions is the ordered list of grants held by the user.
	// Built from Role and Team at login time and embedded into the token.
	Permissions []Permission `json:"permissions"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never exposed via JSON; used only at the persistence layer.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// LastLoginAt is updated on every successful login.
	LastLoginAt time.Time `json:"last_login_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
