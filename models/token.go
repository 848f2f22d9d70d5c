package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT claim set issued at login time.
//
// It embeds [jwt.RegisteredClaims] for the standard claim fields (iss, sub,
// exp, iat) and carries a full snapshot of the user's identity and
// permissions. The snapshot is trusted for the whole token lifetime: a
// permission change on the server is not reflected until the token is
// re-issued. This staleness window is an accepted property, not a defect.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the internal identifier of the authenticated user.
	UserID int64 `json:"uid"`

	// Username is the login identifier of the user.
	Username string `json:"username"`

	// Email is the user's contact address.
	Email string `json:"email"`

	// Team is the organizational grouping of the user.
	Team Team `json:"team"`

	// Role is the user's access level.
	Role Role `json:"role"`

	// Permissions is the permission snapshot embedded at issuance time.
	Permissions []Permission `json:"permissions"`
}

// User reconstructs a User value from the claim snapshot. The returned user
// carries no credential material and no timestamps; it is sufficient for
// permission checks and redaction.
func (c *Claims) User() *User {
	return &User{
		UserID:      c.UserID,
		Username:    c.Username,
		Email:       c.Email,
		Team:        c.Team,
		Role:        c.Role,
		Permissions: c.Permissions,
	}
}

// Token pairs a parsed JWT with its compact serialized form.
//
// SignedString holds the compact representation (header.payload.signature)
// ready to be transmitted in HTTP headers or stored on the client side.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set carried by the token.
	Claims *Claims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}
