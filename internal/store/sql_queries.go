package store

// Raw queries shared by both database backends. Dynamic queries (search,
// analytics, partial updates) are built with squirrel in the repositories.
const (
	findUserByUsername = `SELECT user_id, username, email, team, role, password_hash, created_at, last_login_at
	FROM users
	WHERE username = $1;`

	touchLastLogin = `UPDATE users
	SET last_login_at = CURRENT_TIMESTAMP
	WHERE user_id = $1;`

	createContact = `INSERT INTO contacts (id, name, email, phone, tier, relationship_to_gary, has_kids, is_married, location, interests, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);`

	deleteContact = `DELETE FROM contacts
	WHERE id = $1;`

	createConnection = `INSERT INTO connections (contact_id, target_contact_id, strength, type, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP);`

	deleteConnection = `DELETE FROM connections
	WHERE contact_id = $1 AND target_contact_id = $2;`

	findConnectionByPair = `SELECT id, contact_id, target_contact_id, strength, type, notes, created_at
	FROM connections
	WHERE contact_id = $1 AND target_contact_id = $2;`

	listConnectionsByContact = `SELECT id, contact_id, target_contact_id, strength, type, notes, created_at
	FROM connections
	WHERE contact_id = $1
	ORDER BY created_at;`

	countConnections = `SELECT COUNT(*) FROM connections;`
)

// contactColumns is the canonical column order used by every contact SELECT
// and scanned by scanContact.
var contactColumns = []string{
	"id", "name", "email", "phone", "tier", "relationship_to_gary",
	"has_kids", "is_married", "location", "interests", "notes",
	"created_at", "updated_at",
}

// searchableColumns are the text columns matched by a search query.
var searchableColumns = []string{
	"name", "email", "location", "notes", "interests", "relationship_to_gary",
}
