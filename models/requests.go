package models

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Team     Team   `json:"team"`
}

// ConnectionRequest is the body of POST /api/contacts/{id}/connections.
// The source contact is taken from the URL.
type ConnectionRequest struct {
	TargetContactID string `json:"target_contact_id"`
	Strength        string `json:"strength,omitempty"`
	Type            string `json:"type,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

// ChatRequest is the body of POST /api/ai/chat. Contacts may carry the
// caller's current working set; when empty the server searches the store.
type ChatRequest struct {
	Query    string    `json:"query"`
	Contacts []Contact `json:"contacts,omitempty"`
}

// ParseProfileRequest is the body of POST /api/ai/parse-profile.
type ParseProfileRequest struct {
	Text string `json:"text"`
}

// Cache management actions accepted by POST /api/cache.
const (
	CacheActionClear = "clear"
	CacheActionWarm  = "warm"
	CacheActionStats = "stats"
)

// CacheActionRequest is the body of POST /api/cache.
type CacheActionRequest struct {
	Action string `json:"action"`
}
