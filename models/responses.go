package models

// Pagination describes the position of a result page within the full result
// set. All fields are computed from the actual totals reported by the store,
// never assumed from the request.
type Pagination struct {
	// CurrentPage is the 1-based page number that was served.
	CurrentPage int `json:"current_page"`

	// ItemsPerPage is the page size used for the query.
	ItemsPerPage int `json:"items_per_page"`

	// TotalItems is the total number of matching records in the store.
	TotalItems int `json:"total_items"`

	// TotalPages is ceil(TotalItems / ItemsPerPage).
	TotalPages int `json:"total_pages"`
}

// SearchResult is one page of contact search results plus its pagination
// metadata. It is both the cached unit and the response body of
// GET /api/contacts/search.
type SearchResult struct {
	Contacts   []Contact  `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}

// LoginResponse is the body returned by a successful POST /api/auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SuccessResponse is the generic acknowledgement body for operations that
// return no data (logout, delete, connection removal).
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ChatResponse is the body of POST /api/ai/chat. Response is always a
// non-empty natural-language string, produced either by the hosted model
// or by the local heuristic fallback.
type ChatResponse struct {
	Response        string    `json:"response"`
	MatchedContacts []Contact `json:"matched_contacts"`

	// Source reports which strategy produced the answer: "remote" or "local".
	Source string `json:"source"`
}

// ParsedProfile holds the structured fields extracted from free text by
// POST /api/ai/parse-profile.
type ParsedProfile struct {
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Location  string   `json:"location,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Notes     string   `json:"notes,omitempty"`

	// Source reports which strategy produced the extraction.
	Source string `json:"source"`
}

// Analytics aggregates contact counts, optionally filtered by tier,
// location or team at query time.
type Analytics struct {
	TotalContacts int            `json:"total_contacts"`
	ByTier        map[Tier]int   `json:"by_tier"`
	ByLocation    map[string]int `json:"by_location"`
	WithKids      int            `json:"with_kids"`
	Married       int            `json:"married"`
}

// NetworkStats holds network-wide aggregate metrics over contacts and
// their connection edges.
type NetworkStats struct {
	TotalContacts         int          `json:"total_contacts"`
	TotalConnections      int          `json:"total_connections"`
	AvgConnectionsPerNode float64      `json:"avg_connections_per_node"`
	ByTier                map[Tier]int `json:"by_tier"`
}
