package models

// AppBuildInfo describes the running binary. Exposed via GET /api/version.
type AppBuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
