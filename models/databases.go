package models

// DatabaseInfo is the public view of a connected database module and the
// models it exposes.
type DatabaseInfo struct {
	// Name is the module identity the models were registered under.
	Name string `json:"name"`

	// Models maps model names to their column lists.
	Models map[string][]string `json:"models"`
}

// BuildInfoResponse is returned by the system version endpoint.
type BuildInfoResponse struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
