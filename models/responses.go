package models

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	// Error is a short, human-readable description of the failure.
	Error string `json:"error"`

	// MissingSchemes names the security schemes the request did not satisfy.
	// Populated only for 401 responses produced by the security checker.
	MissingSchemes []string `json:"missing_schemes,omitempty"`
}

// BuildInfo carries build-time metadata injected via linker flags.
// Served as JSON from the version endpoint.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewBuildInfo normalizes empty linker values to "N/A" so the version
// endpoint never serves blank fields.
func NewBuildInfo(version, date, commit string) BuildInfo {
	if version == "" {
		version = "N/A"
	}
	if date == "" {
		date = "N/A"
	}
	if commit == "" {
		commit = "N/A"
	}

	return BuildInfo{Version: version, Date: date, Commit: commit}
}
