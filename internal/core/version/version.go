// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the named binary. The version, commit,
// and date variables are set at build time using -ldflags.
func Info(service string) BuildInfo {
	// -ldflags "-X 'interestd/internal/core/version.version=v0.1.0'
	// -X 'interestd/internal/core/version.commit=abcd' -X 'interestd/internal/core/version.date=2025-10-01'"
	if service == "" {
		service = "interestd-api"
	}
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
