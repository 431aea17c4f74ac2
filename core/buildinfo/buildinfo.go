// Package buildinfo carries version metadata stamped in with -ldflags:
//
//	-X 'github.com/codexs/hirebot/core/buildinfo.Version=v1.2.3'
//	-X 'github.com/codexs/hirebot/core/buildinfo.Commit=abcdef0'
//	-X 'github.com/codexs/hirebot/core/buildinfo.Date=2025-08-30T12:00:00Z'
package buildinfo

var (
	Version = "dev"
	Commit  = "local"
	// Date is the RFC3339 build time; empty for local builds.
	Date = ""
)

// String renders the version line shown by the CLI and the startup log.
func String() string {
	s := Version + " (commit " + Commit
	if Date != "" {
		s += ", built " + Date
	}
	return s + ")"
}
