// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/cabinext/cabinext/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/cabinext/cabinext/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/cabinext/cabinext/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/cabinext
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
