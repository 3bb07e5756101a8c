package simplets

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release of the terminal, as shown by "simplets version".
var Version = strings.TrimSpace(version)
