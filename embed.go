package portal

import "embed"

// ContentFS holds the notices seeded into a fresh portal.
//
//go:embed content/updates/*.md
var ContentFS embed.FS
