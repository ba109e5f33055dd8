package ui

import "embed"

// Files holds the HTML templates and static assets compiled into the binary.
//
//go:embed "html" "static"
var Files embed.FS
