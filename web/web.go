// Package web holds the embedded templates and static assets of the
// gridlayout UI.
package web

import "embed"

//go:embed templates static
var EmbeddedFS embed.FS
