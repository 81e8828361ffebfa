package static

import "embed"

// FS holds the browser assets served under /static/ and the help text
// rendered into the editor page.
//
//go:embed dist img help
var FS embed.FS
