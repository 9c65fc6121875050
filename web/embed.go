package web

import "embed"

// FS carries the static assets served under /static. Templates are Go code
// (gomponents), so only css/js need embedding.
// The patterns are relative to this file's directory (the 'web' directory).
//
//go:embed static
var FS embed.FS
