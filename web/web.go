// Package web holds the static landing page served at GET /.
package web

import _ "embed"

// IndexHTML is the single-page client for /analyze and /history
//
//go:embed index.html
var IndexHTML []byte
