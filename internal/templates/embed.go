package templates

import "embed"

// Files holds the page templates rendered by api.Handler. Every page
// template defines "content" and is executed through base.html.
//
//go:embed *.html
var Files embed.FS
