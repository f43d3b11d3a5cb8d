package web

import "embed"

// Templates embeds HTML templates for rendered documents.
//
//go:embed templates/**/*.html
var Templates embed.FS
