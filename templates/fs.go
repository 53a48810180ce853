// Package templates embeds the HTML templates and static assets of the
// browser UI.
package templates

import "embed"

//go:embed layouts/*.gohtml pages/*.gohtml partials/*.gohtml static/*
var FS embed.FS
