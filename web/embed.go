package web

import "embed"

// Static embeds the single-page client served under /ui/.
//
//go:embed static
var Static embed.FS
