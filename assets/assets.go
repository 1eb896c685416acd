// Package assets embeds the schema migrations so every binary carries them.
package assets

import "embed"

//go:embed migrations
var Migrations embed.FS
