// Package migrations embeds the versioned schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
