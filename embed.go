// Package svgvolume embeds repository-level assets used by commands.
package svgvolume

import "embed"

// Migrations holds the goose SQL migrations applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
