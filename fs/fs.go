// Package appfs embeds the templates shipped with the binaries.
package appfs

import "embed"

//go:embed all:templates
var FS embed.FS
