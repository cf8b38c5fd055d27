// Package content embeds the encounters that ship with the binary.
package content

import "embed"

// DefaultDir is the directory of the default encounter inside Default.
const DefaultDir = "default"

// Default holds the built-in encounter, loadable with loader.LoadFS.
//
//go:embed default/*.lua
var Default embed.FS
