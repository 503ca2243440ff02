// Package schemas holds the JSON Schemas that structured generation replies
// must satisfy, one file per mode.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
