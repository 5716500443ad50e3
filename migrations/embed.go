// Package migrations holds the embedded SQL schema history. Files are named
// NNNN_description.sql and apply strictly forward.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
