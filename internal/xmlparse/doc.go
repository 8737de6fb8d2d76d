package xmlparse

import "github.com/shapestone/mavlinkgen/internal/ir"

// fileDoc is everything a single dialect XML file declares locally, before
// include resolution merges it with anything it includes. The file's
// dialect name (its basename without extension) is attached by the loader,
// not stored here.
type fileDoc struct {
	version   *uint8
	dialectID *uint32
	includes  []string
	messages  []ir.Message
	enums     []ir.Enum

	// warnings accumulates non-fatal diagnostics, such as unrecognised
	// elements, encountered while parsing this file.
	warnings []string
}
