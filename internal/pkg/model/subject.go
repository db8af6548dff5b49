package model

import (
	"fmt"
)

// Subject is one root of the export, for example blocks of a PLC or text lists of an HMI.
type Subject struct {
	// RootPrefix is the first segment of the output path, usually the device item name.
	// Empty prefix writes directly to the export root.
	RootPrefix string
	Scope      Scope
	Root       Group
	// Kinds exported from the subject, the empty set exports all kinds.
	Kinds KindSet
}

func (s Subject) String() string {
	return fmt.Sprintf(`%s subject "%s" (%s)`, s.Scope, s.RootPrefix, s.Kinds)
}
