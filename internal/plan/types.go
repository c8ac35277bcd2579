package plan

import (
	"fmt"

	"github.com/rwdkit/kickstart/internal/manifest"
)

// Entry is one copy instruction.
type Entry struct {
	Index       int           `json:"index"` // position in the declaration list
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Kind        manifest.Kind `json:"kind"`
	Media       string        `json:"media,omitempty"`
	Condition   string        `json:"condition,omitempty"`
}

// Skipped records a declaration excluded by its condition.
type Skipped struct {
	Index     int    `json:"index"`
	Source    string `json:"source"`
	Condition string `json:"condition"`
}

// Plan is the ordered, collision-free result of one build. Entries follow
// declaration order. A Plan is not modified after Build returns it.
type Plan struct {
	Target  string                `json:"target"`
	Entries []Entry               `json:"entries"`
	Skipped []Skipped             `json:"skipped,omitempty"`
	Counts  map[manifest.Kind]int `json:"counts"`
}

// DeclarationRef identifies a declaration by index and source.
type DeclarationRef struct {
	Index  int
	Source string
}

func (r DeclarationRef) String() string {
	return fmt.Sprintf("#%d (%s)", r.Index, r.Source)
}

// DeclarationError wraps the failure of a single declaration with its
// position so the manifest author can find it.
type DeclarationError struct {
	Index  int
	Source string
	Err    error
}

func (e *DeclarationError) Error() string {
	return fmt.Sprintf("declaration #%d (%s): %v", e.Index, e.Source, e.Err)
}

func (e *DeclarationError) Unwrap() error { return e.Err }

// DestinationCollisionError reports two included declarations that resolve
// to the same destination.
type DestinationCollisionError struct {
	Destination string
	First       DeclarationRef
	Second      DeclarationRef
}

func (e *DestinationCollisionError) Error() string {
	return fmt.Sprintf("destination %q declared by both %s and %s", e.Destination, e.First, e.Second)
}
