// Package warn collects non-fatal diagnostics produced by the pipeline.
//
// Core packages never write to stdout or call log.Print themselves
// (spec: "the core never writes to stdout by itself"); instead they
// append a Warning to an accumulator and keep going. Callers decide
// whether and how to surface them.
package warn

import "fmt"

// Kind identifies the condition that produced a Warning.
type Kind string

const (
	MissingParent    Kind = "missing_parent"
	MissingTexture   Kind = "missing_texture"
	UnknownFace      Kind = "unknown_face"
	AliasDepthLimit  Kind = "alias_depth_limit"
	MissingFaceTex   Kind = "missing_face_texture"
	DanglingTexture  Kind = "dangling_texture_ref"
)

// Warning is a single non-fatal diagnostic.
type Warning struct {
	Kind    Kind
	Stage   string // component that raised it, e.g. "blockmodel", "atlas"
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s: %s", w.Stage, w.Kind, w.Message)
}

// List is an ordered collection of warnings, cheapest appended to
// directly by value-returning functions.
type List []Warning

// Add appends a new warning built from a stage, kind and formatted message.
func (l *List) Add(stage string, kind Kind, format string, args ...any) {
	*l = append(*l, Warning{Kind: kind, Stage: stage, Message: fmt.Sprintf(format, args...)})
}
