// Package wizard is the upload wizard: a two-step draft (metadata, then
// documents) that is submitted once. State changes go through Reduce, a pure
// function, so the step-0 invariant is checked in one place. Machine adds
// the submission call and the delayed reset on top of it.
package wizard

import (
	"grantdocs/internal/catalog"
)

// Step is the wizard screen.
type Step int

const (
	StepMetadata Step = iota
	StepDocuments
)

func (s Step) String() string {
	switch s {
	case StepMetadata:
		return "metadata"
	case StepDocuments:
		return "documents"
	default:
		return "unknown"
	}
}

// Field names a scalar draft field.
type Field int

const (
	FieldTitle Field = iota
	FieldFiscalYear
	FieldSource
	FieldGrantType
	FieldRemarks
)

// Label is the form label of the field.
func (f Field) Label() string {
	switch f {
	case FieldTitle:
		return "Title"
	case FieldFiscalYear:
		return "Fiscal Year"
	case FieldSource:
		return "Source"
	case FieldGrantType:
		return "Grant Type"
	case FieldRemarks:
		return "Remarks"
	default:
		return ""
	}
}

// requiredFields must be non-empty before leaving StepMetadata.
var requiredFields = []Field{FieldTitle, FieldFiscalYear, FieldSource, FieldGrantType}

// LocalFile is a file the user picked from disk.
type LocalFile struct {
	Name string
	Path string
	Size int64
}

// Draft is everything the user has entered for one upload.
type Draft struct {
	Title      string
	FiscalYear string
	Source     string
	GrantType  string
	Remarks    string

	// Files is indexed by catalog.Category; order is pick order.
	Files [catalog.NumCategories][]LocalFile
}

// Get returns the value of a scalar field.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldTitle:
		return d.Title
	case FieldFiscalYear:
		return d.FiscalYear
	case FieldSource:
		return d.Source
	case FieldGrantType:
		return d.GrantType
	case FieldRemarks:
		return d.Remarks
	default:
		return ""
	}
}

func (d *Draft) set(f Field, v string) {
	switch f {
	case FieldTitle:
		d.Title = v
	case FieldFiscalYear:
		d.FiscalYear = v
	case FieldSource:
		d.Source = v
	case FieldGrantType:
		d.GrantType = v
	case FieldRemarks:
		d.Remarks = v
	}
}

// Missing lists the required fields that are still empty.
// Presence is the only check; whitespace counts as a value.
func (d Draft) Missing() []Field {
	var out []Field
	for _, f := range requiredFields {
		if d.Get(f) == "" {
			out = append(out, f)
		}
	}
	return out
}

// CanAdvance reports whether every required field is set.
func (d Draft) CanAdvance() bool { return len(d.Missing()) == 0 }

// FileCount returns the number of files picked for c.
func (d Draft) FileCount(c catalog.Category) int {
	if !c.Valid() {
		return 0
	}
	return len(d.Files[c])
}

// TotalFiles counts files across all categories.
func (d Draft) TotalFiles() int {
	n := 0
	for _, fs := range d.Files {
		n += len(fs)
	}
	return n
}

// Clone returns a copy that shares no file slices with d.
func (d Draft) Clone() Draft {
	out := d
	for i, fs := range d.Files {
		if fs != nil {
			out.Files[i] = append([]LocalFile(nil), fs...)
		}
	}
	return out
}

// State is the whole wizard: position, draft and submission flags.
type State struct {
	Step       Step
	Draft      Draft
	Submitting bool
	Success    bool

	// Notice is the transient message shown after a failed submission.
	Notice string
}

// Initial is the state of a freshly opened wizard.
func Initial() State { return State{Step: StepMetadata} }

// CanNext reports whether the Next control is enabled.
func (s State) CanNext() bool {
	return s.Step == StepMetadata && s.Draft.CanAdvance()
}

// CanPrevious reports whether the Previous control is enabled.
func (s State) CanPrevious() bool { return s.Step == StepDocuments }

// CanSubmit reports whether the Submit control is enabled. The document step
// has no required fields, so zero files is fine.
func (s State) CanSubmit() bool {
	return s.Step == StepDocuments && !s.Submitting && !s.Success
}

func (s State) clone() State {
	s.Draft = s.Draft.Clone()
	return s
}
