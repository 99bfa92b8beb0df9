package wizard

import (
	"grantdocs/internal/catalog"
)

// GenericFailureMessage is shown when a failed submission carries no server message.
const GenericFailureMessage = "Failed to upload files. Please try again."

// Action is an input to Reduce.
type Action interface {
	action()
}

type (
	// SetField sets one scalar field.
	SetField struct {
		Field Field
		Value string
	}

	// AddFiles appends picked files to a category.
	AddFiles struct {
		Category catalog.Category
		Files    []LocalFile
	}

	// RemoveFile drops the file at Index from a category.
	RemoveFile struct {
		Category catalog.Category
		Index    int
	}

	Next          struct{}
	Previous      struct{}
	SubmitStarted struct{}

	SubmitSucceeded struct{}

	// SubmitFailed ends a submission; an empty Message shows GenericFailureMessage.
	SubmitFailed struct {
		Message string
	}

	// Reset discards the draft and returns to the first step.
	Reset struct{}

	DismissNotice struct{}
)

func (SetField) action()        {}
func (AddFiles) action()        {}
func (RemoveFile) action()      {}
func (Next) action()            {}
func (Previous) action()        {}
func (SubmitStarted) action()   {}
func (SubmitSucceeded) action() {}
func (SubmitFailed) action()    {}
func (Reset) action()           {}
func (DismissNotice) action()   {}

// Reduce returns the state after applying a to s. It never mutates s, and
// actions that are not allowed in s return s unchanged.
func Reduce(s State, a Action) State {
	s = s.clone()

	switch a := a.(type) {
	case SetField:
		// The success panel is read-only until the reset.
		if s.Success {
			return s
		}
		s.Draft.set(a.Field, a.Value)

	case AddFiles:
		if s.Success || !a.Category.Valid() || len(a.Files) == 0 {
			return s
		}
		s.Draft.Files[a.Category] = append(s.Draft.Files[a.Category], a.Files...)

	case RemoveFile:
		if s.Success || !a.Category.Valid() {
			return s
		}
		fs := s.Draft.Files[a.Category]
		if a.Index < 0 || a.Index >= len(fs) {
			return s
		}
		s.Draft.Files[a.Category] = append(fs[:a.Index:a.Index], fs[a.Index+1:]...)

	case Next:
		if s.CanNext() {
			s.Step = StepDocuments
		}

	case Previous:
		// Allowed while submitting; the request finishes regardless.
		if s.CanPrevious() {
			s.Step = StepMetadata
		}

	case SubmitStarted:
		if s.CanSubmit() {
			s.Submitting = true
			s.Notice = ""
		}

	case SubmitSucceeded:
		if !s.Submitting {
			return s
		}
		s.Submitting = false
		s.Success = true
		s.Notice = ""

	case SubmitFailed:
		if !s.Submitting {
			return s
		}
		s.Submitting = false
		s.Notice = a.Message
		if s.Notice == "" {
			s.Notice = GenericFailureMessage
		}

	case Reset:
		return Initial()

	case DismissNotice:
		s.Notice = ""
	}

	return s
}
