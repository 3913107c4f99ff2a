package nrml

import (
	"errors"
	"strings"
)

// Kind classifies a read failure.
type Kind string

const (
	KindDocumentRead          Kind = "document_read"
	KindMissingField          Kind = "missing_field"
	KindMalformedGeometry     Kind = "malformed_geometry"
	KindMalformedNumber       Kind = "malformed_number"
	KindUnknownRuptureType    Kind = "unknown_rupture_type"
	KindAmbiguousRuptureType  Kind = "ambiguous_rupture_type"
	KindUnknownTectonicRegion Kind = "unknown_tectonic_region"
)

var (
	ErrDocumentRead          = errors.New("document could not be read")
	ErrMissingField          = errors.New("missing field")
	ErrMalformedGeometry     = errors.New("malformed geometry")
	ErrMalformedNumber       = errors.New("malformed number")
	ErrUnknownRuptureType    = errors.New("unknown rupture type")
	ErrAmbiguousRuptureType  = errors.New("ambiguous rupture type")
	ErrUnknownTectonicRegion = errors.New("unresolved tectonic region")
)

func (k Kind) sentinel() error {
	switch k {
	case KindDocumentRead:
		return ErrDocumentRead
	case KindMissingField:
		return ErrMissingField
	case KindMalformedGeometry:
		return ErrMalformedGeometry
	case KindMalformedNumber:
		return ErrMalformedNumber
	case KindUnknownRuptureType:
		return ErrUnknownRuptureType
	case KindAmbiguousRuptureType:
		return ErrAmbiguousRuptureType
	case KindUnknownTectonicRegion:
		return ErrUnknownTectonicRegion
	default:
		return nil
	}
}

// Error is the failure returned by every operation in this package.
type Error struct {
	Kind Kind
	// Stage is the last read stage completed before the failure.
	Stage  Stage
	Source string
	// Field is the XPath of the offending node, when one applies.
	Field  string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		b.WriteString(sentinel.Error())
	} else {
		b.WriteString(string(e.Kind))
	}
	if e.Field != "" {
		b.WriteString(" ")
		b.WriteString(e.Field)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying cause (I/O, XML syntax, region lookup).
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	sentinel := e.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// ErrorKind reports the kind as a string for callers that classify errors
// without importing this package.
func (e *Error) ErrorKind() string { return string(e.Kind) }

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var nerr *Error
	if errors.As(err, &nerr) {
		return nerr.Kind
	}
	return ""
}

func newError(kind Kind, field, detail string) *Error {
	return &Error{Kind: kind, Field: field, Detail: detail}
}

// withField copies err, filling in field when the error does not name one.
func withField(err error, field string) error {
	var nerr *Error
	if !errors.As(err, &nerr) {
		return err
	}
	cp := *nerr
	if cp.Field == "" {
		cp.Field = field
	}
	return &cp
}

// annotate stamps source and stage onto err.
func annotate(err error, source string, stage Stage) error {
	var nerr *Error
	if !errors.As(err, &nerr) {
		return &Error{Kind: KindDocumentRead, Source: source, Stage: stage, Err: err}
	}
	cp := *nerr
	cp.Source = source
	cp.Stage = stage
	return &cp
}
