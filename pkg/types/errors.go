package types

import (
	"errors"
	"fmt"
	"strings"
)

// Conversion and resolution errors. Callers check them with errors.Is.
var (
	ErrUnsupportedType  = errors.New("unsupported value type")
	ErrNonStringKey     = errors.New("value assignment array must contain entries with property string keys, array has entry with non-string key")
	ErrPropertyNotFound = errors.New("property not found")
	ErrEmptyProperty    = errors.New("property name must not be empty")
	ErrInvalidJSON      = errors.New("invalid JSON input")
)

// Registry errors.
var (
	ErrAliasConflict   = errors.New("label or alias already names another property")
	ErrInvalidRegistry = errors.New("invalid registry file")
)

// Reasons reported by UnsupportedTypeError.
const (
	ReasonRecordEntry = "property value must be scalar or array of scalar|null, array with entry of other type given"
	ReasonNotValue    = "property value must be scalar or array of scalar|null, value given was neither scalar nor array"
	ReasonNotScalar   = "property value must be scalar, non-scalar given"
)

// UnsupportedTypeError reports a user value that is not a scalar, null, or
// array of those. It matches ErrUnsupportedType.
type UnsupportedTypeError struct {
	Reason string
	Got    string
}

func (e *UnsupportedTypeError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrUnsupportedType) succeed.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// PropertyNotFoundError reports an ID-shaped property designator that the
// registry does not know. It matches ErrPropertyNotFound.
type PropertyNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *PropertyNotFoundError) Error() string {
	msg := fmt.Sprintf("property %q is not known", e.Name)
	if len(e.Suggestions) == 0 {
		return msg
	}
	quoted := make([]string, len(e.Suggestions))
	for i, s := range e.Suggestions {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return msg + " (did you mean " + strings.Join(quoted, ", ") + "?)"
}

// Is makes errors.Is(err, ErrPropertyNotFound) succeed.
func (e *PropertyNotFoundError) Is(target error) bool {
	return target == ErrPropertyNotFound
}

// InvalidDefinitionError reports a malformed predefined property definition.
type InvalidDefinitionError struct {
	ID     string
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("invalid property definition %q: %s", e.ID, e.Reason)
}

// Severity tells the boundary how to surface an error to the end user.
type Severity int

const (
	// SeverityWarning aborts the user operation and is shown as a warning.
	SeverityWarning Severity = iota
	// SeverityNotice is informational; the operation result is still usable.
	SeverityNotice
	// SeverityFatal aborts the whole script run.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityNotice:
		return "notice"
	case SeverityFatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// CallerError prefixes an error with the user-facing operation that raised
// it, e.g. "subobject: property value must be scalar, non-scalar given".
type CallerError struct {
	Caller   string
	Severity Severity
	Err      error
}

// NewCallerError wraps err for the given caller. If err already carries a
// caller prefix, it is returned unchanged apart from the severity.
func NewCallerError(caller string, severity Severity, err error) *CallerError {
	var ce *CallerError
	if errors.As(err, &ce) {
		return &CallerError{Caller: ce.Caller, Severity: severity, Err: ce.Err}
	}
	return &CallerError{Caller: caller, Severity: severity, Err: err}
}

func (e *CallerError) Error() string {
	if e.Caller == "" {
		return e.Err.Error()
	}
	return e.Caller + ": " + e.Err.Error()
}

func (e *CallerError) Unwrap() error {
	return e.Err
}

// SeverityOf returns the severity carried by err, defaulting to
// SeverityWarning for errors without a CallerError in their chain.
func SeverityOf(err error) Severity {
	var ce *CallerError
	if errors.As(err, &ce) {
		return ce.Severity
	}
	return SeverityWarning
}
