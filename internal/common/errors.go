package common

import "fmt"

// LoadError reports a geometry or waypoint file that could not be turned into
// an in-memory model. Line is 0 when the failure is not tied to a line.
type LoadError struct {
	Path string
	Line int
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("load %s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("load %s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("load line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("load: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WithPath returns err with its LoadError path set, or err unchanged if it is
// not a *LoadError.
func WithPath(err error, path string) error {
	if le, ok := err.(*LoadError); ok {
		cp := *le
		cp.Path = path
		return &cp
	}
	return err
}
