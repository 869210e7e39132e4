package errors

import "strings"

// Append combines given errors into a single one. Nil errors are ignored.
// If only one non nil error is given, it is returned as is. The returned
// error is of the kind of the first error, so Is tests the first cause.
func Append(errs ...error) error {
	var flat []error
	for _, e := range errs {
		if errIsNil(e) {
			continue
		}
		if m, ok := e.(*multiError); ok {
			flat = append(flat, m.errs...)
			continue
		}
		flat = append(flat, e)
	}
	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &multiError{errs: flat}
	}
}

type multiError struct {
	errs []error
}

func (m *multiError) Error() string {
	msgs := make([]string, len(m.errs))
	for i, e := range m.errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Cause returns the first collected error.
func (m *multiError) Cause() error {
	return m.errs[0]
}

// Errors returns all collected errors.
func (m *multiError) Errors() []error {
	return m.errs
}
