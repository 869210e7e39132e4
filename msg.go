package ledger

import (
	"reflect"

	"github.com/realchain/ledger/errors"
)

// setMsg copies the message into destination. Destination must be a pointer
// to a value of the same type as the message (or the type the message
// points to).
func setMsg(destination interface{}, msg Msg) error {
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	dest = dest.Elem()

	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr && dest.Kind() != reflect.Ptr {
		if src.IsNil() {
			return errors.Wrap(errors.ErrMsg, "nil message")
		}
		src = src.Elem()
	}
	if src.Type() != dest.Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %s", dest.Type(), src.Type())
	}
	dest.Set(src)
	return nil
}
