package capture

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/stretchr/testify/mock"
	"github.com/yaoapp/kun/log"

	"github.com/yaoapp/mongoverify/query"
	"github.com/yaoapp/mongoverify/template"
)

// ErrNoHandle the mock handle is nil
var ErrNoHandle = errors.New("mock handle is required")

// MismatchError the recorded calls do not satisfy the expected invocation count.
// Diffs holds the testify argument diff of every recorded call of the method
// that did not match, as testify prints it.
type MismatchError struct {
	Method  string
	Mode    Mode
	Matched int
	Cause   error
	Diffs   []string
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "mock: %s verified with %s: %s", e.Method, e.Mode, e.Cause)
	if len(e.Diffs) == 0 {
		if e.Matched == 0 {
			fmt.Fprintf(&sb, "\nWanted but not invoked: %s", e.Method)
		}
		return sb.String()
	}

	fmt.Fprintf(&sb, "\nOther calls of %s with different arguments:", e.Method)
	for i, diff := range e.Diffs {
		fmt.Fprintf(&sb, "\n%d:\n%s", i+1, diff)
	}
	return sb.String()
}

// Capture verify that the method was called on the mock as many times as the
// mode expects with arguments satisfying the matchers, and return the
// arguments of the most recent matching call. Nil arguments are returned when
// the mode allows zero calls and none matched.
func Capture(m *mock.Mock, method string, mode Mode, matchers ...interface{}) (mock.Arguments, error) {
	if m == nil {
		return nil, ErrNoHandle
	}

	if mode == nil {
		mode = Once()
	}

	expected := mock.Arguments(matchers)
	matched := []mock.Arguments{}
	diffs := []string{}
	for _, call := range m.Calls {
		if call.Method != method {
			continue
		}

		diff, failures := expected.Diff(call.Arguments)
		if failures == 0 {
			matched = append(matched, call.Arguments)
			continue
		}
		diffs = append(diffs, diff)
	}

	log.Trace("[CAPTURE] %s: %d matching call(s), %d other call(s), mode %s", method, len(matched), len(diffs), mode)
	if err := mode.Verify(len(matched)); err != nil {
		return nil, &MismatchError{Method: method, Mode: mode, Matched: len(matched), Cause: err, Diffs: diffs}
	}

	if len(matched) == 0 {
		return nil, nil
	}
	return matched[len(matched)-1], nil
}

// OfType match an argument whose entity type is typ (pointers and slices are unwrapped)
func OfType(typ reflect.Type) interface{} {
	base := template.BaseType(typ)
	return mock.MatchedBy(func(v interface{}) bool {
		return base != nil && template.TypeOf(v) == base
	})
}

// Collection match the collection argument, any collection when name is empty
func Collection(name string) interface{} {
	if name == "" {
		return mock.Anything
	}
	return name
}

// Value the argument at index
func Value(args mock.Arguments, index int) (interface{}, error) {
	if index < 0 || index >= len(args) {
		return nil, fmt.Errorf("argument %d was not captured, the call has %d argument(s)", index, len(args))
	}
	return args[index], nil
}

// QueryAt the *query.Query argument at index
func QueryAt(args mock.Arguments, index int) (*query.Query, error) {
	v, err := Value(args, index)
	if err != nil {
		return nil, err
	}

	q, ok := v.(*query.Query)
	if !ok {
		return nil, fmt.Errorf("argument %d is %T, not *query.Query", index, v)
	}
	return q, nil
}

// UpdateAt the *query.Update argument at index
func UpdateAt(args mock.Arguments, index int) (*query.Update, error) {
	v, err := Value(args, index)
	if err != nil {
		return nil, err
	}

	u, ok := v.(*query.Update)
	if !ok {
		return nil, fmt.Errorf("argument %d is %T, not *query.Update", index, v)
	}
	return u, nil
}
