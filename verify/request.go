package verify

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yaoapp/kun/log"

	"github.com/yaoapp/mongoverify/capture"
	"github.com/yaoapp/mongoverify/operation"
	"github.com/yaoapp/mongoverify/serializer"
	"github.com/yaoapp/mongoverify/validation"
)

// Request a finished verification request
type Request struct {
	t              TestingT
	kind           operation.Kind
	typ            reflect.Type
	collection     string
	mode           capture.Mode
	rules          []validation.Rule
	converters     []serializer.Converter
	serializeNulls bool
	keyField       string
}

// Operation the kind of call
func (r *Request) Operation() operation.Kind { return r.kind }

// Type the entity type
func (r *Request) Type() reflect.Type { return r.typ }

// Collection the collection, empty for any
func (r *Request) Collection() string { return r.collection }

// Mode the expected number of calls
func (r *Request) Mode() capture.Mode { return r.mode }

// Rules the rules in execution order
func (r *Request) Rules() []validation.Rule {
	return append([]validation.Rule{}, r.rules...)
}

// Converters the converters used while the request runs
func (r *Request) Converters() []serializer.Converter {
	return append([]serializer.Converter{}, r.converters...)
}

// SerializeNulls whether null fields are kept
func (r *Request) SerializeNulls() bool { return r.serializeNulls }

// KeyField the key field of FindByID, the configured one when empty
func (r *Request) KeyField() string { return r.keyField }

func (r *Request) String() string {
	return fmt.Sprintf("%s %v %s", r.kind, r.typ, r.mode)
}

// Verify rebuild the document of the call and apply every rule in order.
// The process wide serializer uses the request converters while it runs and is
// reset on every exit path. Call count mismatches come back as
// *capture.MismatchError and failed rules as *validation.MismatchError.
func (r *Request) Verify(handle *mock.Mock) error {
	if handle == nil {
		return errors.New(MandatoryHandle)
	}
	if r.kind == 0 {
		return errors.New(MandatoryOperation)
	}
	if r.typ == nil {
		return errors.New(MandatoryClass)
	}

	mode := r.mode
	if mode == nil {
		mode = capture.Once()
	}

	s := serializer.Configure(serializer.Options{Converters: r.converters, SerializeNulls: r.serializeNulls})
	defer serializer.Reset()

	options := []operation.Option{operation.WithSerializer(s)}
	if r.keyField != "" {
		options = append(options, operation.WithKeyField(r.keyField))
	}

	target := operation.Target{Type: r.typ, Collection: r.collection}
	doc, err := operation.NewRegistry(options...).Reconstruct(r.kind, handle, target, mode)
	if err != nil {
		return err
	}

	log.Trace("[VERIFY] %s: %s, %d rule(s)", r, doc, len(r.rules))
	return validation.NewValidator(s).ApplyAll(doc, r.rules)
}

// Run verify and fail the test on the first error
func (r *Request) Run(handle *mock.Mock) {
	r.t.Helper()
	if err := r.Verify(handle); err != nil {
		log.Error("[VERIFY] %s: %s", r, err.Error())
		require.NoError(r.t, err)
	}
}
