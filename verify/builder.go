package verify

import (
	"reflect"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yaoapp/mongoverify/capture"
	"github.com/yaoapp/mongoverify/operation"
	"github.com/yaoapp/mongoverify/serializer"
	"github.com/yaoapp/mongoverify/template"
	"github.com/yaoapp/mongoverify/validation"
)

// Messages of the precondition failures
const (
	MandatoryOperation      = "mandatory field: Operation"
	MandatoryClass          = "mandatory field: Class"
	MandatoryCollectionName = "mandatory field: CollectionName"
	MandatoryMode           = "mandatory field: Verification Mode"
	MandatoryFieldName      = "mandatory field: FieldName"
	MandatoryExpectedSize   = "mandatory field: Map Size"
	MandatoryExpectedValue  = "mandatory field: expectedValue"
	MandatoryAdapterClass   = "mandatory field: Adapter Class"
	MandatoryTypeAdapter    = "mandatory field: Type Adapter"
	MandatoryKeyField       = "mandatory field: KeyField"
	MandatoryHandle         = "mandatory field: Mongo Template"
)

// TestingT the test handle failures are reported to
type TestingT interface {
	require.TestingT
	Helper()
}

// Builder accumulate a verification request. Every method checks its operand
// and fails the test at once when it is missing.
type Builder struct {
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

// That start a verification request reporting to t
func That(t TestingT) *Builder {
	return &Builder{
		t:              t,
		mode:           capture.Once(),
		serializeNulls: true,
	}
}

func (b *Builder) fail(message string) *Builder {
	b.t.Helper()
	b.t.Errorf("%s", message)
	b.t.FailNow()
	return b
}

// Operation the kind of call to verify
func (b *Builder) Operation(kind operation.Kind) *Builder {
	b.t.Helper()
	if _, err := operation.Method(kind); err != nil {
		return b.fail(MandatoryOperation)
	}
	b.kind = kind
	return b
}

// OfType the entity type of the call, given by a sample value or a pointer to one
func (b *Builder) OfType(sample interface{}) *Builder {
	b.t.Helper()
	typ := template.TypeOf(sample)
	if typ == nil {
		return b.fail(MandatoryClass)
	}
	b.typ = typ
	return b
}

// OfReflectType the entity type of the call
func (b *Builder) OfReflectType(typ reflect.Type) *Builder {
	b.t.Helper()
	if typ == nil {
		return b.fail(MandatoryClass)
	}
	b.typ = template.BaseType(typ)
	return b
}

// FromCollection only calls on the named collection match
func (b *Builder) FromCollection(name string) *Builder {
	b.t.Helper()
	if name == "" {
		return b.fail(MandatoryCollectionName)
	}
	b.collection = name
	return b
}

// Mode the expected number of calls, exactly one by default
func (b *Builder) Mode(mode capture.Mode) *Builder {
	b.t.Helper()
	if mode == nil {
		return b.fail(MandatoryMode)
	}
	b.mode = mode
	return b
}

// Times exactly n calls
func (b *Builder) Times(n int) *Builder {
	b.t.Helper()
	if n < 0 {
		return b.fail(MandatoryMode)
	}
	return b.Mode(capture.Times(n))
}

// ValidatesEquals the field equals expected once both are stringified
func (b *Builder) ValidatesEquals(field string, expected interface{}) *Builder {
	b.t.Helper()
	if field == "" {
		return b.fail(MandatoryFieldName)
	}
	return b.add(validation.EqualsRule(field, expected))
}

// ValidatesNull the field is absent or null
func (b *Builder) ValidatesNull(field string) *Builder {
	b.t.Helper()
	if field == "" {
		return b.fail(MandatoryFieldName)
	}
	return b.add(validation.NullRule(field))
}

// ValidatesNotNull the field is present and not null
func (b *Builder) ValidatesNotNull(field string) *Builder {
	b.t.Helper()
	if field == "" {
		return b.fail(MandatoryFieldName)
	}
	return b.add(validation.NotNullRule(field))
}

// ValidatesCollectionSize the field holds size elements, absent and non collection fields hold 0
func (b *Builder) ValidatesCollectionSize(field string, size int) *Builder {
	b.t.Helper()
	if field == "" {
		return b.fail(MandatoryFieldName)
	}
	if size < 0 {
		return b.fail(MandatoryExpectedSize)
	}
	return b.add(validation.CollectionSizeRule(field, size))
}

// ValidatesJSON the whole document decodes into a value equal to expected
func (b *Builder) ValidatesJSON(expected interface{}) *Builder {
	b.t.Helper()
	if expected == nil {
		return b.fail(MandatoryExpectedValue)
	}
	return b.add(validation.JSONRule(expected))
}

// ValidatesJSONByKey the sub-document at field has the canonical text of expected
func (b *Builder) ValidatesJSONByKey(field string, expected interface{}) *Builder {
	b.t.Helper()
	if field == "" {
		return b.fail(MandatoryFieldName)
	}
	if expected == nil {
		return b.fail(MandatoryExpectedValue)
	}
	return b.add(validation.JSONByKeyRule(field, expected))
}

// Validates add a prepared rule
func (b *Builder) Validates(rule validation.Rule) *Builder {
	b.t.Helper()
	if err := rule.Check(); err != nil {
		return b.fail(err.Error())
	}
	return b.add(rule)
}

func (b *Builder) add(rule validation.Rule) *Builder {
	b.rules = append(b.rules, rule)
	return b
}

// AllowSerializeNulls whether null fields are kept when objects are serialized, true by default
func (b *Builder) AllowSerializeNulls(allow bool) *Builder {
	b.serializeNulls = allow
	return b
}

// AddConverter serialize the values of typ with the codec during this request only
func (b *Builder) AddConverter(typ reflect.Type, codec serializer.Codec) *Builder {
	b.t.Helper()
	if typ == nil {
		return b.fail(MandatoryAdapterClass)
	}
	if codec == nil {
		return b.fail(MandatoryTypeAdapter)
	}
	b.converters = append(b.converters, serializer.Converter{Type: typ, Codec: codec})
	return b
}

// KeyField the field the key of FindByID calls is stored under
func (b *Builder) KeyField(name string) *Builder {
	b.t.Helper()
	if name == "" {
		return b.fail(MandatoryKeyField)
	}
	b.keyField = name
	return b
}

// Build snapshot the builder, later changes to the builder do not affect the request
func (b *Builder) Build() *Request {
	return &Request{
		t:              b.t,
		kind:           b.kind,
		typ:            b.typ,
		collection:     b.collection,
		mode:           b.mode,
		rules:          append([]validation.Rule{}, b.rules...),
		converters:     append([]serializer.Converter{}, b.converters...),
		serializeNulls: b.serializeNulls,
		keyField:       b.keyField,
	}
}

// Run build the request and run it against the mock
func (b *Builder) Run(handle *mock.Mock) {
	b.t.Helper()
	b.Build().Run(handle)
}
