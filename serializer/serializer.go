package serializer

import (
	"errors"
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yaoapp/mongoverify/document"
)

// ErrNil nothing to serialize
var ErrNil = errors.New("cannot serialize a nil value into a document")

// FieldNaming name a struct field in documents
type FieldNaming func(field reflect.StructField) string

// Options the serializer settings
type Options struct {
	Converters     []Converter
	SerializeNulls bool
	Naming         FieldNaming
}

// Serializer turn typed values into documents and back.
// Field names come from the bson tag, else the raw Go field name.
type Serializer struct {
	options Options
	api     jsoniter.API
}

// New create a serializer, the converters only apply to this serializer
func New(options Options) *Serializer {
	api := jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
		TagKey:                 "bson",
	}.Froze()

	converters := map[reflect.Type]Codec{}
	for _, converter := range options.Converters {
		converters[converter.Type] = converter.Codec
	}
	api.RegisterExtension(&extension{converters: converters, naming: options.Naming})

	return &Serializer{options: options, api: api}
}

// SerializeNulls whether null values are kept in documents
func (s *Serializer) SerializeNulls() bool {
	return s.options.SerializeNulls
}

// Converters the registered converters
func (s *Serializer) Converters() []Converter {
	return append([]Converter{}, s.options.Converters...)
}

// ToDocument serialize a value into a document.
// Documents are copied, JSON text is parsed, anything else goes through the field naming and converters.
func (s *Serializer) ToDocument(v interface{}) (document.Document, error) {
	switch value := v.(type) {
	case nil:
		return nil, ErrNil

	case document.Document:
		return s.prune(value), nil

	case primitive.D:
		return s.prune(document.Document(value)), nil

	case string:
		doc, err := document.Parse(value)
		if err != nil {
			return nil, err
		}
		return s.prune(doc), nil

	case []byte:
		doc, err := document.Parse(string(value))
		if err != nil {
			return nil, err
		}
		return s.prune(doc), nil
	}

	data, err := s.api.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serialize %T: %w", v, err)
	}

	doc, err := document.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("serialize %T: the value is not a document: %s", v, string(data))
	}
	return s.prune(doc), nil
}

// FromDocument deserialize a document into a new value of the type
func (s *Serializer) FromDocument(doc document.Document, typ reflect.Type) (interface{}, error) {
	if typ == nil {
		return nil, fmt.Errorf("deserialize: the target type is required")
	}

	ptr := reflect.New(typ)
	if err := s.Decode(doc, ptr.Interface()); err != nil {
		return nil, err
	}
	return ptr.Elem().Interface(), nil
}

// Decode deserialize a document into out, out must be a pointer
func (s *Serializer) Decode(doc document.Document, out interface{}) error {
	text, err := doc.JSON()
	if err != nil {
		return err
	}

	if err := s.api.UnmarshalFromString(text, out); err != nil {
		return fmt.Errorf("deserialize %T: %w", out, err)
	}
	return nil
}

// prune drop null values at every depth unless nulls are serialized
func (s *Serializer) prune(doc document.Document) document.Document {
	if s.options.SerializeNulls {
		return doc
	}
	return pruneDoc(doc)
}

func pruneDoc(doc document.Document) document.Document {
	res := make(document.Document, 0, len(doc))
	for _, elem := range doc {
		if elem.Value == nil {
			continue
		}
		res = append(res, primitive.E{Key: elem.Key, Value: pruneValue(elem.Value)})
	}
	return res
}

func pruneValue(v interface{}) interface{} {
	switch value := v.(type) {
	case document.Document:
		return pruneDoc(value)
	case primitive.D:
		return pruneDoc(document.Document(value)).D()
	case primitive.A:
		res := make(primitive.A, 0, len(value))
		for _, item := range value {
			res = append(res, pruneValue(item))
		}
		return res
	}
	return v
}
