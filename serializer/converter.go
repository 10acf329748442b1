package serializer

import (
	"reflect"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// Codec convert values of one Go type to and from a JSON-compatible form.
// Encode must not return a value of the same type.
type Codec interface {
	Encode(v interface{}) (interface{}, error)
	Decode(raw interface{}) (interface{}, error)
}

// Converter a codec bound to a type
type Converter struct {
	Type  reflect.Type
	Codec Codec
}

type extension struct {
	jsoniter.DummyExtension
	converters map[reflect.Type]Codec
	naming     FieldNaming
}

// converterEncoder encode T, or *T when pointer is set
type converterEncoder struct {
	typ     reflect.Type
	codec   Codec
	pointer bool
}

type converterDecoder struct {
	typ     reflect.Type
	codec   Codec
	pointer bool
}

func (ext *extension) UpdateStructDescriptor(desc *jsoniter.StructDescriptor) {
	if ext.naming == nil {
		return
	}

	for _, binding := range desc.Fields {
		if len(binding.ToNames) == 0 && len(binding.FromNames) == 0 {
			continue
		}

		field := binding.Field
		name := ext.naming(reflect.StructField{
			Name:      field.Name(),
			PkgPath:   field.PkgPath(),
			Type:      field.Type().Type1(),
			Tag:       field.Tag(),
			Anonymous: field.Anonymous(),
		})
		if name == "" {
			continue
		}
		binding.ToNames = []string{name}
		binding.FromNames = []string{name}
	}
}

// lookup the codec of T or *T. Pointers are handled here too, otherwise the
// json.Marshaler of types like *time.Time would bypass the converter.
func (ext *extension) lookup(typ reflect.Type) (Codec, bool, bool) {
	if codec, has := ext.converters[typ]; has {
		return codec, false, true
	}
	if typ.Kind() == reflect.Ptr {
		if codec, has := ext.converters[typ.Elem()]; has {
			return codec, true, true
		}
	}
	return nil, false, false
}

func (ext *extension) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	codec, pointer, has := ext.lookup(typ.Type1())
	if !has {
		return nil
	}
	return &converterEncoder{typ: typ.Type1(), codec: codec, pointer: pointer}
}

func (ext *extension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	codec, pointer, has := ext.lookup(typ.Type1())
	if !has {
		return nil
	}
	return &converterDecoder{typ: typ.Type1(), codec: codec, pointer: pointer}
}

func (enc *converterEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return reflect.NewAt(enc.typ, ptr).Elem().IsZero()
}

func (enc *converterEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	value := reflect.NewAt(enc.typ, ptr).Elem()
	if enc.pointer {
		if value.IsNil() {
			stream.WriteNil()
			return
		}
		value = value.Elem()
	}

	out, err := enc.codec.Encode(value.Interface())
	if err != nil {
		stream.Error = err
		return
	}
	stream.WriteVal(out)
}

func (dec *converterDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	raw := iter.Read()
	if iter.Error != nil {
		return
	}

	target := reflect.NewAt(dec.typ, ptr).Elem()
	if raw == nil && dec.pointer {
		target.Set(reflect.Zero(dec.typ))
		return
	}

	elemType := dec.typ
	if dec.pointer {
		elemType = dec.typ.Elem()
	}

	value, err := dec.codec.Decode(raw)
	if err != nil {
		iter.ReportError("decode "+elemType.String(), err.Error())
		return
	}

	rv := reflect.Zero(elemType)
	if value != nil {
		rv = reflect.ValueOf(value)
		switch {
		case rv.Type().AssignableTo(elemType):
		case rv.Type().ConvertibleTo(elemType):
			rv = rv.Convert(elemType)
		default:
			iter.ReportError("decode "+elemType.String(), "the codec returned "+rv.Type().String())
			return
		}
	}

	if dec.pointer {
		elem := reflect.New(elemType)
		elem.Elem().Set(rv)
		target.Set(elem)
		return
	}
	target.Set(rv)
}
