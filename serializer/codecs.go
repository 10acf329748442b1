package serializer

import (
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ISOLocalDateTime the layout of a date-time without zone
const ISOLocalDateTime = "2006-01-02T15:04:05.999999999"

// ObjectIDCodec write ObjectIDs as their hex string
type ObjectIDCodec struct{}

// TimeCodec write time.Time with a layout, ISOLocalDateTime when empty.
// Values without zone in the layout are read back as UTC.
type TimeCodec struct {
	Layout string
}

// ObjectIDConverter the ObjectID codec bound to primitive.ObjectID
func ObjectIDConverter() Converter {
	return Converter{Type: reflect.TypeOf(primitive.ObjectID{}), Codec: ObjectIDCodec{}}
}

// TimeConverter the time codec bound to time.Time
func TimeConverter(layout string) Converter {
	return Converter{Type: reflect.TypeOf(time.Time{}), Codec: TimeCodec{Layout: layout}}
}

// Encode the hex string
func (ObjectIDCodec) Encode(v interface{}) (interface{}, error) {
	id, ok := v.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("ObjectIDCodec: %T is not an ObjectID", v)
	}
	return id.Hex(), nil
}

// Decode a hex string or an {"$oid": hex} object
func (ObjectIDCodec) Decode(raw interface{}) (interface{}, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return primitive.ObjectIDFromHex(value)
	case map[string]interface{}:
		if hex, ok := value["$oid"].(string); ok {
			return primitive.ObjectIDFromHex(hex)
		}
	}
	return nil, fmt.Errorf("ObjectIDCodec: cannot read %v as an ObjectID", raw)
}

func (c TimeCodec) layout() string {
	if c.Layout == "" {
		return ISOLocalDateTime
	}
	return c.Layout
}

// Encode the formatted time
func (c TimeCodec) Encode(v interface{}) (interface{}, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("TimeCodec: %T is not a time.Time", v)
	}
	return t.Format(c.layout()), nil
}

// Decode parse the formatted time
func (c TimeCodec) Decode(raw interface{}) (interface{}, error) {
	switch value := raw.(type) {
	case nil:
		return nil, nil
	case string:
		return time.Parse(c.layout(), value)
	}
	return nil, fmt.Errorf("TimeCodec: cannot read %v as a time", raw)
}
