package validation

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cast"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yaoapp/mongoverify/document"
)

// Stringify the comparable text of a value.
// nil is "null", ObjectIDs are hex strings, times are RFC3339 and documents,
// maps and sequences are canonical JSON.
func Stringify(v interface{}) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "null"
		}
		return Stringify(rv.Elem().Interface())
	}

	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return value
	case []byte:
		return string(value)
	case primitive.ObjectID:
		return value.Hex()
	case time.Time:
		return value.Format(time.RFC3339Nano)
	case primitive.DateTime:
		return value.Time().UTC().Format(time.RFC3339Nano)
	case primitive.Decimal128:
		return value.String()
	case fmt.Stringer:
		if _, ok := document.Of(v); !ok {
			return value.String()
		}
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if text, err := document.Canonical(v); err == nil {
			return text
		}
		return fmt.Sprintf("%v", v)
	}

	text, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return text
}

func toInt(v interface{}) int {
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0
	}
	return n
}

// sameObject deep equality where times compare by instant (time.Time.Equal),
// so monotonic readings and location pointers never count. Unexported fields are compared too.
func sameObject(expected, actual interface{}) (same bool) {
	defer func() {
		if r := recover(); r != nil {
			same = assert.ObjectsAreEqual(expected, actual)
		}
	}()
	return cmp.Equal(expected, actual, cmp.Exporter(func(reflect.Type) bool { return true }))
}
