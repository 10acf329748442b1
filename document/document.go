package document

import (
	"fmt"
	"reflect"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document the ordered key/value tree reconstructed from captured call arguments.
// Keys are unique, values are scalars, nested documents or sequences.
type Document bson.D

// New create a document from the given elements, a later duplicated key replaces the earlier value
func New(elems ...primitive.E) Document {
	doc := Document{}
	for _, elem := range elems {
		doc = doc.Set(elem.Key, elem.Value)
	}
	return doc
}

// FromMap create a document from a map, keys are sorted to keep the result stable
func FromMap(m map[string]interface{}) Document {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	doc := make(Document, 0, len(keys))
	for _, key := range keys {
		doc = append(doc, primitive.E{Key: key, Value: m[key]})
	}
	return doc
}

// Parse parse relaxed or canonical Extended JSON text into a document, keeping the key order
func Parse(text string) (Document, error) {
	var d bson.D
	if err := bson.UnmarshalExtJSON([]byte(text), false, &d); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return Document(d), nil
}

// Of convert a document-like value (Document, bson.D, bson.M, map) to a Document
func Of(v interface{}) (Document, bool) {
	switch value := v.(type) {
	case Document:
		return value, true
	case primitive.D:
		return Document(value), true
	case primitive.M:
		return FromMap(value), true
	case map[string]interface{}:
		return FromMap(value), true
	}
	return nil, false
}

// D the document as bson.D
func (doc Document) D() bson.D {
	return bson.D(doc)
}

// Len the number of keys
func (doc Document) Len() int {
	return len(doc)
}

// Keys the keys in order
func (doc Document) Keys() []string {
	keys := make([]string, 0, len(doc))
	for _, elem := range doc {
		keys = append(keys, elem.Key)
	}
	return keys
}

// Lookup return the value of the key and whether the key exists
func (doc Document) Lookup(key string) (interface{}, bool) {
	for _, elem := range doc {
		if elem.Key == key {
			return elem.Value, true
		}
	}
	return nil, false
}

// Get return the value of the key, nil if absent
func (doc Document) Get(key string) interface{} {
	value, _ := doc.Lookup(key)
	return value
}

// Has check whether the key exists
func (doc Document) Has(key string) bool {
	_, has := doc.Lookup(key)
	return has
}

// Set return a copy of the document with the key set, an existing key keeps its position
func (doc Document) Set(key string, value interface{}) Document {
	res := make(Document, len(doc), len(doc)+1)
	copy(res, doc)
	for i := range res {
		if res[i].Key == key {
			res[i].Value = value
			return res
		}
	}
	return append(res, primitive.E{Key: key, Value: value})
}

// Resolve return the value at the path. The exact key wins, otherwise dotted
// and indexed paths ("a.b", "items[0].name") walk nested documents and sequences.
func (doc Document) Resolve(path string) (interface{}, bool) {
	if value, has := doc.Lookup(path); has {
		return value, true
	}
	return ExtractPath(doc, path)
}

// Merge return a copy of base with every key of the overlays applied in order, overlay values win
func Merge(base Document, overlays ...Document) Document {
	res := make(Document, len(base))
	copy(res, base)
	for _, overlay := range overlays {
		for _, elem := range overlay {
			res = res.Set(elem.Key, elem.Value)
		}
	}
	return res
}

// ToMap convert the document to a map, nested documents are converted too
func (doc Document) ToMap() map[string]interface{} {
	res := make(map[string]interface{}, len(doc))
	for _, elem := range doc {
		res[elem.Key] = toPlain(elem.Value)
	}
	return res
}

func toPlain(v interface{}) interface{} {
	if nested, ok := Of(v); ok {
		return nested.ToMap()
	}

	switch value := v.(type) {
	case primitive.A:
		return toPlainSlice(value)
	case []interface{}:
		return toPlainSlice(value)
	}
	return v
}

func toPlainSlice(values []interface{}) []interface{} {
	res := make([]interface{}, 0, len(values))
	for _, value := range values {
		res = append(res, toPlain(value))
	}
	return res
}

// CollectionLength the size of a sequence or mapping field.
// An absent or null field counts 0, and so does any value that is not a collection.
func CollectionLength(doc Document, field string) int {
	value, has := doc.Resolve(field)
	if !has || value == nil {
		return 0
	}
	return Len(value)
}

// Len the size of a sequence or mapping value, 0 for anything else
func Len(value interface{}) int {
	switch v := value.(type) {
	case nil, []byte, primitive.Binary, string:
		return 0
	case Document:
		return len(v)
	case primitive.D:
		return len(v)
	case primitive.A:
		return len(v)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len()
	}
	return 0
}
