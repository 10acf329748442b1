package document

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JSON the document as compact relaxed Extended JSON
func (doc Document) JSON() (string, error) {
	data, err := bson.MarshalExtJSON(toBSON(doc), false, false)
	if err != nil {
		return "", fmt.Errorf("document to json: %w", err)
	}
	return string(data), nil
}

// String the JSON text, used in failure messages
func (doc Document) String() string {
	text, err := doc.JSON()
	if err != nil {
		return fmt.Sprintf("%v", bson.D(doc))
	}
	return text
}

// Canonical the whitespace-free relaxed Extended JSON form of any value.
// Go maps are written with sorted keys. Document and bson.D keep their own key
// order, so the same fields in another order give another text.
func Canonical(v interface{}) (string, error) {
	data, err := bson.MarshalExtJSON(bson.D{{Key: "v", Value: toBSON(v)}}, false, false)
	if err != nil {
		return "", fmt.Errorf("canonical json: %w", err)
	}

	text := string(data)
	start := strings.IndexByte(text, ':')
	if start < 0 || !strings.HasSuffix(text, "}") {
		return "", fmt.Errorf("canonical json: unexpected output %s", text)
	}
	return strings.TrimSpace(text[start+1 : len(text)-1]), nil
}

// toBSON convert documents and maps nested at any depth into bson.D
func toBSON(v interface{}) interface{} {
	switch value := v.(type) {
	case Document:
		return toBSONDoc(value)
	case primitive.D:
		return toBSONDoc(Document(value))
	case primitive.M:
		return toBSONDoc(FromMap(value))
	case map[string]interface{}:
		return toBSONDoc(FromMap(value))
	case primitive.A:
		return toBSONSlice(value)
	case []interface{}:
		return toBSONSlice(value)
	}
	return v
}

func toBSONDoc(doc Document) bson.D {
	res := make(bson.D, 0, len(doc))
	for _, elem := range doc {
		res = append(res, primitive.E{Key: elem.Key, Value: toBSON(elem.Value)})
	}
	return res
}

func toBSONSlice(values []interface{}) bson.A {
	res := make(bson.A, 0, len(values))
	for _, value := range values {
		res = append(res, toBSON(value))
	}
	return res
}
