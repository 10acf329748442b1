package document

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExtractPath extracts a value using dot-notation path with array index support
// Supports: "field", "field.nested", "field[0]", "field[0].nested", "field.nested[0].value"
func ExtractPath(data interface{}, path string) (interface{}, bool) {
	current := data

	segments := ParsePathSegments(path)
	if len(segments) == 0 {
		return nil, false
	}

	for _, segment := range segments {
		if strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]") {
			index, err := strconv.Atoi(segment[1 : len(segment)-1])
			if err != nil {
				return nil, false
			}

			arr, ok := asSlice(current)
			if !ok || index < 0 || index >= len(arr) {
				return nil, false
			}
			current = arr[index]
			continue
		}

		doc, ok := Of(current)
		if !ok {
			return nil, false
		}
		value, has := doc.Lookup(segment)
		if !has {
			return nil, false
		}
		current = value
	}

	return current, true
}

// ParsePathSegments splits a path like "wheres[0].like" into ["wheres", "[0]", "like"]
func ParsePathSegments(path string) []string {
	var segments []string
	var current strings.Builder

	for i := 0; i < len(path); i++ {
		ch := path[i]
		switch ch {
		case '.':
			if current.Len() > 0 {
				segments = append(segments, current.String())
				current.Reset()
			}
		case '[':
			if current.Len() > 0 {
				segments = append(segments, current.String())
				current.Reset()
			}
			j := i + 1
			for j < len(path) && path[j] != ']' {
				j++
			}
			if j < len(path) {
				segments = append(segments, path[i:j+1])
				i = j
			}
		default:
			current.WriteByte(ch)
		}
	}

	if current.Len() > 0 {
		segments = append(segments, current.String())
	}

	return segments
}

func asSlice(v interface{}) ([]interface{}, bool) {
	switch value := v.(type) {
	case primitive.A:
		return value, true
	case []interface{}:
		return value, true
	}
	return nil, false
}
