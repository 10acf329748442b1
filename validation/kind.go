package validation

import (
	"fmt"
	"strings"
)

// Kind the kind of a validation rule
type Kind int

const (
	// Equals the field equals the expected value once both are stringified
	Equals Kind = iota + 1
	// NotNull the field is present and not null
	NotNull
	// Null the field is absent or null
	Null
	// CollectionSize the field holds a sequence or mapping of the expected size
	CollectionSize
	// JSON the whole document decodes into a value equal to the expected one
	JSON
	// JSONByKey the sub-document of the field has the same canonical text as the expected one
	JSONByKey
)

var kindNames = map[Kind]string{
	Equals:         "EQUALS",
	NotNull:        "NOT_NULL",
	Null:           "NULL",
	CollectionSize: "COLLECTION_SIZE",
	JSON:           "JSON",
	JSONByKey:      "JSON_BY_KEY",
}

// kindAliases names accepted by ParseKind besides the kind names
var kindAliases = map[string]Kind{
	"MAP_SIZE": CollectionSize,
	"SIZE":     CollectionSize,
	"EQUAL":    Equals,
}

// Kinds every kind in declaration order
func Kinds() []Kind {
	return []Kind{Equals, NotNull, Null, CollectionSize, JSON, JSONByKey}
}

func (k Kind) String() string {
	if name, has := kindNames[k]; has {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind the kind of the name, case and dashes are ignored ("not-null", "NOT_NULL")
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for kind, kindName := range kindNames {
		if normalized == kindName {
			return kind, nil
		}
	}

	if kind, has := kindAliases[normalized]; has {
		return kind, nil
	}
	return 0, fmt.Errorf("unknown validation type: %s", name)
}
