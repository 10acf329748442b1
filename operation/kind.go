package operation

import (
	"fmt"
	"strings"
)

// Kind the shape of a data-access call
type Kind int

const (
	// Find read many documents
	Find Kind = iota + 1
	// FindOne read one document
	FindOne
	// FindByID read one document by its key
	FindByID
	// FindAndRemove delete a document and return it
	FindAndRemove
	// UpdateFirst update the first matching document
	UpdateFirst
	// UpdateMulti update every matching document
	UpdateMulti
	// Upsert update or insert
	Upsert
	// Save write the whole object
	Save
)

var kindNames = map[Kind]string{
	Find:          "FIND",
	FindOne:       "FIND_ONE",
	FindByID:      "FIND_BY_ID",
	FindAndRemove: "FIND_AND_REMOVE",
	UpdateFirst:   "UPDATE_FIRST",
	UpdateMulti:   "UPDATE_MULTI",
	Upsert:        "UPSERT",
	Save:          "SAVE",
}

// Kinds every supported kind in declaration order
func Kinds() []Kind {
	return []Kind{Find, FindOne, FindByID, FindAndRemove, UpdateFirst, UpdateMulti, Upsert, Save}
}

func (k Kind) String() string {
	if name, has := kindNames[k]; has {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind the kind of the name, "FIND_BY_ID", "find_by_id" and "FindByID" are the same kind
func ParseKind(name string) (Kind, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for kind, kindName := range kindNames {
		if normalized == kindName || normalized == strings.ReplaceAll(kindName, "_", "") {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("operation %q does not exist", name)
}
