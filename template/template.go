package template

import (
	"context"
	"reflect"

	"github.com/yaoapp/mongoverify/query"
)

// Template the document-oriented data-access layer. The code under test issues
// calls against it and the verification helpers inspect the recorded calls.
//
// result and entity identify the target type of a call: a pointer to an entity,
// a pointer to a slice of entities, an entity value or a typed nil pointer.
// An empty collection means the default collection of the entity.
type Template interface {
	Find(ctx context.Context, q *query.Query, result interface{}, collection string) error
	FindOne(ctx context.Context, q *query.Query, result interface{}, collection string) error
	FindByID(ctx context.Context, id interface{}, result interface{}, collection string) error
	FindAndRemove(ctx context.Context, q *query.Query, result interface{}, collection string) error
	UpdateFirst(ctx context.Context, q *query.Query, u *query.Update, entity interface{}, collection string) (*UpdateResult, error)
	UpdateMulti(ctx context.Context, q *query.Query, u *query.Update, entity interface{}, collection string) (*UpdateResult, error)
	Upsert(ctx context.Context, q *query.Query, u *query.Update, entity interface{}, collection string) (*UpdateResult, error)
	Save(ctx context.Context, object interface{}, collection string) error
}

// UpdateResult the outcome of an update call
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
	UpsertedID    interface{}
}

// BaseType the entity type behind pointers and slices
func BaseType(typ reflect.Type) reflect.Type {
	for typ != nil {
		switch typ.Kind() {
		case reflect.Ptr, reflect.Slice:
			typ = typ.Elem()
			continue
		}
		return typ
	}
	return nil
}

// TypeOf the entity type of a result, entity or sample value
func TypeOf(v interface{}) reflect.Type {
	if v == nil {
		return nil
	}
	if typ, ok := v.(reflect.Type); ok {
		return BaseType(typ)
	}
	return BaseType(reflect.TypeOf(v))
}
