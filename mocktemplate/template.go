package mocktemplate

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/yaoapp/mongoverify/query"
	"github.com/yaoapp/mongoverify/template"
)

// Template a testify mock of template.Template
type Template struct {
	mock.Mock
	fallbacks map[*mock.Call]bool
}

var _ template.Template = (*Template)(nil)

// argument count of every mocked method
var methods = map[string]int{
	"Find":          4,
	"FindOne":       4,
	"FindByID":      4,
	"FindAndRemove": 4,
	"UpdateFirst":   5,
	"UpdateMulti":   5,
	"Upsert":        5,
	"Save":          3,
}

// Methods the mocked method names with their argument count
func Methods() map[string]int {
	res := make(map[string]int, len(methods))
	for method, argc := range methods {
		res[method] = argc
	}
	return res
}

// New create a mock that records every call and answers with zero values,
// the way an unstubbed mock does. Stubs added later with On are matched first.
func New(t mock.TestingT) *Template {
	m := &Template{fallbacks: map[*mock.Call]bool{}}
	m.Test(t)
	for method, argc := range methods {
		args := make([]interface{}, argc)
		for i := range args {
			args[i] = mock.Anything
		}

		call := m.Mock.On(method, args...).Maybe()
		switch method {
		case "UpdateFirst", "UpdateMulti", "Upsert":
			call.Return(nil, nil)
		default:
			call.Return(nil)
		}
		m.fallbacks[call] = true
	}
	return m
}

// On stub a method. The stub goes ahead of the zero-value answers registered
// by New and after the stubs added before it.
// Stubs chained with (*mock.Call).On bypass this ordering.
func (m *Template) On(method string, arguments ...interface{}) *mock.Call {
	call := m.Mock.On(method, arguments...)

	calls := m.ExpectedCalls
	last := len(calls) - 1
	for i := 0; i < last; i++ {
		if m.fallbacks[calls[i]] {
			copy(calls[i+1:], calls[i:last])
			calls[i] = call
			break
		}
	}
	return call
}

// Find mocked
func (m *Template) Find(ctx context.Context, q *query.Query, result interface{}, collection string) error {
	ret := m.Called(ctx, q, result, collection)
	return ret.Error(0)
}

// FindOne mocked
func (m *Template) FindOne(ctx context.Context, q *query.Query, result interface{}, collection string) error {
	ret := m.Called(ctx, q, result, collection)
	return ret.Error(0)
}

// FindByID mocked
func (m *Template) FindByID(ctx context.Context, id interface{}, result interface{}, collection string) error {
	ret := m.Called(ctx, id, result, collection)
	return ret.Error(0)
}

// FindAndRemove mocked
func (m *Template) FindAndRemove(ctx context.Context, q *query.Query, result interface{}, collection string) error {
	ret := m.Called(ctx, q, result, collection)
	return ret.Error(0)
}

// UpdateFirst mocked
func (m *Template) UpdateFirst(ctx context.Context, q *query.Query, u *query.Update, entity interface{}, collection string) (*template.UpdateResult, error) {
	ret := m.Called(ctx, q, u, entity, collection)
	return updateResult(ret)
}

// UpdateMulti mocked
func (m *Template) UpdateMulti(ctx context.Context, q *query.Query, u *query.Update, entity interface{}, collection string) (*template.UpdateResult, error) {
	ret := m.Called(ctx, q, u, entity, collection)
	return updateResult(ret)
}

// Upsert mocked
func (m *Template) Upsert(ctx context.Context, q *query.Query, u *query.Update, entity interface{}, collection string) (*template.UpdateResult, error) {
	ret := m.Called(ctx, q, u, entity, collection)
	return updateResult(ret)
}

// Save mocked
func (m *Template) Save(ctx context.Context, object interface{}, collection string) error {
	ret := m.Called(ctx, object, collection)
	return ret.Error(0)
}

func updateResult(ret mock.Arguments) (*template.UpdateResult, error) {
	var res *template.UpdateResult
	if v, ok := ret.Get(0).(*template.UpdateResult); ok {
		res = v
	}
	return res, ret.Error(1)
}
