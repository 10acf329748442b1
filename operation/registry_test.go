package operation

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yaoapp/mongoverify/capture"
	"github.com/yaoapp/mongoverify/document"
	"github.com/yaoapp/mongoverify/mocktemplate"
	"github.com/yaoapp/mongoverify/query"
	"github.com/yaoapp/mongoverify/serializer"
	"github.com/yaoapp/mongoverify/test"
)

var entity = Target{Type: reflect.TypeOf(test.Entity{})}

func TestKindString(t *testing.T) {
	assert.Equal(t, "FIND_BY_ID", FindByID.String())
	assert.Equal(t, "UPSERT", Upsert.String())
	assert.Equal(t, "Kind(42)", Kind(42).String())

	for _, kind := range Kinds() {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	parsed, err := ParseKind("update-first")
	require.NoError(t, err)
	assert.Equal(t, UpdateFirst, parsed)

	parsed, err = ParseKind("FindAndRemove")
	require.NoError(t, err)
	assert.Equal(t, FindAndRemove, parsed)

	_, err = ParseKind("delete")
	assert.Error(t, err)
}

func TestMethod(t *testing.T) {
	for _, kind := range Kinds() {
		method, err := Method(kind)
		require.NoError(t, err)
		_, has := mocktemplate.Methods()[method]
		assert.True(t, has, method)
	}

	_, err := Method(Kind(0))
	assert.Error(t, err)
}

func TestReconstructReadKinds(t *testing.T) {
	calls := map[Kind]func(m *mocktemplate.Template, q *query.Query){
		Find: func(m *mocktemplate.Template, q *query.Query) {
			m.Find(context.Background(), q, &[]test.Entity{}, "")
		},
		FindOne: func(m *mocktemplate.Template, q *query.Query) {
			m.FindOne(context.Background(), q, &test.Entity{}, "")
		},
		FindAndRemove: func(m *mocktemplate.Template, q *query.Query) {
			m.FindAndRemove(context.Background(), q, &test.Entity{}, "")
		},
	}

	for kind, call := range calls {
		t.Run(kind.String(), func(t *testing.T) {
			m := mocktemplate.New(t)
			q := query.New(query.Where(test.KeyID).Is(test.ID).And(test.FieldAmount).Gt(2))
			call(m, q)

			doc, err := NewRegistry().Reconstruct(kind, &m.Mock, entity, capture.Once())
			require.NoError(t, err)
			assert.Equal(t, q.Object(), doc)
			assert.Equal(t, test.ID, doc.Get(test.KeyID))
		})
	}
}

func TestReconstructFindByID(t *testing.T) {
	m := mocktemplate.New(t)
	m.FindByID(context.Background(), "abc123", &test.Entity{}, "")

	doc, err := NewRegistry().Reconstruct(FindByID, &m.Mock, entity, capture.Once())
	require.NoError(t, err)
	assert.Equal(t, document.Document{{Key: "_id", Value: "abc123"}}, doc)

	doc, err = NewRegistry(WithKeyField("code")).Reconstruct(FindByID, &m.Mock, entity, nil)
	require.NoError(t, err)
	assert.Equal(t, document.Document{{Key: "code", Value: "abc123"}}, doc)

	doc, err = (&Registry{}).Reconstruct(FindByID, &m.Mock, entity, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"_id"}, doc.Keys())
}

func TestReconstructMutationKinds(t *testing.T) {
	calls := map[Kind]func(m *mocktemplate.Template, q *query.Query, u *query.Update){
		UpdateFirst: func(m *mocktemplate.Template, q *query.Query, u *query.Update) {
			m.UpdateFirst(context.Background(), q, u, test.Entity{}, "")
		},
		UpdateMulti: func(m *mocktemplate.Template, q *query.Query, u *query.Update) {
			m.UpdateMulti(context.Background(), q, u, &test.Entity{}, "")
		},
		Upsert: func(m *mocktemplate.Template, q *query.Query, u *query.Update) {
			m.Upsert(context.Background(), q, u, reflect.TypeOf(test.Entity{}), "")
		},
	}

	for kind, call := range calls {
		t.Run(kind.String(), func(t *testing.T) {
			m := mocktemplate.New(t)
			q := query.New(query.Where(test.KeyID).Is("abc"))
			u := query.NewUpdate().Set(test.FieldLocked, true)
			call(m, q, u)

			doc, err := NewRegistry().Reconstruct(kind, &m.Mock, entity, capture.Once())
			require.NoError(t, err)
			assert.Equal(t, document.Document{{Key: "_id", Value: "abc"}, {Key: "locked", Value: true}}, doc)
		})
	}
}

func TestReconstructMutationWins(t *testing.T) {
	m := mocktemplate.New(t)
	q := query.New(query.Where(test.KeyID).Is("abc"), query.Where(test.FieldMonth).Is("01"))
	u := query.NewUpdate().
		Set(test.FieldMonth, "02").
		Inc(test.FieldAmount, 5).
		Unset(test.FieldCreationUser)
	m.UpdateFirst(context.Background(), q, u, &test.Entity{}, "")

	doc, err := NewRegistry().Reconstruct(UpdateFirst, &m.Mock, entity, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"_id", "month", "amount", "creationUser"}, doc.Keys())
	assert.Equal(t, "02", doc.Get(test.FieldMonth))
	assert.Equal(t, 5, doc.Get(test.FieldAmount))
	assert.Equal(t, "01", q.Object().Get(test.FieldMonth))
}

func TestReconstructSave(t *testing.T) {
	m := mocktemplate.New(t)
	m.Save(context.Background(), test.EntityWithoutMap(), "")

	s := serializer.New(serializer.Options{SerializeNulls: true})
	doc, err := NewRegistry(WithSerializer(s)).Reconstruct(Save, &m.Mock, entity, nil)
	require.NoError(t, err)

	want, err := s.ToDocument(test.EntityWithoutMap())
	require.NoError(t, err)
	assert.Equal(t, want, doc)
	assert.True(t, doc.Has(test.FieldEntityMap))

	withoutNulls := serializer.New(serializer.Options{SerializeNulls: false})
	doc, err = NewRegistry(WithSerializer(withoutNulls)).Reconstruct(Save, &m.Mock, entity, nil)
	require.NoError(t, err)
	assert.False(t, doc.Has(test.FieldEntityMap))
}

func TestReconstructSaveDefaultSerializer(t *testing.T) {
	defer serializer.Reset()

	m := mocktemplate.New(t)
	m.Save(context.Background(), &test.Account{Owner: "User_a", Created: test.Now}, "accounts")

	serializer.Configure(serializer.Options{Converters: []serializer.Converter{serializer.TimeConverter("")}})
	target := Target{Type: reflect.TypeOf(test.Account{}), Collection: "accounts"}
	doc, err := NewRegistry().Reconstruct(Save, &m.Mock, target, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T10:30:00", doc.Get("created"))
	assert.False(t, doc.Has("notes"))
}

func TestReconstructCollection(t *testing.T) {
	m := mocktemplate.New(t)
	m.Save(context.Background(), test.SimpleEntity(), "archive")
	m.Save(context.Background(), test.Entity{ID: test.OtherID}, "current")

	archive := Target{Type: entity.Type, Collection: "archive"}
	doc, err := NewRegistry().Reconstruct(Save, &m.Mock, archive, nil)
	require.NoError(t, err)
	assert.Equal(t, test.ID, doc.Get(test.KeyID))

	doc, err = NewRegistry().Reconstruct(Save, &m.Mock, entity, capture.Times(2))
	require.NoError(t, err)
	assert.Equal(t, test.OtherID, doc.Get(test.KeyID))

	_, err = NewRegistry().Reconstruct(Save, &m.Mock, entity, nil)
	assert.Error(t, err)

	missing := Target{Type: entity.Type, Collection: "history"}
	_, err = NewRegistry().Reconstruct(Save, &m.Mock, missing, nil)
	assert.Error(t, err)
}

func TestReconstructMismatch(t *testing.T) {
	m := mocktemplate.New(t)
	m.FindByID(context.Background(), "abc123", &test.Other{}, "")

	_, err := NewRegistry().Reconstruct(FindByID, &m.Mock, entity, nil)
	require.Error(t, err)

	var mismatch *capture.MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "FindByID", mismatch.Method)
	assert.Len(t, mismatch.Diffs, 1)

	m.FindByID(context.Background(), "abc123", &test.Entity{}, "")
	m.FindByID(context.Background(), "abc456", &test.Entity{}, "")
	_, err = NewRegistry().Reconstruct(FindByID, &m.Mock, entity, capture.Once())
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Matched)

	doc, err := NewRegistry().Reconstruct(FindByID, &m.Mock, entity, capture.AtLeastOnce())
	require.NoError(t, err)
	assert.Equal(t, "abc456", doc.Get(test.KeyID))
}

func TestReconstructNever(t *testing.T) {
	m := mocktemplate.New(t)

	doc, err := NewRegistry().Reconstruct(UpdateMulti, &m.Mock, entity, capture.Never())
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())
}

func TestReconstructPreconditions(t *testing.T) {
	m := mocktemplate.New(t)

	_, err := NewRegistry().Reconstruct(Kind(99), &m.Mock, entity, nil)
	assert.Error(t, err)

	_, err = NewRegistry().Reconstruct(Find, &m.Mock, Target{}, nil)
	assert.Error(t, err)

	_, err = NewRegistry().Reconstruct(Find, nil, entity, nil)
	assert.ErrorIs(t, err, capture.ErrNoHandle)
}

func TestReconstructUnexpectedArgument(t *testing.T) {
	m := &mocktemplate.Template{}
	m.On("Find", context.Background(), (*query.Query)(nil), &[]test.Entity{}, "").Return(nil)
	m.Find(context.Background(), nil, &[]test.Entity{}, "")

	doc, err := NewRegistry().Reconstruct(Find, &m.Mock, entity, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Len())

	m.Calls[0].Arguments[1] = bson.D{}
	_, err = NewRegistry().Reconstruct(Find, &m.Mock, entity, nil)
	assert.Error(t, err)
}
