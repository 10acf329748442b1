package template

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaoapp/mongoverify/test"
)

func TestBaseType(t *testing.T) {
	entity := reflect.TypeOf(test.Entity{})
	assert.Equal(t, entity, BaseType(entity))
	assert.Equal(t, entity, BaseType(reflect.TypeOf(&test.Entity{})))
	assert.Equal(t, entity, BaseType(reflect.TypeOf([]test.Entity{})))
	assert.Equal(t, entity, BaseType(reflect.TypeOf(&[]*test.Entity{})))
	assert.Nil(t, BaseType(nil))
}

func TestTypeOf(t *testing.T) {
	entity := reflect.TypeOf(test.Entity{})
	var typed *test.Entity
	var list []test.Entity

	assert.Equal(t, entity, TypeOf(test.Entity{}))
	assert.Equal(t, entity, TypeOf(typed))
	assert.Equal(t, entity, TypeOf(&list))
	assert.Equal(t, entity, TypeOf(entity))
	assert.Equal(t, reflect.TypeOf(""), TypeOf("name"))
	assert.Nil(t, TypeOf(nil))
}
