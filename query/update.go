package query

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yaoapp/mongoverify/document"
)

// Update the mutation criteria passed to the data-access template
type Update struct {
	ops document.Document
}

// NewUpdate create an empty update
func NewUpdate() *Update {
	return &Update{ops: document.Document{}}
}

// Set $set the key
func (u *Update) Set(key string, value interface{}) *Update {
	return u.add("$set", key, value)
}

// Unset $unset the key
func (u *Update) Unset(key string) *Update {
	return u.add("$unset", key, 1)
}

// Inc $inc the key
func (u *Update) Inc(key string, value interface{}) *Update {
	return u.add("$inc", key, value)
}

// Push $push the value to the key
func (u *Update) Push(key string, value interface{}) *Update {
	return u.add("$push", key, value)
}

// AddToSet $addToSet the value to the key
func (u *Update) AddToSet(key string, value interface{}) *Update {
	return u.add("$addToSet", key, value)
}

// SetOnInsert $setOnInsert the key
func (u *Update) SetOnInsert(key string, value interface{}) *Update {
	return u.add("$setOnInsert", key, value)
}

// CurrentDate $currentDate the key
func (u *Update) CurrentDate(key string) *Update {
	return u.add("$currentDate", key, true)
}

func (u *Update) add(op string, key string, value interface{}) *Update {
	inner, _ := document.Of(u.ops.Get(op))
	u.ops = u.ops.Set(op, inner.Set(key, value).D())
	return u
}

// Modifies check whether any operator touches the key
func (u *Update) Modifies(key string) bool {
	for _, elem := range u.ops {
		if inner, ok := document.Of(elem.Value); ok && inner.Has(key) {
			return true
		}
	}
	return false
}

// Object the update document, operators in first-use order
func (u *Update) Object() document.Document {
	if u == nil {
		return document.Document{}
	}
	res := make(document.Document, 0, len(u.ops))
	for _, elem := range u.ops {
		inner, _ := document.Of(elem.Value)
		res = append(res, bson.E{Key: elem.Key, Value: inner.D()})
	}
	return res
}

// String the update as JSON
func (u *Update) String() string {
	return u.Object().String()
}
