package test

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field names of Entity as they appear in documents
const (
	KeyID                    = "_id"
	FieldAmount              = "amount"
	FieldLocked              = "locked"
	FieldMonth               = "month"
	FieldCreationUser        = "creationUser"
	FieldLastUpdateTimestamp = "lastUpdateTimestamp"
	FieldEntityMap           = "entityExampleMap"
	FieldTags                = "tags"
)

// ID the identifier shared by the fixtures
var ID = primitive.NewObjectID().Hex()

// OtherID an identifier that never matches ID
var OtherID = primitive.NewObjectID().Hex()

// Now a fixed point in time, its text is known to the converter tests
var Now = time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

// Entity the document stored by the fixtures
type Entity struct {
	ID                  string            `bson:"_id"`
	Amount              int               `bson:"amount"`
	Locked              bool              `bson:"locked"`
	Month               string            `bson:"month"`
	CreationUser        string            `bson:"creationUser"`
	CreationTimestamp   *time.Time        `bson:"creationTimestamp"`
	LastUpdateUser      string            `bson:"lastUpdateUser"`
	LastUpdateTimestamp *time.Time        `bson:"lastUpdateTimestamp"`
	Tags                []string          `bson:"tags"`
	EntityMap           map[string]Entity `bson:"entityExampleMap"`
}

// Account an entity keyed by an ObjectID
type Account struct {
	ID      primitive.ObjectID `bson:"_id"`
	Owner   string             `bson:"owner"`
	Created time.Time          `bson:"created"`
	Notes   *string            `bson:"notes"`
}

// Other an unrelated entity type
type Other struct {
	Name string `bson:"name"`
}

// SimpleEntity an entity with the identifier only
func SimpleEntity() Entity {
	return Entity{ID: ID}
}

// FullEntity an entity with every field set
func FullEntity() Entity {
	entity := EntityWithoutMap()
	entity.EntityMap = FieldMap()
	return entity
}

// EntityWithoutMap an entity with every field but the nested map set
func EntityWithoutMap() Entity {
	created := Now
	updated := Now.AddDate(0, 0, 1)
	return Entity{
		ID:                  ID,
		Amount:              3,
		Locked:              true,
		Month:               "02",
		CreationUser:        "User_a",
		CreationTimestamp:   &created,
		LastUpdateUser:      "User_b",
		LastUpdateTimestamp: &updated,
		Tags:                []string{"a", "b"},
	}
}

// FieldMap two nested entities
func FieldMap() map[string]Entity {
	created := Now
	updated := Now.AddDate(0, 0, 1)
	return map[string]Entity{
		"A": {
			ID:                  "12345",
			Month:               "01",
			CreationUser:        "User_1",
			CreationTimestamp:   &created,
			LastUpdateUser:      "User_2",
			LastUpdateTimestamp: &updated,
		},
		"B": {
			ID:                  "12345",
			Month:               "02",
			CreationUser:        "User_3",
			CreationTimestamp:   &created,
			LastUpdateUser:      "User_4",
			LastUpdateTimestamp: &updated,
		},
	}
}
