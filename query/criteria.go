package query

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/yaoapp/mongoverify/document"
)

// Criteria a chain of filter conditions, one key per link
//
//	query.Where("_id").Is(id).And("amount").Gt(10)
type Criteria struct {
	key   string
	value interface{}
	is    bool
	ops   document.Document
	chain *[]*Criteria
}

// Where start a criteria chain on the key
func Where(key string) *Criteria {
	c := &Criteria{key: key}
	chain := []*Criteria{c}
	c.chain = &chain
	return c
}

// And add the next key to the chain and return it
func (c *Criteria) And(key string) *Criteria {
	next := &Criteria{key: key, chain: c.chain}
	*c.chain = append(*c.chain, next)
	return next
}

// Key the key of this link
func (c *Criteria) Key() string {
	return c.key
}

// Is the key equals the value
func (c *Criteria) Is(value interface{}) *Criteria {
	c.value = value
	c.is = true
	return c
}

// Ne the key is not equal to the value
func (c *Criteria) Ne(value interface{}) *Criteria {
	return c.op("$ne", value)
}

// Gt greater than
func (c *Criteria) Gt(value interface{}) *Criteria {
	return c.op("$gt", value)
}

// Gte greater than or equal
func (c *Criteria) Gte(value interface{}) *Criteria {
	return c.op("$gte", value)
}

// Lt less than
func (c *Criteria) Lt(value interface{}) *Criteria {
	return c.op("$lt", value)
}

// Lte less than or equal
func (c *Criteria) Lte(value interface{}) *Criteria {
	return c.op("$lte", value)
}

// In the key matches one of the values
func (c *Criteria) In(values ...interface{}) *Criteria {
	return c.op("$in", bson.A(values))
}

// Nin the key matches none of the values
func (c *Criteria) Nin(values ...interface{}) *Criteria {
	return c.op("$nin", bson.A(values))
}

// Exists the key is present (or absent)
func (c *Criteria) Exists(exists bool) *Criteria {
	return c.op("$exists", exists)
}

// Regex the key matches the pattern
func (c *Criteria) Regex(pattern string, options string) *Criteria {
	c.ops = c.ops.Set("$regex", pattern)
	if options != "" {
		c.ops = c.ops.Set("$options", options)
	}
	return c
}

func (c *Criteria) op(name string, value interface{}) *Criteria {
	c.ops = c.ops.Set(name, value)
	return c
}

// Keys the keys of the whole chain in order
func (c *Criteria) Keys() []string {
	keys := make([]string, 0, len(*c.chain))
	for _, link := range *c.chain {
		keys = append(keys, link.key)
	}
	return keys
}

// Object the filter document of the whole chain
func (c *Criteria) Object() document.Document {
	doc := document.Document{}
	for _, link := range *c.chain {
		doc = doc.Set(link.key, link.criteria())
	}
	return doc
}

func (c *Criteria) criteria() interface{} {
	if c.is {
		return c.value
	}
	return c.ops.D()
}
