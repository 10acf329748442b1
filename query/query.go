package query

import (
	"fmt"

	"github.com/yaoapp/mongoverify/document"
)

// Query the filter criteria passed to the data-access template
type Query struct {
	criteria []*Criteria
	keys     map[string]bool
}

// New create a query. Adding the same key twice is a programming error and panics,
// use AddCriteria to get the error instead.
func New(criteria ...*Criteria) *Query {
	q := &Query{keys: map[string]bool{}}
	for _, c := range criteria {
		if err := q.AddCriteria(c); err != nil {
			panic(err)
		}
	}
	return q
}

// AddCriteria add a criteria chain to the query
func (q *Query) AddCriteria(c *Criteria) error {
	if c == nil {
		return fmt.Errorf("criteria is required")
	}

	if q.keys == nil {
		q.keys = map[string]bool{}
	}

	for _, key := range c.Keys() {
		if q.keys[key] {
			return fmt.Errorf("query already contains criteria for key %s", key)
		}
	}

	for _, key := range c.Keys() {
		q.keys[key] = true
	}
	q.criteria = append(q.criteria, c)
	return nil
}

// Object the filter document
func (q *Query) Object() document.Document {
	doc := document.Document{}
	if q == nil {
		return doc
	}
	for _, c := range q.criteria {
		doc = document.Merge(doc, c.Object())
	}
	return doc
}

// String the filter as JSON
func (q *Query) String() string {
	return q.Object().String()
}
