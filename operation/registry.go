package operation

import (
	"fmt"
	"reflect"

	"github.com/stretchr/testify/mock"
	"github.com/yaoapp/kun/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yaoapp/mongoverify/capture"
	"github.com/yaoapp/mongoverify/config"
	"github.com/yaoapp/mongoverify/document"
	"github.com/yaoapp/mongoverify/serializer"
)

// Target the call a reconstruction looks for. An empty collection matches any collection.
type Target struct {
	Type       reflect.Type
	Collection string
}

// Registry rebuild documents from the calls recorded on a mock
type Registry struct {
	KeyField   string
	Serializer *serializer.Serializer
}

// Option configure a registry
type Option func(r *Registry)

// strategy rebuild the document from the arguments of the captured call
type strategy func(r *Registry, args mock.Arguments) (document.Document, error)

type handler struct {
	method   string
	matchers func(target Target) []interface{}
	strategy strategy
}

var handlers = map[Kind]handler{
	Find:          {method: "Find", matchers: readMatchers, strategy: fromQuery},
	FindOne:       {method: "FindOne", matchers: readMatchers, strategy: fromQuery},
	FindByID:      {method: "FindByID", matchers: readMatchers, strategy: fromKey},
	FindAndRemove: {method: "FindAndRemove", matchers: readMatchers, strategy: fromQuery},
	UpdateFirst:   {method: "UpdateFirst", matchers: mutationMatchers, strategy: fromMutation},
	UpdateMulti:   {method: "UpdateMulti", matchers: mutationMatchers, strategy: fromMutation},
	Upsert:        {method: "Upsert", matchers: mutationMatchers, strategy: fromMutation},
	Save:          {method: "Save", matchers: writeMatchers, strategy: fromObject},
}

// WithKeyField the field the key of FindByID is stored under
func WithKeyField(name string) Option {
	return func(r *Registry) {
		r.KeyField = name
	}
}

// WithSerializer the serializer of saved objects
func WithSerializer(s *serializer.Serializer) Option {
	return func(r *Registry) {
		r.Serializer = s
	}
}

// NewRegistry create a registry, the key field defaults to the configured one
func NewRegistry(options ...Option) *Registry {
	r := &Registry{KeyField: config.Conf.KeyID()}
	for _, option := range options {
		option(r)
	}
	return r
}

// Method the mocked method name of the kind
func Method(kind Kind) (string, error) {
	h, has := handlers[kind]
	if !has {
		return "", fmt.Errorf("operation %s is not supported", kind)
	}
	return h.method, nil
}

// Reconstruct verify the call of the kind was recorded as many times as the
// mode expects, and rebuild one document from the most recent matching call.
// Call count mismatches are returned as *capture.MismatchError.
func (r *Registry) Reconstruct(kind Kind, handle *mock.Mock, target Target, mode capture.Mode) (document.Document, error) {
	h, has := handlers[kind]
	if !has {
		return nil, fmt.Errorf("operation %s is not supported", kind)
	}

	if target.Type == nil {
		return nil, fmt.Errorf("operation %s: the target type is required", kind)
	}

	args, err := capture.Capture(handle, h.method, mode, h.matchers(target)...)
	if err != nil {
		log.Trace("[OPERATION] %s %s: %s", kind, target.Type, err.Error())
		return nil, err
	}

	if args == nil {
		log.Trace("[OPERATION] %s %s: no call recorded", kind, target.Type)
		return document.Document{}, nil
	}

	doc, err := h.strategy(r, args)
	if err != nil {
		return nil, fmt.Errorf("operation %s: %w", kind, err)
	}

	log.Trace("[OPERATION] %s %s: %s", kind, target.Type, doc)
	return doc, nil
}

func (r *Registry) keyField() string {
	if r.KeyField == "" {
		return config.DefaultKeyID
	}
	return r.KeyField
}

func (r *Registry) serializer() *serializer.Serializer {
	if r.Serializer == nil {
		return serializer.Default()
	}
	return r.Serializer
}

// ctx, query or key, result, collection
func readMatchers(target Target) []interface{} {
	return []interface{}{mock.Anything, mock.Anything, capture.OfType(target.Type), capture.Collection(target.Collection)}
}

// ctx, query, update, entity, collection
func mutationMatchers(target Target) []interface{} {
	return []interface{}{mock.Anything, mock.Anything, mock.Anything, capture.OfType(target.Type), capture.Collection(target.Collection)}
}

// ctx, object, collection
func writeMatchers(target Target) []interface{} {
	return []interface{}{mock.Anything, capture.OfType(target.Type), capture.Collection(target.Collection)}
}

func fromQuery(r *Registry, args mock.Arguments) (document.Document, error) {
	q, err := capture.QueryAt(args, 1)
	if err != nil {
		return nil, err
	}
	return q.Object(), nil
}

func fromKey(r *Registry, args mock.Arguments) (document.Document, error) {
	key, err := capture.Value(args, 1)
	if err != nil {
		return nil, err
	}
	return document.New(primitive.E{Key: r.keyField(), Value: key}), nil
}

// fromMutation the filter document with the assignments of every update operator applied on top
func fromMutation(r *Registry, args mock.Arguments) (document.Document, error) {
	q, err := capture.QueryAt(args, 1)
	if err != nil {
		return nil, err
	}

	u, err := capture.UpdateAt(args, 2)
	if err != nil {
		return nil, err
	}

	overlays := []document.Document{}
	for _, op := range u.Object() {
		assignments, ok := document.Of(op.Value)
		if !ok {
			return nil, fmt.Errorf("update operator %s holds %T, not a document", op.Key, op.Value)
		}
		overlays = append(overlays, assignments)
	}
	return document.Merge(q.Object(), overlays...), nil
}

func fromObject(r *Registry, args mock.Arguments) (document.Document, error) {
	object, err := capture.Value(args, 1)
	if err != nil {
		return nil, err
	}
	return r.serializer().ToDocument(object)
}
