package serializer

import (
	"reflect"
	"sync"

	"github.com/yaoapp/kun/log"

	"github.com/yaoapp/mongoverify/config"
	"github.com/yaoapp/mongoverify/document"
)

var (
	current *Serializer
	mutex   sync.RWMutex
)

func init() {
	Reset()
}

// Default the process wide serializer
func Default() *Serializer {
	mutex.RLock()
	defer mutex.RUnlock()
	return current
}

// Configure replace the process wide serializer until Reset is called
func Configure(options Options) *Serializer {
	s := New(options)
	mutex.Lock()
	current = s
	mutex.Unlock()
	log.Trace("[SERIALIZER] configure: %d converter(s), serialize nulls %v", len(options.Converters), options.SerializeNulls)
	return s
}

// Reset restore the process wide serializer: no converters, null inclusion from the config
func Reset() {
	s := New(Options{SerializeNulls: config.Conf.SerializeNulls})
	mutex.Lock()
	current = s
	mutex.Unlock()
}

// ToDocument serialize with the process wide serializer
func ToDocument(v interface{}) (document.Document, error) {
	return Default().ToDocument(v)
}

// FromDocument deserialize with the process wide serializer
func FromDocument(doc document.Document, typ reflect.Type) (interface{}, error) {
	return Default().FromDocument(doc, typ)
}
