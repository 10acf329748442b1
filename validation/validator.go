package validation

import (
	"fmt"
	"reflect"

	"github.com/yaoapp/kun/log"

	"github.com/yaoapp/mongoverify/document"
	"github.com/yaoapp/mongoverify/serializer"
)

// MismatchError the document does not satisfy a rule
type MismatchError struct {
	Kind     Kind
	Field    string
	Expected interface{}
	Actual   interface{}
	Message  string
}

func (e *MismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation %s failed: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("validation %s failed on field %q: %s", e.Kind, e.Field, e.Message)
}

// Validator apply rules to reconstructed documents
type Validator struct {
	Serializer *serializer.Serializer
}

type check func(v *Validator, doc document.Document, rule Rule) *MismatchError

var checks = map[Kind]check{
	Equals:         checkEquals,
	NotNull:        checkNotNull,
	Null:           checkNull,
	CollectionSize: checkCollectionSize,
	JSON:           checkJSON,
	JSONByKey:      checkJSONByKey,
}

// NewValidator create a validator, the process wide serializer is used when s is nil
func NewValidator(s *serializer.Serializer) *Validator {
	return &Validator{Serializer: s}
}

// Apply check the document against the rule.
// A malformed rule returns its precondition error, a failed rule a *MismatchError.
func (v *Validator) Apply(doc document.Document, rule Rule) error {
	if err := rule.Check(); err != nil {
		return err
	}

	mismatch := checks[rule.Kind](v, doc, rule)
	if mismatch == nil {
		log.Trace("[VALIDATION] %s passed", rule)
		return nil
	}

	mismatch.Kind = rule.Kind
	mismatch.Field = rule.Field()
	if rule.Message != "" {
		mismatch.Message = rule.Message
	}
	log.Trace("[VALIDATION] %s failed: %s", rule, mismatch.Message)
	return mismatch
}

// ApplyAll check the rules in order and stop at the first failure
func (v *Validator) ApplyAll(doc document.Document, rules []Rule) error {
	for _, rule := range rules {
		if err := v.Apply(doc, rule); err != nil {
			return err
		}
	}
	return nil
}

func (v *Validator) serializer() *serializer.Serializer {
	if v.Serializer == nil {
		return serializer.Default()
	}
	return v.Serializer
}

func checkEquals(v *Validator, doc document.Document, rule Rule) *MismatchError {
	actual, _ := doc.Resolve(rule.Field())
	expectedText := Stringify(rule.Expected())
	actualText := Stringify(actual)
	if expectedText == actualText {
		return nil
	}
	return &MismatchError{
		Expected: rule.Expected(),
		Actual:   actual,
		Message:  fmt.Sprintf("expected: <%s> but was: <%s>", expectedText, actualText),
	}
}

func checkNotNull(v *Validator, doc document.Document, rule Rule) *MismatchError {
	actual, has := doc.Resolve(rule.Field())
	if !has {
		return &MismatchError{Message: "expected a value but the field is absent"}
	}
	if actual == nil {
		return &MismatchError{Message: "expected a value but the field is null"}
	}
	return nil
}

func checkNull(v *Validator, doc document.Document, rule Rule) *MismatchError {
	actual, _ := doc.Resolve(rule.Field())
	if actual == nil {
		return nil
	}
	return &MismatchError{
		Actual:  actual,
		Message: fmt.Sprintf("expected: <null> but was: <%s>", Stringify(actual)),
	}
}

// checkCollectionSize counts 0 for absent, null and non collection values
func checkCollectionSize(v *Validator, doc document.Document, rule Rule) *MismatchError {
	expected := toInt(rule.Expected())
	actual := document.CollectionLength(doc, rule.Field())
	if expected == actual {
		return nil
	}
	return &MismatchError{
		Expected: expected,
		Actual:   actual,
		Message:  fmt.Sprintf("expected size: <%d> but was: <%d>", expected, actual),
	}
}

// checkJSON decodes the document into the type of the expected value.
// A document-like expected value is compared by canonical text instead, keys order ignored.
func checkJSON(v *Validator, doc document.Document, rule Rule) *MismatchError {
	expected := rule.Expected()
	if expectedDoc, ok := document.Of(expected); ok {
		return compareText(doc.ToMap(), expectedDoc.ToMap(), expected, doc)
	}

	actual, err := v.serializer().FromDocument(doc, reflect.TypeOf(expected))
	if err != nil {
		return &MismatchError{Expected: expected, Message: err.Error()}
	}

	if sameObject(expected, actual) {
		return nil
	}
	return &MismatchError{
		Expected: expected,
		Actual:   actual,
		Message:  fmt.Sprintf("expected: <%+v> but was: <%+v>", expected, actual),
	}
}

func checkJSONByKey(v *Validator, doc document.Document, rule Rule) *MismatchError {
	actual, has := doc.Resolve(rule.Field())
	if !has {
		return &MismatchError{Expected: rule.Expected(), Message: "the field is absent"}
	}

	expected, err := v.normalize(rule.Expected())
	if err != nil {
		return &MismatchError{Expected: rule.Expected(), Actual: actual, Message: err.Error()}
	}
	return compareText(actual, expected, rule.Expected(), actual)
}

// normalize turn the expected value of JSON_BY_KEY into a value with the same
// canonical text as the matching sub-document. JSON text is parsed, anything
// else goes through the serializer like the captured objects do.
func (v *Validator) normalize(expected interface{}) (interface{}, error) {
	switch value := expected.(type) {
	case string:
		return parseJSON(value), nil
	case []byte:
		return parseJSON(string(value)), nil
	}

	if _, ok := document.Of(expected); ok {
		return v.serializer().ToDocument(expected)
	}

	wrapped, err := v.serializer().ToDocument(map[string]interface{}{"v": expected})
	if err != nil {
		return nil, err
	}
	return wrapped.Get("v"), nil
}

// parseJSON the JSON value of the text, the text itself when it is not JSON
func parseJSON(text string) interface{} {
	if doc, err := document.Parse(text); err == nil {
		return doc
	}

	wrapped, err := document.Parse(`{"v":` + text + `}`)
	if err == nil {
		return wrapped.Get("v")
	}
	return text
}

func compareText(actual, expected, expectedRaw, actualRaw interface{}) *MismatchError {
	actualText, err := document.Canonical(actual)
	if err != nil {
		return &MismatchError{Expected: expectedRaw, Actual: actualRaw, Message: err.Error()}
	}

	expectedText, err := document.Canonical(expected)
	if err != nil {
		return &MismatchError{Expected: expectedRaw, Actual: actualRaw, Message: err.Error()}
	}

	if actualText == expectedText {
		return nil
	}
	return &MismatchError{
		Expected: expectedRaw,
		Actual:   actualRaw,
		Message:  fmt.Sprintf("expected: <%s> but was: <%s>", expectedText, actualText),
	}
}
