package validation

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// Precondition errors of rules
var (
	ErrKind          = errors.New("mandatory field: Validation Type")
	ErrFieldName     = errors.New("mandatory field: FieldName")
	ErrExpectedValue = errors.New("mandatory field: expectedValue")
	ErrExpectedSize  = errors.New("mandatory field: Map Size")
)

// Optional a value that may be absent
type Optional struct {
	Value interface{}
	Set   bool
}

// Some a present value, nil included
func Some(v interface{}) Optional {
	return Optional{Value: v, Set: true}
}

// Operands the operand pair of a rule.
// Primary is the field name, except for JSON where it is the expected value.
type Operands struct {
	Primary   interface{}
	Secondary Optional
}

// Rule one validation applied to the reconstructed document
type Rule struct {
	Kind     Kind
	Operands Operands
	Message  string // replaces the mismatch description when set
}

// New a rule with a single operand
func New(kind Kind, primary interface{}) Rule {
	return Rule{Kind: kind, Operands: Operands{Primary: primary}}
}

// NewPair a rule with both operands
func NewPair(kind Kind, primary interface{}, secondary interface{}) Rule {
	return Rule{Kind: kind, Operands: Operands{Primary: primary, Secondary: Some(secondary)}}
}

// EqualsRule the field equals expected
func EqualsRule(field string, expected interface{}) Rule {
	return NewPair(Equals, field, expected)
}

// NotNullRule the field is present and not null
func NotNullRule(field string) Rule {
	return New(NotNull, field)
}

// NullRule the field is absent or null
func NullRule(field string) Rule {
	return New(Null, field)
}

// CollectionSizeRule the field holds size elements
func CollectionSizeRule(field string, size int) Rule {
	return NewPair(CollectionSize, field, size)
}

// JSONRule the document decodes into a value equal to expected
func JSONRule(expected interface{}) Rule {
	return New(JSON, expected)
}

// JSONByKeyRule the sub-document at field matches expected
func JSONByKeyRule(field string, expected interface{}) Rule {
	return NewPair(JSONByKey, field, expected)
}

// Field the field name of the rule, empty for JSON rules
func (rule Rule) Field() string {
	if rule.Kind == JSON {
		return ""
	}
	field, _ := rule.Operands.Primary.(string)
	return field
}

// Expected the expected value of the rule
func (rule Rule) Expected() interface{} {
	if rule.Kind == JSON {
		return rule.Operands.Primary
	}
	return rule.Operands.Secondary.Value
}

// Check report the first missing or malformed operand
func (rule Rule) Check() error {
	if _, has := kindNames[rule.Kind]; !has {
		return ErrKind
	}

	if rule.Kind == JSON {
		if rule.Operands.Primary == nil {
			return ErrExpectedValue
		}
		return nil
	}

	if rule.Field() == "" {
		return ErrFieldName
	}

	switch rule.Kind {
	case Equals:
		if !rule.Operands.Secondary.Set {
			return ErrExpectedValue
		}

	case CollectionSize:
		if !rule.Operands.Secondary.Set || rule.Operands.Secondary.Value == nil {
			return ErrExpectedSize
		}
		if _, err := cast.ToIntE(rule.Operands.Secondary.Value); err != nil {
			return fmt.Errorf("%w: %v is not a size", ErrExpectedSize, rule.Operands.Secondary.Value)
		}

	case JSONByKey:
		if !rule.Operands.Secondary.Set || rule.Operands.Secondary.Value == nil {
			return ErrExpectedValue
		}
	}
	return nil
}

func (rule Rule) String() string {
	if rule.Kind == JSON {
		return fmt.Sprintf("%s(%T)", rule.Kind, rule.Operands.Primary)
	}
	if rule.Operands.Secondary.Set {
		return fmt.Sprintf("%s(%s, %v)", rule.Kind, rule.Field(), rule.Operands.Secondary.Value)
	}
	return fmt.Sprintf("%s(%s)", rule.Kind, rule.Field())
}
