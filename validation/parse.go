package validation

import (
	"fmt"

	"github.com/spf13/cast"
)

// ParseRules parse rule definitions, a single map or a list of maps:
//
//   - type: equals
//     field: _id
//     value: abc123
//   - type: collection_size
//     field: entityExampleMap
//     size: 2
func ParseRules(input interface{}) ([]Rule, error) {
	if input == nil {
		return nil, nil
	}

	var rules []Rule
	switch v := input.(type) {
	case map[string]interface{}:
		rule, err := mapToRule(v)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)

	case []map[string]interface{}:
		for i, item := range v {
			rule, err := mapToRule(item)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			rules = append(rules, rule)
		}

	case []interface{}:
		for i, item := range v {
			m, err := cast.ToStringMapE(item)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %T is not a rule", i, item)
			}

			rule, err := mapToRule(m)
			if err != nil {
				return nil, fmt.Errorf("rule %d: %w", i, err)
			}
			rules = append(rules, rule)
		}

	default:
		return nil, fmt.Errorf("%T is not a rule definition", input)
	}

	return rules, nil
}

// mapToRule converts a map to a Rule
func mapToRule(m map[string]interface{}) (Rule, error) {
	name, err := cast.ToStringE(m["type"])
	if err != nil || name == "" {
		return Rule{}, ErrKind
	}

	kind, err := ParseKind(name)
	if err != nil {
		return Rule{}, err
	}

	var rule Rule
	field, _ := cast.ToStringE(m["field"])
	value, hasValue := m["value"]
	switch kind {
	case Equals:
		rule = New(kind, field)
		if hasValue {
			rule = NewPair(kind, field, value)
		}

	case NotNull, Null:
		rule = New(kind, field)

	case CollectionSize:
		size, has := m["size"]
		if !has {
			size, has = value, hasValue
		}
		rule = New(kind, field)
		if has {
			rule = NewPair(kind, field, size)
		}

	case JSON:
		rule = New(kind, value)

	case JSONByKey:
		rule = New(kind, field)
		if hasValue {
			rule = NewPair(kind, field, value)
		}
	}

	if msg, ok := m["message"].(string); ok {
		rule.Message = msg
	}

	if err := rule.Check(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}
