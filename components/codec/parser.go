package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ChangeType classifies what kind of change a parsed document represents.
type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeUpdate
	ChangeDelete
	ChangeUnknown
)

// Condition matches a single dotted field path against an expected value.
type Condition struct {
	Field string      `mapstructure:"field"`
	Value interface{} `mapstructure:"value"`
}

// ChangeTypeRule maps a set of Conditions, combined by Logic ("AND" or
// "OR"), to a ChangeType.
type ChangeTypeRule struct {
	Conditions []Condition `mapstructure:"conditions"`
	Logic      string      `mapstructure:"logic"`
	Type       ChangeType  `mapstructure:"type"`
}

// JSONParserConfig configures JSONParser.
type JSONParserConfig struct {
	KeyFields       []string         `mapstructure:"key_fields"`
	KeySeparator    string           `mapstructure:"key_separator"`
	ChangeTypeRules []ChangeTypeRule `mapstructure:"change_type_rules"`
}

// DefaultJSONParserConfig matches the original's #[serde(default)] fields:
// key on "id", joined with "_", no rules (every document is an Add).
func DefaultJSONParserConfig() JSONParserConfig {
	return JSONParserConfig{KeyFields: []string{"id"}, KeySeparator: "_"}
}

// JSONParser extracts a string key and a ChangeType from a JSON document,
// then decodes the document itself into V.
//
// Grounded on kv/parser/json_parser.rs, scoped to string keys: the original
// is generic over any ParseValue key type via a separate trait, but every
// call site this module exercises uses string keys, so that extra type
// parameter was trimmed rather than carried unused.
type JSONParser[V any] struct {
	keyFields    []string
	keySeparator string
	rules        []ChangeTypeRule
}

// NewJSONParser is JSONParser's only constructor.
func NewJSONParser[V any](cfg JSONParserConfig) *JSONParser[V] {
	rules := make([]ChangeTypeRule, len(cfg.ChangeTypeRules))
	for i, r := range cfg.ChangeTypeRules {
		r.Logic = strings.ToUpper(r.Logic)
		rules[i] = r
	}
	return &JSONParser[V]{
		keyFields:    cfg.KeyFields,
		keySeparator: cfg.KeySeparator,
		rules:        rules,
	}
}

func fieldValue(data map[string]interface{}, path string) (interface{}, bool) {
	if path == "" {
		return nil, false
	}
	parts := strings.Split(path, ".")
	var current interface{} = data
	for i, part := range parts {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := obj[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		current = v
	}
	return nil, false
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		return t
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}

func (p *JSONParser[V]) generateKey(data map[string]interface{}) (string, error) {
	if len(p.keyFields) == 0 {
		return "", fmt.Errorf("no key fields configured")
	}
	parts := make([]string, 0, len(p.keyFields))
	for _, field := range p.keyFields {
		v, ok := fieldValue(data, field)
		if !ok {
			return "", fmt.Errorf("key field %q not found in JSON", field)
		}
		parts = append(parts, formatValue(v))
	}
	return strings.Join(parts, p.keySeparator), nil
}

func compareValues(actual, expected interface{}) bool {
	if fmt.Sprint(actual) == fmt.Sprint(expected) {
		return true
	}
	return formatValue(actual) == formatValue(expected)
}

func (p *JSONParser[V]) evaluateCondition(data map[string]interface{}, c Condition) bool {
	actual, ok := fieldValue(data, c.Field)
	if !ok {
		return false
	}
	return compareValues(actual, c.Value)
}

func (p *JSONParser[V]) evaluateRule(data map[string]interface{}, r ChangeTypeRule) bool {
	if len(r.Conditions) == 0 {
		return false
	}
	if r.Logic == "OR" {
		for _, c := range r.Conditions {
			if p.evaluateCondition(data, c) {
				return true
			}
		}
		return false
	}
	for _, c := range r.Conditions {
		if !p.evaluateCondition(data, c) {
			return false
		}
	}
	return true
}

func (p *JSONParser[V]) determineChangeType(data map[string]interface{}) ChangeType {
	for _, r := range p.rules {
		if p.evaluateRule(data, r) {
			return r.Type
		}
	}
	return ChangeAdd
}

// Parse decodes buf as JSON, derives a change type via the configured rules
// (default ChangeAdd) and a key via the configured key fields, and decodes
// buf again into V.
func (p *JSONParser[V]) Parse(buf []byte) (ChangeType, string, V, error) {
	var zero V
	var data map[string]interface{}
	if err := json.Unmarshal(buf, &data); err != nil {
		return ChangeUnknown, "", zero, fmt.Errorf("failed to parse JSON: %w", err)
	}

	key, err := p.generateKey(data)
	if err != nil {
		return ChangeUnknown, "", zero, err
	}

	var value V
	if err := json.Unmarshal(buf, &value); err != nil {
		return ChangeUnknown, "", zero, fmt.Errorf("failed to deserialize value: %w", err)
	}

	return p.determineChangeType(data), key, value, nil
}
