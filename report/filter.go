package report

import (
	"encoding/json"
	"fmt"
)

// FilterKind tags the variant of a Filter node.
type FilterKind string

const (
	FilterAnd FilterKind = "and"
	FilterOr  FilterKind = "or"
	FilterEq  FilterKind = "eq"
	FilterLt  FilterKind = "lt"
	FilterLte FilterKind = "lte"
	FilterGt  FilterKind = "gt"
	FilterGte FilterKind = "gte"
)

// Filter is a recursive boolean filter tree. And/Or carry Children; the
// comparison kinds carry Column/Value. Values are opaque string literals —
// the core never interprets them beyond the date-window extraction the
// planner performs on "date" columns.
type Filter struct {
	Kind     FilterKind
	Children []Filter
	Column   string
	Value    string
}

// And builds an And node.
func And(children ...Filter) Filter { return Filter{Kind: FilterAnd, Children: children} }

// Or builds an Or node.
func Or(children ...Filter) Filter { return Filter{Kind: FilterOr, Children: children} }

func cmpFilter(kind FilterKind, column, value string) Filter {
	return Filter{Kind: kind, Column: column, Value: value}
}

func EqF(column, value string) Filter  { return cmpFilter(FilterEq, column, value) }
func LtF(column, value string) Filter  { return cmpFilter(FilterLt, column, value) }
func LteF(column, value string) Filter { return cmpFilter(FilterLte, column, value) }
func GtF(column, value string) Filter  { return cmpFilter(FilterGt, column, value) }
func GteF(column, value string) Filter { return cmpFilter(FilterGte, column, value) }

// filterWire is the JSON discriminated-union shape described in spec.md §6:
// {"type":"and|or","value":[...]} or {"type":"eq|lt|lte|gt|gte","column":"...","value":"..."}.
type filterWire struct {
	Type   string          `json:"type"`
	Value  json.RawMessage `json:"value"`
	Column string          `json:"column"`
}

// UnmarshalJSON decodes the discriminated-union filter document into a
// Filter tree.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var wire filterWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("decoding filter: %w", err)
	}

	switch FilterKind(wire.Type) {
	case FilterAnd, FilterOr:
		var children []Filter
		if len(wire.Value) > 0 {
			if err := json.Unmarshal(wire.Value, &children); err != nil {
				return fmt.Errorf("decoding %s children: %w", wire.Type, err)
			}
		}
		f.Kind = FilterKind(wire.Type)
		f.Children = children
		return nil
	case FilterEq, FilterLt, FilterLte, FilterGt, FilterGte:
		var value string
		if err := json.Unmarshal(wire.Value, &value); err != nil {
			return fmt.Errorf("decoding %s value: %w", wire.Type, err)
		}
		f.Kind = FilterKind(wire.Type)
		f.Column = wire.Column
		f.Value = value
		return nil
	default:
		return fmt.Errorf("unknown filter type %q", wire.Type)
	}
}

// MarshalJSON encodes the Filter back into the discriminated-union shape.
func (f Filter) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FilterAnd, FilterOr:
		return json.Marshal(struct {
			Type  string   `json:"type"`
			Value []Filter `json:"value"`
		}{Type: string(f.Kind), Value: f.Children})
	default:
		return json.Marshal(struct {
			Type   string `json:"type"`
			Column string `json:"column"`
			Value  string `json:"value"`
		}{Type: string(f.Kind), Column: f.Column, Value: f.Value})
	}
}
