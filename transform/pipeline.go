package transform

import (
	"fmt"

	"github.com/andys/csvforge/config"
	"github.com/andys/csvforge/table"
)

// divEpsilon is added to column denominators to avoid division by zero
const divEpsilon = 1e-6

// Pipeline applies an ordered list of rules to dataset rows. Schema
// effects are computed once at construction, so rows can be processed
// independently and the output schema is known before any row runs.
type Pipeline struct {
	rules  []config.Rule
	output *table.Schema
}

// NewPipeline validates the rules against the input schema and computes
// the output schema. A rule that names a column absent at its point in
// the sequence, or a numeric operation on a string column, is a schema
// error.
func NewPipeline(rules []config.Rule, input *table.Schema) (*Pipeline, error) {
	working := input.Clone()

	for i, rule := range rules {
		switch rule.Op {
		case config.OpDerive:
			srcType, err := numericColumn(working, rule.Column)
			if err != nil {
				return nil, fmt.Errorf("derive rule %d (%s): %w", i+1, rule.Name, err)
			}
			outType := table.Float
			if rule.Operator != "div" && srcType == table.Int {
				if rule.Other != "" {
					otherType, err := numericColumn(working, rule.Other)
					if err != nil {
						return nil, fmt.Errorf("derive rule %d (%s): %w", i+1, rule.Name, err)
					}
					if otherType == table.Int {
						outType = table.Int
					}
				} else if rule.Operand == float64(int64(rule.Operand)) {
					outType = table.Int
				}
			} else if rule.Other != "" {
				if _, err := numericColumn(working, rule.Other); err != nil {
					return nil, fmt.Errorf("derive rule %d (%s): %w", i+1, rule.Name, err)
				}
			}
			if working.Has(rule.Name) {
				return nil, fmt.Errorf("derive rule %d: column %s already exists", i+1, rule.Name)
			}
			working.Columns = append(working.Columns, table.Column{Name: rule.Name, Type: outType})

		case config.OpFilter:
			if _, err := numericColumn(working, rule.Column); err != nil {
				return nil, fmt.Errorf("filter rule %d: %w", i+1, err)
			}

		case config.OpCategorize:
			if _, err := numericColumn(working, rule.Column); err != nil {
				return nil, fmt.Errorf("categorize rule %d (%s): %w", i+1, rule.Name, err)
			}
			if working.Has(rule.Name) {
				return nil, fmt.Errorf("categorize rule %d: column %s already exists", i+1, rule.Name)
			}
			working.Columns = append(working.Columns, table.Column{Name: rule.Name, Type: table.String})

		case config.OpSelect:
			selected := make([]table.Column, 0, len(rule.Columns))
			for _, name := range rule.Columns {
				col, ok := working.Column(name)
				if !ok {
					return nil, fmt.Errorf("select rule %d: column %s not found", i+1, name)
				}
				selected = append(selected, col)
			}
			working = &table.Schema{Columns: selected}

		default:
			return nil, fmt.Errorf("rule %d: unknown op %q", i+1, rule.Op)
		}
	}

	return &Pipeline{rules: rules, output: working}, nil
}

// OutputSchema returns the schema rows have after all rules applied
func (p *Pipeline) OutputSchema() *table.Schema {
	return p.output
}

// ApplyRow runs the full rule sequence against one row. The input map
// is not mutated. keep reports whether the row survived all filters.
func (p *Pipeline) ApplyRow(data map[string]interface{}) (out map[string]interface{}, keep bool, err error) {
	row := make(map[string]interface{}, len(data)+2)
	for k, v := range data {
		row[k] = v
	}

	for _, rule := range p.rules {
		switch rule.Op {
		case config.OpDerive:
			val, err := deriveValue(row, rule)
			if err != nil {
				return nil, false, err
			}
			row[rule.Name] = val

		case config.OpFilter:
			v, err := numericValue(row, rule.Column)
			if err != nil {
				return nil, false, err
			}
			if !compare(v, rule.Operator, rule.Operand) {
				return nil, false, nil
			}

		case config.OpCategorize:
			v, err := numericValue(row, rule.Column)
			if err != nil {
				return nil, false, err
			}
			above, below := rule.Above, rule.Below
			if above == "" {
				above = "above"
			}
			if below == "" {
				below = "below"
			}
			if v > rule.Threshold {
				row[rule.Name] = above
			} else {
				row[rule.Name] = below
			}

		case config.OpSelect:
			projected := make(map[string]interface{}, len(rule.Columns))
			for _, name := range rule.Columns {
				projected[name] = row[name]
			}
			row = projected
		}
	}

	return row, true, nil
}

func deriveValue(row map[string]interface{}, rule config.Rule) (interface{}, error) {
	left, err := numericValue(row, rule.Column)
	if err != nil {
		return nil, err
	}

	var right float64
	rightIsInt := rule.Operand == float64(int64(rule.Operand))
	if rule.Other != "" {
		right, err = numericValue(row, rule.Other)
		if err != nil {
			return nil, err
		}
		_, rightIsInt = row[rule.Other].(int64)
	} else {
		right = rule.Operand
	}

	_, leftIsInt := row[rule.Column].(int64)

	switch rule.Operator {
	case "add":
		if leftIsInt && rightIsInt {
			return int64(left) + int64(right), nil
		}
		return left + right, nil
	case "sub":
		if leftIsInt && rightIsInt {
			return int64(left) - int64(right), nil
		}
		return left - right, nil
	case "mul":
		if leftIsInt && rightIsInt {
			return int64(left) * int64(right), nil
		}
		return left * right, nil
	case "div":
		if rule.Other != "" {
			right += divEpsilon
		}
		return left / right, nil
	default:
		return nil, fmt.Errorf("unknown derive operator: %q", rule.Operator)
	}
}

func compare(value float64, operator string, operand float64) bool {
	switch operator {
	case "gt":
		return value > operand
	case "ge":
		return value >= operand
	case "lt":
		return value < operand
	case "le":
		return value <= operand
	case "eq":
		return value == operand
	case "ne":
		return value != operand
	default:
		return false
	}
}

func numericValue(row map[string]interface{}, column string) (float64, error) {
	v, ok := row[column]
	if !ok {
		return 0, fmt.Errorf("column %s not found in row", column)
	}
	switch n := v.(type) {
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("column %s is not numeric (value %v)", column, v)
	}
}

func numericColumn(schema *table.Schema, name string) (table.ColumnType, error) {
	col, ok := schema.Column(name)
	if !ok {
		return "", fmt.Errorf("column %s not found in schema", name)
	}
	// Unknown columns come from datasets with no rows: there is nothing
	// to validate numerically, so presence is enough.
	if col.Type != table.Int && col.Type != table.Float && col.Type != table.Unknown {
		return "", fmt.Errorf("column %s is not numeric (type %s)", name, col.Type)
	}
	return col.Type, nil
}
