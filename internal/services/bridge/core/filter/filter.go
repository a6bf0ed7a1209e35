// Package filter translates AIP-160 filter expressions over actors and
// creatures into SQL conditions.
package filter

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Field declares one filterable identifier and the column it maps to.
type Field struct {
	Name   string
	Column string
	Type   *expr.Type
}

// Schema is the set of fields a filter may reference.
type Schema struct {
	fields  []Field
	columns map[string]string
}

// NewSchema builds a schema from field declarations.
func NewSchema(fields ...Field) Schema {
	columns := make(map[string]string, len(fields))
	for _, f := range fields {
		columns[f.Name] = f.Column
	}
	return Schema{fields: fields, columns: columns}
}

// Actors is the schema for host actor listings.
var Actors = NewSchema(
	Field{Name: "id", Column: "id", Type: filtering.TypeString},
	Field{Name: "name", Column: "name", Type: filtering.TypeString},
	Field{Name: "type", Column: "actor_type", Type: filtering.TypeString},
	Field{Name: "system", Column: "game_system", Type: filtering.TypeString},
	Field{Name: "updated_at", Column: "updated_at", Type: filtering.TypeTimestamp},
)

// Creatures is the schema for the creature index.
var Creatures = NewSchema(
	Field{Name: "name", Column: "name", Type: filtering.TypeString},
	Field{Name: "type", Column: "creature_type", Type: filtering.TypeString},
	Field{Name: "pack", Column: "pack", Type: filtering.TypeString},
	Field{Name: "species", Column: "species", Type: filtering.TypeString},
	Field{Name: "culture", Column: "culture", Type: filtering.TypeString},
	Field{Name: "size", Column: "size", Type: filtering.TypeString},
	Field{Name: "rarity", Column: "rarity", Type: filtering.TypeString},
	Field{Name: "level", Column: "level", Type: filtering.TypeInt},
	Field{Name: "experience", Column: "experience", Type: filtering.TypeInt},
	Field{Name: "life_points", Column: "life_points", Type: filtering.TypeInt},
	Field{Name: "melee_defense", Column: "melee_defense", Type: filtering.TypeInt},
	Field{Name: "ranged_defense", Column: "ranged_defense", Type: filtering.TypeInt},
)

// Declarations returns the AIP filter declarations for the schema.
func (s Schema) Declarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for _, f := range s.fields {
		opts = append(opts, filtering.DeclareIdent(f.Name, f.Type))
	}
	return filtering.NewDeclarations(opts...)
}

// SQLCondition is a WHERE fragment with positional parameters.
type SQLCondition struct {
	Clause string
	Params []any
}

// IsEmpty reports whether the condition restricts nothing.
func (c SQLCondition) IsEmpty() bool {
	return c.Clause == ""
}

// Parse type-checks an AIP-160 filter against the schema and translates it.
// A blank filter yields an empty condition.
func (s Schema) Parse(filterStr string) (SQLCondition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return SQLCondition{}, nil
	}
	decls, err := s.Declarations()
	if err != nil {
		return SQLCondition{}, fmt.Errorf("create declarations: %w", err)
	}
	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return SQLCondition{}, fmt.Errorf("parse filter: %w", err)
	}
	return s.translate(parsed.CheckedExpr.GetExpr())
}

// comparisons maps checked-expression function names to SQL operators.
var comparisons = map[string]string{
	filtering.FunctionEquals:        "=",
	filtering.FunctionNotEquals:     "!=",
	filtering.FunctionLessThan:      "<",
	filtering.FunctionLessEquals:    "<=",
	filtering.FunctionGreaterThan:   ">",
	filtering.FunctionGreaterEquals: ">=",
}

func (s Schema) translate(e *expr.Expr) (SQLCondition, error) {
	call := e.GetCallExpr()
	if call == nil {
		return SQLCondition{}, fmt.Errorf("unsupported expression %T", e.GetExprKind())
	}
	args := call.GetArgs()

	switch fn := call.GetFunction(); fn {
	case filtering.FunctionAnd, filtering.FunctionOr:
		if len(args) != 2 {
			return SQLCondition{}, fmt.Errorf("%s requires 2 arguments", fn)
		}
		left, err := s.translate(args[0])
		if err != nil {
			return SQLCondition{}, err
		}
		right, err := s.translate(args[1])
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{
			Clause: "(" + left.Clause + " " + fn + " " + right.Clause + ")",
			Params: append(left.Params, right.Params...),
		}, nil

	case filtering.FunctionNot:
		if len(args) != 1 {
			return SQLCondition{}, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := s.translate(args[0])
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: "NOT (" + inner.Clause + ")", Params: inner.Params}, nil

	default:
		op, ok := comparisons[fn]
		if !ok {
			return SQLCondition{}, fmt.Errorf("unsupported function: %s", fn)
		}
		if len(args) != 2 {
			return SQLCondition{}, fmt.Errorf("comparison requires 2 arguments")
		}
		ident := args[0].GetIdentExpr()
		if ident == nil {
			return SQLCondition{}, fmt.Errorf("left side of %s must be a field", op)
		}
		column, ok := s.columns[ident.GetName()]
		if !ok {
			return SQLCondition{}, fmt.Errorf("unknown field: %s", ident.GetName())
		}
		value, err := literal(args[1])
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: column + " " + op + " ?", Params: []any{value}}, nil
	}
}

// literal returns the SQL parameter for a constant or timestamp("...") call.
// Timestamps are normalized to UTC RFC 3339 text to compare against stored
// updated_at values.
func literal(e *expr.Expr) (any, error) {
	if call := e.GetCallExpr(); call != nil {
		if call.GetFunction() != filtering.FunctionTimestamp || len(call.GetArgs()) != 1 {
			return nil, fmt.Errorf("unsupported function in value position: %s", call.GetFunction())
		}
		raw := call.GetArgs()[0].GetConstExpr().GetStringValue()
		ts, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", raw, err)
		}
		return ts.UTC().Format(time.RFC3339Nano), nil
	}

	c := e.GetConstExpr()
	if c == nil {
		return nil, fmt.Errorf("expected constant or timestamp, got %T", e.GetExprKind())
	}
	switch kind := c.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return kind.Uint64Value, nil
	case *expr.Constant_DoubleValue:
		return kind.DoubleValue, nil
	case *expr.Constant_BoolValue:
		return kind.BoolValue, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}
