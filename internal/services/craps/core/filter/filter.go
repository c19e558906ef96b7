// Package filter translates AIP-160 game filters into SQL conditions.
package filter

import (
	"fmt"
	"strings"

	"github.com/louisbranch/crapshoot/internal/services/craps/domain/game"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// GameDeclarations returns the field declarations for game filtering.
func GameDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("deployment_id", filtering.TypeString),
		filtering.DeclareIdent("game_id", filtering.TypeString),
		filtering.DeclareIdent("phase", filtering.TypeString),
		filtering.DeclareIdent("shooter", filtering.TypeString),
		filtering.DeclareIdent("point", filtering.TypeInt),
	)
}

// SQLCondition represents a SQL WHERE clause fragment with parameters.
type SQLCondition struct {
	// Clause is the SQL WHERE clause (e.g., "phase = ?").
	Clause string
	// Params are the positional parameters for the clause.
	Params []any
}

// gameColumns maps filter field names to games table columns.
var gameColumns = map[string]string{
	"deployment_id": "deployment_id",
	"game_id":       "game_id",
	"phase":         "phase",
	"shooter":       "shooter",
	"point":         "point",
}

var comparisonOps = map[string]string{
	"=":  "=",
	"!=": "!=",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}

// ParseGameFilter parses an AIP-160 filter expression and returns a SQL
// condition. An empty filter yields an empty condition.
func ParseGameFilter(filterStr string) (SQLCondition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return SQLCondition{}, nil
	}

	decls, err := GameDeclarations()
	if err != nil {
		return SQLCondition{}, fmt.Errorf("create declarations: %w", err)
	}

	filter, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return SQLCondition{}, fmt.Errorf("parse filter: %w", err)
	}

	return translateExpr(filter.CheckedExpr.GetExpr())
}

func translateExpr(e *expr.Expr) (SQLCondition, error) {
	if e == nil {
		return SQLCondition{}, nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return SQLCondition{}, fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	return translateCall(call.CallExpr)
}

func translateCall(call *expr.Expr_Call) (SQLCondition, error) {
	switch call.Function {
	case filtering.FunctionAnd:
		return translateJunction(call.Args, "AND")
	case filtering.FunctionOr:
		return translateJunction(call.Args, "OR")
	case filtering.FunctionNot:
		if len(call.Args) != 1 {
			return SQLCondition{}, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := translateExpr(call.Args[0])
		if err != nil {
			return SQLCondition{}, err
		}
		return SQLCondition{Clause: "NOT (" + inner.Clause + ")", Params: inner.Params}, nil
	}
	if op, ok := comparisonOps[call.Function]; ok {
		return translateComparison(call.Args, op)
	}
	return SQLCondition{}, fmt.Errorf("unsupported function: %s", call.Function)
}

func translateJunction(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("%s requires 2 arguments", op)
	}
	left, err := translateExpr(args[0])
	if err != nil {
		return SQLCondition{}, err
	}
	right, err := translateExpr(args[1])
	if err != nil {
		return SQLCondition{}, err
	}
	return SQLCondition{
		Clause: fmt.Sprintf("(%s %s %s)", left.Clause, op, right.Clause),
		Params: append(left.Params, right.Params...),
	}, nil
}

func translateComparison(args []*expr.Expr, op string) (SQLCondition, error) {
	if len(args) != 2 {
		return SQLCondition{}, fmt.Errorf("comparison requires 2 arguments")
	}
	ident, ok := args[0].GetExprKind().(*expr.Expr_IdentExpr)
	if !ok {
		return SQLCondition{}, fmt.Errorf("expected identifier, got %T", args[0].GetExprKind())
	}
	field := ident.IdentExpr.GetName()
	column, ok := gameColumns[field]
	if !ok {
		return SQLCondition{}, fmt.Errorf("unknown field: %s", field)
	}
	value, err := extractValue(args[1])
	if err != nil {
		return SQLCondition{}, err
	}
	if field == "phase" {
		label, _ := value.(string)
		if _, ok := game.ParsePhase(label); !ok {
			return SQLCondition{}, fmt.Errorf("unknown phase: %q", label)
		}
		if op != "=" && op != "!=" {
			return SQLCondition{}, fmt.Errorf("phase supports only = and !=")
		}
	}
	return SQLCondition{
		Clause: fmt.Sprintf("%s %s ?", column, op),
		Params: []any{value},
	}, nil
}

func extractValue(e *expr.Expr) (any, error) {
	constant, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return nil, fmt.Errorf("expected constant, got %T", e.GetExprKind())
	}
	switch kind := constant.ConstExpr.GetConstantKind().(type) {
	case *expr.Constant_StringValue:
		return kind.StringValue, nil
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	default:
		return nil, fmt.Errorf("unsupported constant type: %T", kind)
	}
}
