// Package filter translates AIP-160 filter and AIP-132 order_by strings into
// post listing options.
package filter

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/louisbranch/postdesk/internal/platform/errors"
	"github.com/louisbranch/postdesk/internal/services/postdesk/post"
	"github.com/louisbranch/postdesk/internal/services/postdesk/store"
	"go.einride.tech/aip/filtering"
	"go.einride.tech/aip/ordering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// PostDeclarations returns the field declarations for post filtering.
func PostDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("status", filtering.TypeString),
		filtering.DeclareIdent("goal", filtering.TypeString),
		filtering.DeclareIdent("tone", filtering.TypeString),
		filtering.DeclareIdent("format", filtering.TypeString),
		filtering.DeclareIdent("created_at", filtering.TypeTimestamp),
	)
}

// orderPaths are the fields order_by may name.
var orderPaths = []string{"created_at", "topic"}

// timestampFields accept ordering comparisons; the rest only equality.
var timestampFields = map[string]bool{"created_at": true}

// ParseListQuery parses an optional filter and order_by into list options.
// Empty strings leave the store defaults in place.
func ParseListQuery(filterStr, orderBy string) (store.ListOptions, error) {
	var opts store.ListOptions

	conditions, err := parseFilter(filterStr)
	if err != nil {
		return store.ListOptions{}, invalid(err)
	}
	opts.Status, opts.Conditions = splitStatus(conditions)

	order, err := parseOrderBy(orderBy)
	if err != nil {
		return store.ListOptions{}, invalid(err)
	}
	opts.Order = order
	return opts, nil
}

func invalid(err error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeFilterInvalid, err.Error(), map[string]string{"detail": err.Error()}, err)
}

func parseFilter(filterStr string) ([]store.Condition, error) {
	if strings.TrimSpace(filterStr) == "" {
		return nil, nil
	}

	decls, err := PostDeclarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}

	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}

	return translateExpr(parsed.CheckedExpr.Expr)
}

// splitStatus lifts a lone status equality into the dedicated option.
func splitStatus(conditions []store.Condition) (post.Status, []store.Condition) {
	var status post.Status
	rest := make([]store.Condition, 0, len(conditions))
	for _, condition := range conditions {
		if condition.Column == "status" && condition.Operator == store.OpEqual && status == "" {
			status = post.Status(condition.Value)
			continue
		}
		rest = append(rest, condition)
	}
	if len(rest) == 0 {
		rest = nil
	}
	return status, rest
}

func translateExpr(e *expr.Expr) ([]store.Condition, error) {
	if e == nil {
		return nil, nil
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return translateCall(kind.CallExpr)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func translateCall(call *expr.Expr_Call) ([]store.Condition, error) {
	switch call.Function {
	case "_&&_", "AND":
		return translateAnd(call.Args)
	case "_==_", "=":
		return translateComparison(call.Args, store.OpEqual)
	case "_!=_", "!=":
		return translateComparison(call.Args, store.OpNotEqual)
	case "_<_", "<":
		return translateComparison(call.Args, store.OpLessThan)
	case "_<=_", "<=":
		return translateComparison(call.Args, store.OpLessOrEqual)
	case "_>_", ">":
		return translateComparison(call.Args, store.OpGreaterThan)
	case "_>=_", ">=":
		return translateComparison(call.Args, store.OpGreaterOrEqual)
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func translateAnd(args []*expr.Expr) ([]store.Condition, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("AND requires 2 arguments")
	}

	left, err := translateExpr(args[0])
	if err != nil {
		return nil, err
	}

	right, err := translateExpr(args[1])
	if err != nil {
		return nil, err
	}

	return append(left, right...), nil
}

func translateComparison(args []*expr.Expr, op store.Operator) ([]store.Condition, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}

	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}
	if op != store.OpEqual && op != store.OpNotEqual && !timestampFields[field] {
		return nil, fmt.Errorf("field %s only supports = and !=", field)
	}

	value, err := extractValue(args[1])
	if err != nil {
		return nil, err
	}
	if timestampFields[field] != isTimestampValue(args[1]) {
		return nil, fmt.Errorf("field %s compared with wrong value type", field)
	}

	return []store.Condition{{Column: field, Operator: op, Value: value}}, nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func isTimestampValue(e *expr.Expr) bool {
	call, ok := e.GetExprKind().(*expr.Expr_CallExpr)
	return ok && call.CallExpr.GetFunction() == "timestamp"
}

func extractValue(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}

	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		if value, ok := kind.ConstExpr.GetConstantKind().(*expr.Constant_StringValue); ok {
			return value.StringValue, nil
		}
		return "", fmt.Errorf("expected string constant, got %T", kind.ConstExpr.GetConstantKind())
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			return extractTimestampValue(kind.CallExpr.Args[0])
		}
		return "", fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return "", fmt.Errorf("expected constant or timestamp, got %T", kind)
	}
}

func extractTimestampValue(e *expr.Expr) (string, error) {
	constExpr, ok := e.GetExprKind().(*expr.Expr_ConstExpr)
	if !ok {
		return "", fmt.Errorf("timestamp argument must be a constant string")
	}
	value, ok := constExpr.ConstExpr.GetConstantKind().(*expr.Constant_StringValue)
	if !ok {
		return "", fmt.Errorf("timestamp argument must be a string")
	}
	t, err := time.Parse(time.RFC3339Nano, value.StringValue)
	if err != nil {
		return "", fmt.Errorf("invalid timestamp format: %s", value.StringValue)
	}
	return t.UTC().Format(time.RFC3339Nano), nil
}

func parseOrderBy(orderBy string) ([]store.Order, error) {
	if strings.TrimSpace(orderBy) == "" {
		return nil, nil
	}
	var parsed ordering.OrderBy
	if err := parsed.UnmarshalString(orderBy); err != nil {
		return nil, fmt.Errorf("parse order_by: %w", err)
	}
	if err := parsed.ValidateForPaths(orderPaths...); err != nil {
		return nil, fmt.Errorf("order_by: %w", err)
	}
	order := make([]store.Order, 0, len(parsed.Fields))
	for _, field := range parsed.Fields {
		order = append(order, store.Order{Field: field.Path, Desc: field.Desc})
	}
	return order, nil
}
