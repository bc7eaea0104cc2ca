package filterexpr

import (
	"strings"
)

// Condition is one predicate of a JSON:API filter parameter.
type Condition interface {
	String() string
	appendExpr(buf *strings.Builder)
}

type compareCondition struct {
	path     string
	operator string
	value    string
}

// Eq matches resources whose path equals value: `path:value`.
func Eq(path, value string) Condition {
	return compareCondition{path: path, operator: ":", value: value}
}

// Gt matches resources whose path orders after value: `path>value`.
func Gt(path, value string) Condition {
	return compareCondition{path: path, operator: ">", value: value}
}

// Lt matches resources whose path orders before value: `path<value`.
func Lt(path, value string) Condition {
	return compareCondition{path: path, operator: "<", value: value}
}

func (c compareCondition) appendExpr(buf *strings.Builder) {
	buf.WriteString(strings.TrimSpace(c.path))
	buf.WriteString(c.operator)
	buf.WriteString(strings.TrimSpace(c.value))
}

type andCondition struct {
	conditions []Condition
}

// And joins conditions with the store's comma operator. Nil conditions are skipped.
func And(conditions ...Condition) Condition {
	out := make([]Condition, 0, len(conditions))
	for _, c := range conditions {
		if c != nil {
			out = append(out, c)
		}
	}
	return andCondition{conditions: out}
}

func (c andCondition) appendExpr(buf *strings.Builder) {
	for i, cond := range c.conditions {
		if i > 0 {
			buf.WriteString(",")
		}
		cond.appendExpr(buf)
	}
}

func (c andCondition) String() string {
	var buf strings.Builder
	c.appendExpr(&buf)
	return buf.String()
}

func (c compareCondition) String() string {
	var buf strings.Builder
	c.appendExpr(&buf)
	return buf.String()
}

func Asc(field string) string {
	return strings.TrimSpace(field)
}

func Desc(field string) string {
	return "-" + strings.TrimSpace(field)
}
