// Package sqlgen walks a sqltree.Node and emits the SQL string it
// represents. Generation is pure and total: every well-formed tree
// produces a string, and there is no error return. A panic out of Generate
// means the tree violates one of sqltree's invariants — a planner bug, not
// a runtime condition.
package sqlgen

import (
	"fmt"
	"strings"

	"github.com/sqldef/reportsql/sqltree"
)

// Generate renders tree as a SQL string. The result may carry a leading
// space; callers are expected to strings.TrimSpace it.
func Generate(tree sqltree.Node) string {
	var b strings.Builder
	emit(&b, tree)
	return b.String()
}

func emit(b *strings.Builder, n sqltree.Node) {
	switch v := n.(type) {
	case sqltree.Select:
		emitSelect(b, v)
	case sqltree.Table:
		fmt.Fprintf(b, " %s %s", v.Name, v.Alias)
	case sqltree.Subquery:
		b.WriteString(" (")
		emit(b, v.Inner)
		fmt.Fprintf(b, ") %s", v.Alias)
	case sqltree.Column:
		fmt.Fprintf(b, " %s", v.Text)
	case sqltree.ColumnAlias:
		fmt.Fprintf(b, " %s AS %s", v.Column, v.Alias)
	case sqltree.Join:
		emitJoin(b, v)
	case sqltree.Expression:
		b.WriteString(" (")
		emit(b, v.Inner)
		b.WriteString(")")
	case sqltree.Comparison:
		emitComparison(b, v)
	case sqltree.Logical:
		emitLogical(b, v)
	case sqltree.Literal:
		fmt.Fprintf(b, " %s", v.Text)
	default:
		panic(fmt.Sprintf("sqlgen: unhandled node type %T", n))
	}
}

func emitSelect(b *strings.Builder, s sqltree.Select) {
	b.WriteString("SELECT")
	emitCommaList(b, s.Columns)
	b.WriteString(" FROM")
	emit(b, s.From)
	if s.Where != nil {
		b.WriteString(" WHERE")
		emit(b, s.Where)
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY")
		emitCommaList(b, s.GroupBy)
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY")
		emitCommaList(b, s.OrderBy)
	}
}

// emitCommaList renders each item with its own leading space, joined by a
// bare comma — the leading space of the next item supplies the separating
// whitespace, matching spec.md's "no space after comma" emission rule.
func emitCommaList(b *strings.Builder, items []sqltree.Node) {
	for i, item := range items {
		if i > 0 {
			b.WriteString(",")
		}
		emit(b, item)
	}
}

func emitJoin(b *strings.Builder, j sqltree.Join) {
	emit(b, j.Left)
	fmt.Fprintf(b, " %s", joinKeyword(j.JoinType))
	emit(b, j.Right)
	b.WriteString(" ON")
	emit(b, j.On)
}

func joinKeyword(t sqltree.JoinType) string {
	switch t {
	case sqltree.InnerJoin:
		return "INNER JOIN"
	case sqltree.LeftJoin:
		return "LEFT JOIN"
	case sqltree.RightJoin:
		return "RIGHT JOIN"
	case sqltree.FullJoin:
		return "FULL JOIN"
	default:
		panic(fmt.Sprintf("sqlgen: unhandled join type %d", t))
	}
}

func emitComparison(b *strings.Builder, c sqltree.Comparison) {
	emit(b, c.Left)
	fmt.Fprintf(b, " %s", comparisonOperator(c.Op))
	if c.Op == sqltree.In {
		b.WriteString(" (")
		emit(b, c.Right)
		b.WriteString(")")
		return
	}
	emit(b, c.Right)
}

func comparisonOperator(op sqltree.CompareOp) string {
	switch op {
	case sqltree.Eq:
		return "="
	case sqltree.Neq:
		return "<>"
	case sqltree.Lt:
		return "<"
	case sqltree.Gt:
		return ">"
	case sqltree.Lte:
		return "<="
	case sqltree.Gte:
		return ">="
	case sqltree.In:
		return "IN"
	default:
		panic(fmt.Sprintf("sqlgen: unhandled comparison op %d", op))
	}
}

func emitLogical(b *strings.Builder, l sqltree.Logical) {
	switch l.Op {
	case sqltree.And:
		for i, item := range l.Items {
			if i > 0 {
				b.WriteString(" AND")
			}
			emit(b, item)
		}
	case sqltree.Or:
		b.WriteString(" (")
		for i, item := range l.Items {
			if i > 0 {
				b.WriteString(" OR")
			}
			emit(b, item)
		}
		b.WriteString(")")
	default:
		panic(fmt.Sprintf("sqlgen: unhandled logical op %d", l.Op))
	}
}
