package sqltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodesAreDeepEqualByValue(t *testing.T) {
	a := Select{
		Columns: []Node{ColumnAlias{Column: "x", Alias: "y"}},
		From:    Table{Name: "t", Alias: "t"},
	}
	b := Select{
		Columns: []Node{ColumnAlias{Column: "x", Alias: "y"}},
		From:    Table{Name: "t", Alias: "t"},
	}
	assert.Equal(t, a, b)
}

func TestJoinOnAcceptsComparisonOrLogical(t *testing.T) {
	cmp := Comparison{Left: Column{Text: "a.id"}, Op: Eq, Right: Column{Text: "b.id"}}
	j := Join{
		Left:     Table{Name: "a", Alias: "a"},
		Right:    Table{Name: "b", Alias: "b"},
		JoinType: LeftJoin,
		On:       cmp,
	}
	assert.Equal(t, cmp, j.On)

	logical := Logical{Op: And, Items: []Node{cmp, cmp}}
	j.On = logical
	assert.Equal(t, logical, j.On)
}

func TestSubqueryWrapsASelect(t *testing.T) {
	inner := Select{Columns: []Node{Column{Text: "x"}}, From: Table{Name: "t", Alias: "t"}}
	sq := Subquery{Inner: inner, Alias: "facts"}
	assert.IsType(t, Select{}, sq.Inner)
}

func TestDistinctNodeKindsAreNotEqual(t *testing.T) {
	assert.NotEqual(t, Node(Column{Text: "x"}), Node(Literal{Text: "x"}))
}
