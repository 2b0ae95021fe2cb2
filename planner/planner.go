// Package planner compiles a report.ReportRequest against a catalog.Catalog
// into a sqltree.Node. It is the only component that knows the fixed
// two-stage query shape (aggregation subquery joined to a dimension
// table); sqltree and sqlgen know nothing about fact_table, campaign_hierarchy,
// or dim_campaign.
package planner

import (
	"github.com/sqldef/reportsql/catalog"
	"github.com/sqldef/reportsql/report"
	"github.com/sqldef/reportsql/sqltree"
)

// fixed physical names the planner's query shape is hard-wired to, per
// spec.md §4.2. These are not catalog-configurable: the catalog only
// describes the projected columns, not the join topology.
const (
	factTable        = "fact_table"
	hierarchyTable   = "campaign_hierarchy"
	dimensionTable   = "dim_campaign"
	subqueryAlias    = "facts"
	dateExpr         = "from_unixtime(fact_table.ts, 'YYYY-mm-dd')"
	dateFilterColumn = "date"
)

// Planner compiles requests against a single, immutable Catalog. It carries
// no other state and is safe to reuse concurrently.
type Planner struct {
	Catalog catalog.Catalog
}

// New builds a Planner bound to a Catalog.
func New(cat catalog.Catalog) Planner {
	return Planner{Catalog: cat}
}

// Plan resolves req against p.Catalog and assembles the fixed two-stage
// query shape. The first column-resolution failure short-circuits; no
// partial tree is ever returned.
func (p Planner) Plan(req report.ReportRequest) (sqltree.Node, error) {
	startDate, endDate, err := extractDateWindow(req.Filters)
	if err != nil {
		return nil, err
	}

	innerColumns := make([]sqltree.Node, 0, len(req.Columns))
	for _, columnID := range req.Columns {
		def, ok := p.Catalog.Resolve(columnID)
		if !ok {
			return nil, ColumnNotFoundError{ColumnID: columnID}
		}
		innerColumns = append(innerColumns, sqltree.ColumnAlias{
			Column: def.Expression,
			Alias:  def.ColumnID,
		})
	}

	inner := sqltree.Select{
		Columns: innerColumns,
		From: sqltree.Join{
			Left:     sqltree.Table{Name: factTable, Alias: factTable},
			Right:    sqltree.Table{Name: hierarchyTable, Alias: hierarchyTable},
			JoinType: sqltree.LeftJoin,
			On: sqltree.Comparison{
				Left:  sqltree.Column{Text: factTable + ".line_item_id"},
				Op:    sqltree.Eq,
				Right: sqltree.Column{Text: hierarchyTable + ".line_item_id"},
			},
		},
		Where: sqltree.Logical{
			Op: sqltree.And,
			Items: []sqltree.Node{
				sqltree.Comparison{
					Left:  sqltree.Column{Text: dateExpr},
					Op:    sqltree.Gte,
					Right: sqltree.Literal{Text: startDate},
				},
				sqltree.Comparison{
					Left:  sqltree.Column{Text: dateExpr},
					Op:    sqltree.Lt,
					Right: sqltree.Literal{Text: endDate},
				},
			},
		},
		GroupBy: []sqltree.Node{
			sqltree.Column{Text: dateExpr},
			sqltree.Column{Text: factTable + ".line_item_id"},
			sqltree.Column{Text: hierarchyTable + ".campaign_id"},
		},
	}

	outer := sqltree.Select{
		// Columns intentionally empty — spec.md Open Question #1, preserved.
		From: sqltree.Join{
			Left:     sqltree.Subquery{Inner: inner, Alias: subqueryAlias},
			Right:    sqltree.Table{Name: dimensionTable, Alias: dimensionTable},
			JoinType: sqltree.LeftJoin,
			On: sqltree.Comparison{
				Left:  sqltree.Column{Text: subqueryAlias + ".campaign_id"},
				Op:    sqltree.Eq,
				Right: sqltree.Column{Text: dimensionTable + ".campaign_id"},
			},
		},
	}

	return outer, nil
}

// extractDateWindow performs the single, non-descending pass over the
// direct children of the root And filter described in spec.md §4.2: the
// last Gte(date) and the last Lt(date) win; every other child is ignored.
func extractDateWindow(f report.Filter) (start, end string, err error) {
	if f.Kind != report.FilterAnd {
		return "", "", MissingFilterError{Reason: "Expected And filter"}
	}

	var (
		haveStart, haveEnd bool
	)
	for _, child := range f.Children {
		switch {
		case child.Kind == report.FilterGte && child.Column == dateFilterColumn:
			start = child.Value
			haveStart = true
		case child.Kind == report.FilterLt && child.Column == dateFilterColumn:
			end = child.Value
			haveEnd = true
		}
	}

	if !haveStart {
		return "", "", MissingFilterError{Reason: "start_date"}
	}
	if !haveEnd {
		return "", "", MissingFilterError{Reason: "end_date"}
	}
	return start, end, nil
}
