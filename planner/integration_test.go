package planner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sqldef/reportsql/catalog"
	"github.com/sqldef/reportsql/planner"
	"github.com/sqldef/reportsql/report"
	"github.com/sqldef/reportsql/sqlgen"
)

func TestCompileTrivialSingleColumnReport(t *testing.T) {
	cat := catalog.New("campaign_reports", []catalog.ColumnDef{
		{Name: "username", ColumnID: "username", Expression: "username", Role: catalog.RoleGrouping, DataType: "text"},
	})
	req := report.ReportRequest{
		Columns: []string{"username"},
		Filters: report.And(report.GteF("date", "2020-01-01"), report.LtF("date", "2021-01-01")),
	}

	tree, err := planner.New(cat).Plan(req)
	require.NoError(t, err)

	got := strings.TrimSpace(sqlgen.Generate(tree))
	want := "SELECT FROM (SELECT username AS username FROM fact_table fact_table LEFT JOIN campaign_hierarchy campaign_hierarchy ON fact_table.line_item_id = campaign_hierarchy.line_item_id WHERE from_unixtime(fact_table.ts, 'YYYY-mm-dd') >= 2020-01-01 AND from_unixtime(fact_table.ts, 'YYYY-mm-dd') < 2021-01-01 GROUP BY from_unixtime(fact_table.ts, 'YYYY-mm-dd'), fact_table.line_item_id, campaign_hierarchy.campaign_id) facts LEFT JOIN dim_campaign dim_campaign ON facts.campaign_id = dim_campaign.campaign_id"
	assert.Equal(t, want, got)
}

func TestCompileContainsAggregationSubqueryMarker(t *testing.T) {
	cat := catalog.New("c", nil)
	req := report.ReportRequest{
		Filters: report.And(report.GteF("date", "2020-01-01"), report.LtF("date", "2021-01-01")),
	}
	tree, err := planner.New(cat).Plan(req)
	require.NoError(t, err)
	got := sqlgen.Generate(tree)
	assert.Contains(t, got, " FROM (SELECT ")
}

func TestCompileContainsExactlyOneDimensionJoin(t *testing.T) {
	cat := catalog.New("c", nil)
	req := report.ReportRequest{
		Filters: report.And(report.GteF("date", "2020-01-01"), report.LtF("date", "2021-01-01")),
	}
	tree, err := planner.New(cat).Plan(req)
	require.NoError(t, err)
	got := sqlgen.Generate(tree)
	want := "LEFT JOIN dim_campaign dim_campaign ON facts.campaign_id = dim_campaign.campaign_id"
	assert.Equal(t, 1, strings.Count(got, want))
}

func TestCompileFailsOnOrRoot(t *testing.T) {
	cat := catalog.New("c", nil)
	req := report.ReportRequest{Filters: report.Or()}
	_, err := planner.New(cat).Plan(req)
	require.Error(t, err)
	var mf planner.MissingFilterError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, "Expected And filter", mf.Reason)
}

func TestCompileFailsOnUnknownColumn(t *testing.T) {
	cat := catalog.New("c", []catalog.ColumnDef{{ColumnID: "username", Expression: "username"}})
	req := report.ReportRequest{
		Columns: []string{"unknown"},
		Filters: report.And(report.GteF("date", "2020-01-01"), report.LtF("date", "2021-01-01")),
	}
	_, err := planner.New(cat).Plan(req)
	var cnf planner.ColumnNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "unknown", cnf.ColumnID)
}
