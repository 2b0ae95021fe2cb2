package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONBasicRequest(t *testing.T) {
	doc := []byte(`{
		"columns": ["username"],
		"filters": {"type":"and","value":[
			{"type":"gte","column":"date","value":"2020-01-01"},
			{"type":"lt","column":"date","value":"2021-01-01"}
		]},
		"sort": [{"dir":"asc","column":"username"}]
	}`)

	req, err := ParseJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"username"}, req.Columns)
	assert.Equal(t, FilterAnd, req.Filters.Kind)
	require.Len(t, req.Filters.Children, 2)
	assert.Equal(t, FilterGte, req.Filters.Children[0].Kind)
	assert.Equal(t, "date", req.Filters.Children[0].Column)
	assert.Equal(t, "2020-01-01", req.Filters.Children[0].Value)
	require.Len(t, req.Sort, 1)
	assert.Equal(t, Asc, req.Sort[0].Direction)
}

func TestParseJSONNestedOr(t *testing.T) {
	doc := []byte(`{
		"columns": [],
		"filters": {"type":"or","value":[
			{"type":"eq","column":"region","value":"eu"},
			{"type":"eq","column":"region","value":"us"}
		]},
		"sort": []
	}`)
	req, err := ParseJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, FilterOr, req.Filters.Kind)
	assert.Len(t, req.Filters.Children, 2)
}

func TestParseJSONRejectsBadSortDirection(t *testing.T) {
	doc := []byte(`{"columns":[],"filters":{"type":"and","value":[]},"sort":[{"dir":"sideways","column":"x"}]}`)
	_, err := ParseJSON(doc)
	assert.Error(t, err)
}

func TestParseJSONRejectsUnknownFilterType(t *testing.T) {
	doc := []byte(`{"columns":[],"filters":{"type":"xor","value":[]},"sort":[]}`)
	_, err := ParseJSON(doc)
	assert.Error(t, err)
}

func TestFilterRoundTripsThroughJSON(t *testing.T) {
	f := And(GteF("date", "2020-01-01"), LtF("date", "2021-01-01"))
	data, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded Filter
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, f, decoded)
}

func TestReportRequestRoundTripsThroughJSONWithSort(t *testing.T) {
	req := ReportRequest{
		Columns: []string{"username", "campaign_id"},
		Filters: And(GteF("date", "2020-01-01"), LtF("date", "2021-01-01")),
		Sort:    []Order{{Column: "username", Direction: Asc}, {Column: "campaign_id", Direction: Desc}},
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	decoded, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, req, decoded)
}
