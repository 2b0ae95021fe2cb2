// Package report holds the declarative report request: a column selection,
// a boolean filter tree, and an ordering. It never touches the catalog or
// SQL — that is the planner's job.
package report

import (
	"encoding/json"
	"fmt"
)

// Direction is the sort direction of an Order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Order is one entry of ReportRequest.Sort. The current planner accepts and
// ignores it (spec.md open question #3) — it is retained on the model for
// a future generation strategy, and round-trips through JSON either way.
type Order struct {
	Column    string
	Direction Direction
}

// ReportRequest is the immutable input to the planner. Duplicates in
// Columns are permitted; there is no dedup contract.
type ReportRequest struct {
	Columns []string
	Filters Filter
	Sort    []Order
}

type orderWire struct {
	Dir    string `json:"dir"`
	Column string `json:"column"`
}

type requestWire struct {
	Columns []string    `json:"columns"`
	Filters Filter      `json:"filters"`
	Sort    []orderWire `json:"sort"`
}

// ParseJSON decodes a ReportRequest from the JSON document shape described
// in spec.md §6.
func ParseJSON(data []byte) (ReportRequest, error) {
	var wire requestWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return ReportRequest{}, fmt.Errorf("decoding report request: %w", err)
	}

	sort := make([]Order, 0, len(wire.Sort))
	for _, o := range wire.Sort {
		dir := Direction(o.Dir)
		if dir != Asc && dir != Desc {
			return ReportRequest{}, fmt.Errorf("invalid sort direction %q for column %q", o.Dir, o.Column)
		}
		sort = append(sort, Order{Column: o.Column, Direction: dir})
	}

	return ReportRequest{
		Columns: wire.Columns,
		Filters: wire.Filters,
		Sort:    sort,
	}, nil
}

// MarshalJSON encodes the ReportRequest into the same wire shape ParseJSON
// decodes, so a request round-trips through JSON (e.g. via store.Repository)
// without losing or mangling Sort.
func (r ReportRequest) MarshalJSON() ([]byte, error) {
	sort := make([]orderWire, 0, len(r.Sort))
	for _, o := range r.Sort {
		sort = append(sort, orderWire{Dir: string(o.Direction), Column: o.Column})
	}
	return json.Marshal(requestWire{
		Columns: r.Columns,
		Filters: r.Filters,
		Sort:    sort,
	})
}
