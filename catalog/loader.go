package catalog

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// yamlColumn mirrors the column_type vocabulary of the YAML descriptor
// (external interface §6): "grouping" or "aggregate".
type yamlColumn struct {
	Name       string `yaml:"name"`
	ColumnID   string `yaml:"column_id"`
	Expression string `yaml:"expression"`
	ColumnType string `yaml:"column_type"`
	DataType   string `yaml:"data_type"`
}

type yamlCatalog struct {
	Name    string       `yaml:"name"`
	Columns []yamlColumn `yaml:"columns"`
}

// LoadFile reads and parses a catalog YAML document from disk.
func LoadFile(path string) (Catalog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog %q: %w", path, err)
	}
	return LoadBytes(buf)
}

// LoadBytes parses a catalog YAML document already held in memory.
func LoadBytes(buf []byte) (Catalog, error) {
	var doc yamlCatalog
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	if err := dec.Decode(&doc); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog yaml: %w", err)
	}

	columns := make([]ColumnDef, 0, len(doc.Columns))
	for _, c := range doc.Columns {
		role, err := parseRole(c.ColumnType)
		if err != nil {
			return Catalog{}, fmt.Errorf("column %q: %w", c.ColumnID, err)
		}
		columns = append(columns, ColumnDef{
			Name:       c.Name,
			ColumnID:   c.ColumnID,
			Expression: c.Expression,
			Role:       role,
			DataType:   c.DataType,
		})
	}

	return New(doc.Name, columns), nil
}

func parseRole(columnType string) (Role, error) {
	switch columnType {
	case string(RoleGrouping):
		return RoleGrouping, nil
	case string(RoleAggregate):
		return RoleAggregate, nil
	default:
		return "", fmt.Errorf("unknown column_type %q (want %q or %q)", columnType, RoleGrouping, RoleAggregate)
	}
}
