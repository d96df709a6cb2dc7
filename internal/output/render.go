package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/slicelog/internal/dataset"
)

// Format selects a rendering.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatYAML, FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be one of table, yaml, json, csv", s)
	}
}

// Render encodes every row of ds in the given format. Keys and columns keep
// the header order.
func Render(ds *dataset.Dataset, f Format) ([]byte, error) {
	switch f {
	case FormatTable:
		return renderTable(ds), nil
	case FormatYAML:
		return renderYAML(ds)
	case FormatJSON:
		return renderJSON(ds)
	case FormatCSV:
		return renderCSV(ds)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

func renderTable(ds *dataset.Dataset) []byte {
	if ds.Len() == 0 {
		return []byte("no records\n")
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, row := range ds.Rows {
		r := make(table.Row, len(ds.Columns))
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	return []byte(tw.Render() + "\n")
}

// orderedRow marshals as an object whose keys follow the header order.
type orderedRow struct {
	columns []string
	values  []string
}

func (r orderedRow) value(i int) string {
	if i < len(r.values) {
		return r.values[i]
	}

	return ""
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}

		v, err := json.Marshal(r.value(i))
		if err != nil {
			return nil, err
		}

		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (r orderedRow) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for i, col := range r.columns {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.value(i)},
		)
	}

	return node
}

func rowsOf(ds *dataset.Dataset) []orderedRow {
	rows := make([]orderedRow, 0, ds.Len())
	for _, row := range ds.Rows {
		rows = append(rows, orderedRow{columns: ds.Columns, values: row})
	}

	return rows
}

func renderJSON(ds *dataset.Dataset) ([]byte, error) {
	data, err := json.MarshalIndent(rowsOf(ds), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing JSON: %w", err)
	}

	return append(data, '\n'), nil
}

func renderYAML(ds *dataset.Dataset) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	if ds.Len() == 0 {
		seq.Style = yaml.FlowStyle
	}

	for _, row := range rowsOf(ds) {
		seq.Content = append(seq.Content, row.yamlNode())
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(seq); err != nil {
		return nil, fmt.Errorf("serializing YAML: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("serializing YAML: %w", err)
	}

	return buf.Bytes(), nil
}

func renderCSV(ds *dataset.Dataset) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(ds.Columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	for _, row := range rowsOf(ds) {
		cells := make([]string, len(row.columns))
		for i := range cells {
			cells[i] = row.value(i)
		}

		if err := w.Write(cells); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("writing CSV: %w", err)
	}

	return buf.Bytes(), nil
}
