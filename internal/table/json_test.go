package table

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/goccy/go-json"
)

func loadJSONFixture(t *testing.T, content string) *Table {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	tbl, err := Load(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("failed to load %s: %v", path, err)
	}
	return tbl
}

func TestLoadJSON(t *testing.T) {
	tbl := loadJSONFixture(t, `{"id": 1, "name": "alice"}
{"id": 2, "name": "bob"}
`)
	defer tbl.Release()

	if got := tbl.NumRows(); got != 2 {
		t.Errorf("NumRows() = %d, want 2", got)
	}

	// Inferred columns come out in alphabetical order.
	names := tbl.ColumnNames()
	if len(names) != 2 || names[0] != "id" || names[1] != "name" {
		t.Fatalf("ColumnNames() = %v, want [id name]", names)
	}

	rows := tbl.RowMaps(0)
	if rows[0]["id"] != int64(1) {
		t.Errorf("rows[0][id] = %v (%T), want int64(1)", rows[0]["id"], rows[0]["id"])
	}
	if rows[1]["name"] != "bob" {
		t.Errorf("rows[1][name] = %v, want bob", rows[1]["name"])
	}
}

func TestJSONTypeInference(t *testing.T) {
	tests := []struct {
		name    string
		content string
		column  string
		want    arrow.DataType
	}{
		{
			name:    "integers",
			content: "{\"v\": 1}\n{\"v\": 2}\n",
			column:  "v",
			want:    arrow.PrimitiveTypes.Int64,
		},
		{
			name:    "floats",
			content: "{\"v\": 1.5}\n{\"v\": 2.5}\n",
			column:  "v",
			want:    arrow.PrimitiveTypes.Float64,
		},
		{
			name:    "mixed int and float widens to float",
			content: "{\"v\": 1}\n{\"v\": 2.5}\n",
			column:  "v",
			want:    arrow.PrimitiveTypes.Float64,
		},
		{
			name:    "booleans",
			content: "{\"v\": true}\n{\"v\": false}\n",
			column:  "v",
			want:    arrow.FixedWidthTypes.Boolean,
		},
		{
			name:    "strings",
			content: "{\"v\": \"x\"}\n",
			column:  "v",
			want:    arrow.BinaryTypes.String,
		},
		{
			name:    "mixed bool and number degrades to string",
			content: "{\"v\": true}\n{\"v\": 1}\n",
			column:  "v",
			want:    arrow.BinaryTypes.String,
		},
		{
			name:    "all null defaults to string",
			content: "{\"v\": null}\n",
			column:  "v",
			want:    arrow.BinaryTypes.String,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := loadJSONFixture(t, tt.content)
			defer tbl.Release()

			idx := tbl.Schema.FieldIndices(tt.column)
			if len(idx) != 1 {
				t.Fatalf("column %q not found in schema %v", tt.column, tbl.Schema)
			}
			got := tbl.Schema.Field(idx[0]).Type
			if !arrow.TypeEqual(got, tt.want) {
				t.Errorf("inferred type = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadJSONMissingKeys(t *testing.T) {
	tbl := loadJSONFixture(t, `{"a": 1, "b": "x"}
{"a": 2}
`)
	defer tbl.Release()

	rows := tbl.RowMaps(0)
	if rows[1]["b"] != nil {
		t.Errorf("missing key = %v, want nil", rows[1]["b"])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	tbl := loadJSONFixture(t, `{"id": 1, "name": "alice"}
{"id": 2, "name": null}
`)
	defer tbl.Release()

	out := filepath.Join(t.TempDir(), "out.json")
	if err := Write(ctx, tbl, out); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	got, err := Load(ctx, out, Options{})
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	defer got.Release()

	if got.NumRows() != 2 {
		t.Errorf("reloaded NumRows() = %d, want 2", got.NumRows())
	}
	rows := got.RowMaps(0)
	if rows[0]["name"] != "alice" {
		t.Errorf("rows[0][name] = %v, want alice", rows[0]["name"])
	}
	if rows[1]["name"] != nil {
		t.Errorf("rows[1][name] = %v, want nil", rows[1]["name"])
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"1", int64(1)},
		{"-42", int64(-42)},
		{"1.5", 1.5},
		{"1e3", 1000.0},
		{"9223372036854775807", int64(9223372036854775807)},
		// Too large for int64, falls back to float.
		{"9223372036854775808", 9223372036854775808.0},
	}
	for _, tt := range tests {
		if got := normalizeNumber(json.Number(tt.in)); got != tt.want {
			t.Errorf("normalizeNumber(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
