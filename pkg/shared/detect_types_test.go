package shared

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFindColumnTypes(t *testing.T) {
	data := `{"id": 1, "name": "a", "score": 1.5, "ok": true, "tags": ["x"], "extra": null}
{"id": 2, "name": null, "ok": false, "extra": {"k": 1}}
{"id": "three", "score": 3}
`
	want := []ColumnType{
		{Name: "id", Type: Text},
		{Name: "name", Type: Text},
		{Name: "score", Type: Numeric},
		{Name: "ok", Type: Boolean},
		{Name: "tags", Type: Json},
		{Name: "extra", Type: Json},
	}

	t.Run("dynamic", func(t *testing.T) {
		got, err := FindColumnTypes(strings.NewReader(data), 100, 1, Dynamic)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("column types (-want +got):\n%s", diff)
		}
	})

	t.Run("concurrent", func(t *testing.T) {
		// rows may be seen in any order, so only the column set is stable
		got, err := FindColumnTypes(strings.NewReader(data), 100, 4, Dynamic)
		if err != nil {
			t.Fatal(err)
		}
		byName := cmpopts.SortSlices(func(a, b ColumnType) bool { return a.Name < b.Name })
		if diff := cmp.Diff(want, got, byName); diff != "" {
			t.Errorf("column types (-want +got):\n%s", diff)
		}
	})

	t.Run("alltext", func(t *testing.T) {
		got, err := FindColumnTypes(strings.NewReader(data), 100, 1, AllText)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range got {
			if c.Type != Text {
				t.Errorf("column %s: want %s, got %s", c.Name, Text, c.Type)
			}
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := FindColumnTypes(strings.NewReader("{\"a\": 1}\nnot json\n"), 100, 1, Dynamic)
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}

func TestMaxRecordedType(t *testing.T) {
	tests := []struct {
		name  string
		types map[string]int
		want  string
	}{
		{"empty", map[string]int{}, Text},
		{"any text wins", map[string]int{Numeric: 10, Text: 1}, Text},
		{"numeric", map[string]int{Numeric: 3}, Numeric},
		{"majority", map[string]int{Numeric: 1, Json: 2}, Json},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxRecordedType(tt.types); got != tt.want {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}
