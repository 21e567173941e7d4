package frame

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/anvesh9652/csvbench/pkg/shared"
	"github.com/google/go-cmp/cmp"
)

func TestReadCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("types and nulls", func(t *testing.T) {
		data := "id,score,active,name,mixed\n" +
			"1,1.5,true,a,1\n" +
			"2,,false,,x\n" +
			"3,3,,c,2.5\n"
		f, err := ReadCSV(ctx, strings.NewReader(data))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"id", "score", "active", "name", "mixed"}, f.Columns()); diff != "" {
			t.Errorf("columns (-want +got):\n%s", diff)
		}
		if f.Rows() != 3 {
			t.Errorf("rows: want 3, got %d", f.Rows())
		}

		wantKinds := map[string]Kind{"id": Int, "score": Float, "active": Bool, "name": String, "mixed": String}
		for col, want := range wantKinds {
			s, err := f.Column(col)
			if err != nil {
				t.Fatal(err)
			}
			if s.Kind() != want {
				t.Errorf("column %s: want kind %s, got %s", col, want, s.Kind())
			}
		}

		got := [][]any{}
		for i := range f.Rows() {
			var row []any
			for _, col := range f.Columns() {
				v, err := f.Get(i, col)
				if err != nil {
					t.Fatal(err)
				}
				row = append(row, v)
			}
			got = append(got, row)
		}
		want := [][]any{
			{int64(1), 1.5, true, "a", "1"},
			{int64(2), nil, false, nil, "x"},
			{int64(3), 3.0, nil, "c", "2.5"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("values (-want +got):\n%s", diff)
		}
	})

	t.Run("keeps row order across chunks", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString("n\n")
		for i := range 1000 {
			sb.WriteString(strconv.Itoa(i))
			sb.WriteString("\n")
		}
		f, err := ReadCSV(ctx, strings.NewReader(sb.String()), WithChunkSize(7), WithWorkers(4))
		if err != nil {
			t.Fatal(err)
		}
		if f.Rows() != 1000 {
			t.Fatalf("rows: want 1000, got %d", f.Rows())
		}
		s, _ := f.Column("n")
		for i := range 1000 {
			if v := s.Value(i); v != int64(i) {
				t.Fatalf("row %d: want %d, got %v", i, i, v)
			}
		}
	})

	t.Run("alltext", func(t *testing.T) {
		f, err := ReadCSV(ctx, strings.NewReader("a,b\n1,2.5\n"), WithTypeSetting(shared.AllText))
		if err != nil {
			t.Fatal(err)
		}
		v, _ := f.Get(0, "a")
		if v != "1" {
			t.Errorf("want string 1, got %#v", v)
		}
	})

	t.Run("separator and comment", func(t *testing.T) {
		data := "# exported\na;b\n1;x\n# trailing\n2;y\n"
		f, err := ReadCSV(ctx, strings.NewReader(data), WithSeparator(';'), WithComment('#'))
		if err != nil {
			t.Fatal(err)
		}
		if f.Rows() != 2 || f.NumColumns() != 2 {
			t.Errorf("want 2x2, got %dx%d", f.Rows(), f.NumColumns())
		}
	})

	t.Run("header only", func(t *testing.T) {
		f, err := ReadCSV(ctx, strings.NewReader("a,b\n"))
		if err != nil {
			t.Fatal(err)
		}
		if f.Rows() != 0 || f.NumColumns() != 2 {
			t.Errorf("want 0x2, got %dx%d", f.Rows(), f.NumColumns())
		}
	})

	t.Run("duplicate headers", func(t *testing.T) {
		f, err := ReadCSV(ctx, strings.NewReader("a,a,a.1\n1,2,3\n"))
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]string{"a", "a.2", "a.1"}, f.Columns()); diff != "" {
			t.Errorf("columns (-want +got):\n%s", diff)
		}
	})
}

func TestReadCSVErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty input", data: "", wantErr: ErrNoHeader.Error()},
		{name: "ragged row", data: "a,b\n1,2\n3\n", wantErr: "inconsistent column count in row 2: expected 2 columns, got 1"},
		{name: "bad quote", data: "a,b\n1,\"x\n", wantErr: "error reading CSV at row 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(ctx, strings.NewReader(tt.data))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("want error containing %q, got %q", tt.wantErr, err)
			}
		})
	}

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		data := "a\n" + strings.Repeat("1\n", 100)
		_, err := ReadCSV(cctx, strings.NewReader(data), WithChunkSize(10))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("want context.Canceled, got %v", err)
		}
	})
}

func TestReadCSVCustomers(t *testing.T) {
	f, err := os.Open("testdata/customers-100.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	df, err := ReadCSV(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if df.Rows() != 100 || df.NumColumns() != 12 {
		t.Fatalf("want 100x12, got %dx%d", df.Rows(), df.NumColumns())
	}
	idx, _ := df.Column("Index")
	if idx.Kind() != Int {
		t.Errorf("Index: want int, got %s", idx.Kind())
	}
	company, _ := df.Column("Company")
	if company.Kind() != String {
		t.Errorf("Company: want string, got %s", company.Kind())
	}
	if head := df.Head(5); head.Rows() != 5 {
		t.Errorf("head: want 5 rows, got %d", head.Rows())
	}
}

func BenchmarkReadCSV(b *testing.B) {
	data, err := os.ReadFile("testdata/customers-100.csv")
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ReadCSV(ctx, strings.NewReader(string(data))); err != nil {
			b.Fatalf("Error reading data: %v", err)
		}
	}
}
