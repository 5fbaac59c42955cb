package query_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/dataset-lab/pkg/query"
)

func newTestProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "data_files", "f").
		Project("id", "ID").
		Project("dataset_id", "DatasetID").
		Project("name", "Name").
		Project("content_type", "ContentType").
		Project("created_at", "CreatedAt")
}

func TestProjectionMap(t *testing.T) {
	pm := newTestProjection()

	if pm.Table() != "public.data_files f" {
		t.Errorf("Table() = %q, want %q", pm.Table(), "public.data_files f")
	}
	if pm.Column("DatasetID") != "f.dataset_id" {
		t.Errorf("Column(DatasetID) = %q, want %q", pm.Column("DatasetID"), "f.dataset_id")
	}
	if pm.Column("Unknown") != "Unknown" {
		t.Errorf("Column(Unknown) = %q, want input echoed", pm.Column("Unknown"))
	}

	want := "f.id, f.dataset_id, f.name, f.content_type, f.created_at"
	if pm.Columns() != want {
		t.Errorf("Columns() = %q, want %q", pm.Columns(), want)
	}
}

func TestBuilder_BuildCount_NumbersParameters(t *testing.T) {
	name := "survey"
	b := query.NewBuilder(newTestProjection()).
		WhereEquals("DatasetID", "abc").
		WhereContains("Name", &name).
		WhereStartsWith("ContentType", "image/")

	sql, args := b.BuildCount()

	want := "SELECT COUNT(*) FROM public.data_files f WHERE f.dataset_id = $1 AND f.name ILIKE $2 AND f.content_type LIKE $3"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("len(args) = %d, want 3", len(args))
	}
	if args[1] != "%survey%" {
		t.Errorf("args[1] = %v, want %q", args[1], "%survey%")
	}
	if args[2] != "image/%" {
		t.Errorf("args[2] = %v, want %q", args[2], "image/%")
	}
}

func TestBuilder_IgnoresEmptyConditions(t *testing.T) {
	empty := ""
	b := query.NewBuilder(newTestProjection()).
		WhereEquals("DatasetID", nil).
		WhereContains("Name", nil).
		WhereContains("Name", &empty).
		WhereStartsWith("ContentType", "").
		WhereSearch(nil, "Name")

	sql, args := b.BuildCount()

	if strings.Contains(sql, "WHERE") {
		t.Errorf("BuildCount() = %q, want no WHERE clause", sql)
	}
	if len(args) != 0 {
		t.Errorf("len(args) = %d, want 0", len(args))
	}
}

func TestBuilder_BuildPage_Ordering(t *testing.T) {
	tests := []struct {
		name      string
		sort      []query.SortField
		wantOrder string
	}{
		{"default sort", nil, "ORDER BY f.created_at DESC"},
		{"explicit sort", []query.SortField{{Field: "Name"}}, "ORDER BY f.name ASC"},
		{
			"multiple fields",
			[]query.SortField{{Field: "Name"}, {Field: "CreatedAt", Descending: true}},
			"ORDER BY f.name ASC, f.created_at DESC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := query.NewBuilder(newTestProjection(), query.SortField{Field: "CreatedAt", Descending: true}).
				OrderByFields(tt.sort)

			sql, _ := b.BuildPage(2, 10)

			if !strings.Contains(sql, tt.wantOrder) {
				t.Errorf("BuildPage() = %q, want %q", sql, tt.wantOrder)
			}
			if !strings.HasSuffix(sql, "LIMIT 10 OFFSET 10") {
				t.Errorf("BuildPage() = %q, want LIMIT 10 OFFSET 10", sql)
			}
		})
	}
}

func TestBuilder_WhereSearch(t *testing.T) {
	search := "climate"
	sql, args := query.NewBuilder(newTestProjection()).
		WhereEquals("DatasetID", "abc").
		WhereSearch(&search, "Name", "ContentType").
		BuildCount()

	if !strings.Contains(sql, "(f.name ILIKE $2 OR f.content_type ILIKE $3)") {
		t.Errorf("BuildCount() = %q, want grouped OR search", sql)
	}
	if len(args) != 3 {
		t.Errorf("len(args) = %d, want 3", len(args))
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).BuildSingle("ID", "abc")

	want := "SELECT f.id, f.dataset_id, f.name, f.content_type, f.created_at FROM public.data_files f WHERE f.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("args = %v, want [abc]", args)
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		expr string
		want []query.SortField
	}{
		{"", nil},
		{"title", []query.SortField{{Field: "title"}}},
		{"-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{"title, -created_at,", []query.SortField{{Field: "title"}, {Field: "created_at", Descending: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got := query.ParseSortFields(tt.expr)
			if len(got) != len(tt.want) {
				t.Fatalf("len(ParseSortFields(%q)) = %d, want %d", tt.expr, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %+v, want %+v", tt.expr, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilder_WhereIn(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).
		WhereEquals("DatasetID", "abc").
		WhereIn("ContentType", "image/png", "image/jpeg").
		WhereIn("Name").
		BuildCount()

	if !strings.Contains(sql, "f.content_type IN ($2, $3)") {
		t.Errorf("BuildCount() = %q, want numbered IN list", sql)
	}
	if len(args) != 3 {
		t.Errorf("len(args) = %d, want 3", len(args))
	}
}
