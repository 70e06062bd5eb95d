package api

import (
	"net/url"
	"strconv"
	"testing"
	"testing/fstest"

	"github.com/lox/inmetdash/internal/dashboard"
)

func TestBuildPageItems(t *testing.T) {
	tests := []struct {
		total, current int
		want           string
	}{
		{1, 1, "1"},
		{5, 3, "1 2 3 4 5"},
		{10, 1, "1 2 3 … 10"},
		{10, 5, "1 … 3 4 5 6 7 … 10"},
		{10, 4, "1 2 3 4 5 6 … 10"},
		{10, 10, "1 … 8 9 10"},
		{0, 1, ""},
	}
	for _, tt := range tests {
		got := ""
		for i, item := range buildPageItems(tt.total, tt.current) {
			if i > 0 {
				got += " "
			}
			if item.Ellipsis {
				got += "…"
			} else {
				got += strconv.Itoa(item.Page)
			}
		}
		if got != tt.want {
			t.Errorf("buildPageItems(%d, %d) = %q, want %q", tt.total, tt.current, got, tt.want)
		}
	}
}

func TestLessCell(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"2", "10", true},
		{"10", "2", false},
		{"-1.5", "0", true},
		{"abc", "abd", true},
		{"", "1", false},
		{"1", "", true},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := lessCell(tt.a, tt.b); got != tt.want {
			t.Errorf("lessCell(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		expr string
		cell string
		want bool
	}{
		{">= 3", "3", true},
		{">= 3", "2.9", false},
		{"> 3", "3", false},
		{"< 3,5", "3.4", true},
		{"<= 3", "", false},
		{"= 90", "90", true},
		{"!= 90", "90", false},
		{"!= 90", "91", true},
		{"= Janeiro", "Janeiro", true},
		{"!= Janeiro", "Março", true},
		{"> abc", "zzz", false},
		{"jan", "Janeiro", true},
		{"mar", "Janeiro", false},
	}
	for _, tt := range tests {
		if got := parseFilter(tt.expr)(tt.cell); got != tt.want {
			t.Errorf("parseFilter(%q)(%q) = %v, want %v", tt.expr, tt.cell, got, tt.want)
		}
	}
}

func numberTable(n int) dashboard.Table {
	tbl := dashboard.Table{Columns: []string{"n", "parity"}}
	for i := 1; i <= n; i++ {
		parity := "odd"
		if i%2 == 0 {
			parity = "even"
		}
		tbl.Rows = append(tbl.Rows, []string{strconv.Itoa(i), parity})
	}
	return tbl
}

func TestBuildTableView(t *testing.T) {
	tbl := numberTable(40)

	v := buildTableView(tbl, TableQuery{Page: 1})
	if len(v.Rows) != PageSize || v.TotalPages != 3 {
		t.Fatalf("rows=%d pages=%d, want %d/3", len(v.Rows), v.TotalPages, PageSize)
	}
	if v.HasPrev || !v.HasNext {
		t.Errorf("HasPrev=%v HasNext=%v on first page", v.HasPrev, v.HasNext)
	}

	v = buildTableView(tbl, TableQuery{Page: 3})
	if len(v.Rows) != 10 || v.Rows[0][0] != "31" {
		t.Errorf("last page rows=%d first=%s", len(v.Rows), v.Rows[0][0])
	}

	v = buildTableView(tbl, TableQuery{Page: 1, Sort: "n", Desc: true})
	if v.Rows[0][0] != "40" || v.Rows[1][0] != "39" {
		t.Errorf("desc sort starts %s,%s", v.Rows[0][0], v.Rows[1][0])
	}
	if !v.Columns[0].Sorted || !v.Columns[0].Desc {
		t.Errorf("column state = %+v", v.Columns[0])
	}
	next, err := url.Parse(v.Columns[0].SortURL)
	if err != nil {
		t.Fatal(err)
	}
	if next.Query().Get("desc") != "" {
		t.Errorf("clicking a desc column should sort ascending, got %s", v.Columns[0].SortURL)
	}

	v = buildTableView(tbl, TableQuery{Page: 1, FilterCol: "parity", Filter: "= even", Sort: "n"})
	if v.Filtered != 20 || v.Total != 40 || v.TotalPages != 2 {
		t.Errorf("filtered=%d total=%d pages=%d", v.Filtered, v.Total, v.TotalPages)
	}
	if v.Rows[0][0] != "2" {
		t.Errorf("first even row = %s", v.Rows[0][0])
	}

	v = buildTableView(dashboard.Table{Columns: []string{"n"}}, TableQuery{Page: 4})
	if v.Page != 1 || v.TotalPages != 1 || len(v.Rows) != 0 {
		t.Errorf("empty table view = %+v", v)
	}
}

func TestBuildTableView_DoesNotMutateInput(t *testing.T) {
	tbl := numberTable(5)
	buildTableView(tbl, TableQuery{Sort: "n", Desc: true})
	if tbl.Rows[0][0] != "1" {
		t.Errorf("input rows reordered: first = %s", tbl.Rows[0][0])
	}
}

func TestParseTableQuery(t *testing.T) {
	v, _ := url.ParseQuery("mes=Janeiro&page=3&sort=n&desc=true&col=parity&q=+odd+")
	q := parseTableQuery(v)
	if q.Selection != "Janeiro" || q.Page != 3 || q.Sort != "n" || !q.Desc || q.FilterCol != "parity" || q.Filter != "odd" {
		t.Errorf("query = %+v", q)
	}
	if got := parseTableQuery(url.Values{"page": {"-2"}}).Page; got != 1 {
		t.Errorf("negative page parsed as %d", got)
	}
	if got := q.Values(1).Get("page"); got != "1" {
		t.Errorf("Values(1) page = %s", got)
	}
}

func TestParseTemplates(t *testing.T) {
	if _, err := parseTemplates(templateFS); err != nil {
		t.Fatalf("embedded templates: %v", err)
	}

	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"no templates", fstest.MapFS{}},
		{"syntax error", fstest.MapFS{
			"templates/index.html":              {Data: []byte(`{{.Title`)},
			"templates/partials/dashboard.html": {Data: []byte(`ok`)},
			"templates/partials/table.html":     {Data: []byte(`ok`)},
		}},
		{"missing partial", fstest.MapFS{
			"templates/index.html":              {Data: []byte(`{{.Title}}`)},
			"templates/partials/dashboard.html": {Data: []byte(`ok`)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTemplates(tt.fsys); err == nil {
				t.Error("expected error")
			}
		})
	}
}
