package api

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/lox/inmetdash/internal/dashboard"
	"github.com/lox/inmetdash/internal/models"
)

// PageSize is the fixed number of table rows per page.
const PageSize = 15

// TableQuery is the display-layer state of the data table. Sorting and
// filtering never touch the pipeline output, only the page shown.
type TableQuery struct {
	Selection models.Selection
	Page      int
	Sort      string
	Desc      bool
	FilterCol string
	Filter    string
}

func parseTableQuery(v url.Values) TableQuery {
	q := TableQuery{
		Selection: models.Selection(v.Get("mes")),
		Sort:      v.Get("sort"),
		FilterCol: v.Get("col"),
		Filter:    strings.TrimSpace(v.Get("q")),
		Page:      1,
	}
	q.Desc, _ = strconv.ParseBool(v.Get("desc"))
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p > 0 {
		q.Page = p
	}
	return q
}

// Values encodes q back into query parameters, overriding the page.
func (q TableQuery) Values(page int) url.Values {
	v := url.Values{}
	v.Set("mes", q.Selection.String())
	v.Set("page", strconv.Itoa(page))
	if q.Sort != "" {
		v.Set("sort", q.Sort)
		if q.Desc {
			v.Set("desc", "true")
		}
	}
	if q.FilterCol != "" && q.Filter != "" {
		v.Set("col", q.FilterCol)
		v.Set("q", q.Filter)
	}
	return v
}

// URL is the table partial URL for the given page.
func (q TableQuery) URL(page int) string {
	return "/partials/table?" + q.Values(page).Encode()
}

// PaginationItem is one entry in the pagination bar: either a page number or an ellipsis.
type PaginationItem struct {
	Page     int
	Ellipsis bool
	Current  bool
	URL      string
}

// ColumnView is a table header cell.
type ColumnView struct {
	Name   string
	Sorted bool
	Desc   bool
	// SortURL toggles the sort on this column.
	SortURL string
}

// TableView is the view model for the table partial.
type TableView struct {
	Columns    []ColumnView
	Rows       [][]string
	Total      int
	Filtered   int
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	PageItems  []PaginationItem
	Query      TableQuery
}

func buildTableView(t dashboard.Table, q TableQuery) TableView {
	colIdx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		colIdx[c] = i
	}

	rows := t.Rows
	if i, ok := colIdx[q.FilterCol]; ok && q.Filter != "" {
		pred := parseFilter(q.Filter)
		filtered := make([][]string, 0, len(rows))
		for _, row := range rows {
			if pred(row[i]) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	if i, ok := colIdx[q.Sort]; ok {
		rows = append([][]string(nil), rows...)
		sort.SliceStable(rows, func(a, b int) bool {
			if q.Desc {
				return lessCell(rows[b][i], rows[a][i])
			}
			return lessCell(rows[a][i], rows[b][i])
		})
	}

	pages := (len(rows) + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	page := min(max(q.Page, 1), pages)
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(rows))

	view := TableView{
		Rows:       rows[start:end],
		Total:      len(t.Rows),
		Filtered:   len(rows),
		Page:       page,
		TotalPages: pages,
		HasPrev:    page > 1,
		HasNext:    page < pages,
		Query:      q,
	}
	if view.HasPrev {
		view.PrevURL = q.URL(page - 1)
	}
	if view.HasNext {
		view.NextURL = q.URL(page + 1)
	}

	for _, c := range t.Columns {
		cv := ColumnView{Name: c, Sorted: c == q.Sort, Desc: c == q.Sort && q.Desc}
		next := q
		next.Sort = c
		next.Desc = cv.Sorted && !q.Desc
		cv.SortURL = next.URL(1)
		view.Columns = append(view.Columns, cv)
	}

	for _, item := range buildPageItems(pages, page) {
		if !item.Ellipsis {
			item.Current = item.Page == page
			item.URL = q.URL(item.Page)
		}
		view.PageItems = append(view.PageItems, item)
	}
	return view
}

// buildPageItems returns page numbers and ellipsis for the pagination bar.
func buildPageItems(totalPages, currentPage int) []PaginationItem {
	if totalPages <= 0 {
		return nil
	}
	const window = 2
	show := map[int]bool{1: true, totalPages: true}
	for p := currentPage - window; p <= currentPage+window; p++ {
		if p >= 1 && p <= totalPages {
			show[p] = true
		}
	}
	var items []PaginationItem
	prev := 0
	for p := 1; p <= totalPages; p++ {
		if !show[p] {
			continue
		}
		if prev != 0 && p > prev+1 {
			items = append(items, PaginationItem{Ellipsis: true})
		}
		items = append(items, PaginationItem{Page: p})
		prev = p
	}
	return items
}

// lessCell orders numerically when both cells are numbers, otherwise by
// text. Empty cells sort last.
func lessCell(a, b string) bool {
	if a == "" || b == "" {
		return a != "" && b == ""
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return fa < fb
	}
	return a < b
}

var filterOps = []string{">=", "<=", "!=", ">", "<", "="}

// parseFilter turns a filter expression into a cell predicate. A leading
// comparison operator compares numerically when both sides are numbers;
// anything else is a case-insensitive substring match.
func parseFilter(expr string) func(cell string) bool {
	for _, op := range filterOps {
		if !strings.HasPrefix(expr, op) {
			continue
		}
		operand := strings.TrimSpace(strings.TrimPrefix(expr, op))
		want, err := strconv.ParseFloat(strings.Replace(operand, ",", ".", 1), 64)
		if err != nil {
			return func(cell string) bool {
				switch op {
				case "=":
					return cell == operand
				case "!=":
					return cell != operand
				}
				return false
			}
		}
		return func(cell string) bool {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return false
			}
			switch op {
			case ">=":
				return v >= want
			case "<=":
				return v <= want
			case "!=":
				return v != want
			case ">":
				return v > want
			case "<":
				return v < want
			default:
				return v == want
			}
		}
	}
	needle := strings.ToLower(expr)
	return func(cell string) bool {
		return strings.Contains(strings.ToLower(cell), needle)
	}
}
