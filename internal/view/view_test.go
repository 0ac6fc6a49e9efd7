package view

import (
	"fmt"
	"math"
	"testing"

	"github.com/five82/tabula/internal/table"
)

func person(id, name string, age table.Value) table.Row {
	return table.NewRow(id, table.FieldsOf(table.F("name", table.Str(name)), table.F("age", age)))
}

func ids(rows []table.Row) string {
	out := ""
	for i, r := range rows {
		if i > 0 {
			out += ","
		}
		out += r.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	rows := []table.Row{
		person("1", "Alice", table.Num(29)),
		person("2", "Bob", table.Num(34)),
		person("3", "Carl", table.Null()),
	}
	tests := []struct {
		query string
		want  string
	}{
		{"", "1,2,3"},
		{"ali", "1"},
		{"ALI", "1"},
		{"3", "2"},
		{"zzz", ""},
		{"b", "2"},
	}
	for _, tt := range tests {
		if got := ids(Filter(rows, tt.query)); got != tt.want {
			t.Errorf("Filter(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestFilterIgnoresIDs(t *testing.T) {
	rows := []table.Row{person("abc-123", "Ann", table.Num(1))}
	if got := Filter(rows, "abc"); len(got) != 0 {
		t.Fatalf("identifier matched search: %v", ids(got))
	}
}

func TestSortNumericAndStable(t *testing.T) {
	rows := []table.Row{
		person("a", "A", table.Num(30)),
		person("b", "B", table.Num(9)),
		person("c", "C", table.Num(30)),
		person("d", "D", table.Null()),
	}
	if got := ids(Sort(rows, "age", Asc)); got != "d,b,a,c" {
		t.Fatalf("asc = %s, want d,b,a,c", got)
	}
	if got := ids(Sort(rows, "age", Desc)); got != "a,c,b,d" {
		t.Fatalf("desc = %s, want a,c,b,d", got)
	}
	if ids(rows) != "a,b,c,d" {
		t.Fatal("Sort must not reorder its input")
	}
}

func TestCompareMixedKinds(t *testing.T) {
	ordered := []table.Value{
		table.Null(),
		table.Num(-1),
		table.Num(2),
		table.Bool(false),
		table.Bool(true),
		table.Str("Zed"),
		table.Str("apple"),
	}
	for i := range ordered {
		for j := range ordered {
			want := cmpInt(i, j)
			if ordered[i].Equal(ordered[j]) {
				want = 0
			}
			if got := Compare(ordered[i], ordered[j]); got != want {
				t.Errorf("Compare(%v, %v) = %d, want %d", ordered[i], ordered[j], got, want)
			}
		}
	}
	if Compare(table.Null(), table.Str("")) != 0 {
		t.Fatal("null and empty string should tie")
	}
}

func TestToggleSort(t *testing.T) {
	var p Params
	p = p.ToggleSort("age")
	if p.SortKey != "age" || p.SortDir != Asc {
		t.Fatalf("first toggle = %+v", p)
	}
	p = p.ToggleSort("age")
	if p.SortDir != Desc {
		t.Fatalf("second toggle = %+v", p)
	}
	p = p.ToggleSort("name")
	if p.SortKey != "name" || p.SortDir != Asc {
		t.Fatalf("new key = %+v", p)
	}
}

func TestPaginate(t *testing.T) {
	rows := make([]table.Row, 25)
	for i := range rows {
		rows[i] = person(fmt.Sprint(i), "n", table.Num(float64(i)))
	}
	tests := []struct {
		page      int
		wantLen   int
		wantFirst string
	}{
		{0, 10, "0"},
		{1, 10, "10"},
		{2, 5, "20"},
		{3, 0, ""},
		{-1, 0, ""},
		{math.MaxInt/PageSize + 1, 0, ""},
		{math.MaxInt, 0, ""},
	}
	for _, tt := range tests {
		got := Paginate(rows, tt.page)
		if len(got) != tt.wantLen {
			t.Errorf("page %d len = %d, want %d", tt.page, len(got), tt.wantLen)
			continue
		}
		if tt.wantLen > 0 && got[0].ID != tt.wantFirst {
			t.Errorf("page %d first = %s, want %s", tt.page, got[0].ID, tt.wantFirst)
		}
	}

	if PageCount(0) != 1 || PageCount(10) != 1 || PageCount(11) != 2 {
		t.Fatal("PageCount mismatch")
	}
	if ClampPage(9, 25) != 2 || ClampPage(-3, 25) != 0 || ClampPage(4, 0) != 0 {
		t.Fatal("ClampPage mismatch")
	}
}

func TestCompute(t *testing.T) {
	cols := []table.Column{
		{Key: "name", Label: "Name", Visible: true},
		{Key: "age", Label: "Age", Visible: false},
	}
	var rows []table.Row
	for i := 0; i < 15; i++ {
		rows = append(rows, person(fmt.Sprint(i), fmt.Sprintf("user%d", i), table.Num(float64(100-i))))
	}

	res := Compute(cols, rows, Params{Search: "user1", SortKey: "age", SortDir: Asc})
	// user1, user10..user14 match.
	if res.Total != 6 {
		t.Fatalf("total = %d, want 6", res.Total)
	}
	if res.Rows[0].ID != "14" || res.Rows[len(res.Rows)-1].ID != "1" {
		t.Fatalf("order = %s", ids(res.Rows))
	}
	if len(res.Columns) != 1 || res.Columns[0].Key != "name" {
		t.Fatalf("columns = %+v", res.Columns)
	}

	res = Compute(cols, rows, Params{Page: 1})
	if res.Total != 15 || len(res.Rows) != 5 || res.Pages() != 2 {
		t.Fatalf("page 1 = total %d len %d", res.Total, len(res.Rows))
	}
}

func TestFilterTrimsQuery(t *testing.T) {
	rows := []table.Row{person("1", "Ann Lee", table.Num(1))}
	if got := Filter(rows, "  ann "); len(got) != 1 {
		t.Fatalf("padded query should match")
	}
	if got := Filter(rows, "   "); len(got) != 1 {
		t.Fatalf("blank query should keep all rows")
	}
	if !Matches(rows[0], "LEE") || Matches(rows[0], "bob") {
		t.Fatal("Matches mismatch")
	}
}

func TestSortAscDescAscRestoresOrder(t *testing.T) {
	rows := []table.Row{
		person("a", "Cy", table.Num(1)),
		person("b", "Al", table.Num(1)),
		person("c", "Bo", table.Num(0)),
		person("d", "Di", table.Null()),
		person("e", "Ed", table.Str("n/a")),
	}
	for _, key := range []string{"age", "name"} {
		first := Sort(rows, key, Asc)
		flipped := Sort(first, key, Desc)
		again := Sort(flipped, key, Asc)
		if ids(again) != ids(first) {
			t.Errorf("%s: asc/desc/asc = %s, want %s", key, ids(again), ids(first))
		}
	}
}

func TestPagesReconstructSequence(t *testing.T) {
	var rows []table.Row
	for i := 0; i < 47; i++ {
		name := fmt.Sprintf("user%d", i)
		if i%3 == 0 {
			name = fmt.Sprintf("admin%d", i)
		}
		rows = append(rows, person(fmt.Sprint(i), name, table.Num(float64(i%7))))
	}

	for _, p := range []Params{
		{},
		{Search: "user"},
		{SortKey: "age", SortDir: Desc},
		{Search: "admin", SortKey: "age"},
		{Search: "nobody"},
	} {
		want := Filter(rows, p.Search)
		if p.Sorted() {
			want = Sort(want, p.SortKey, p.SortDir)
		}

		var got []table.Row
		for page := 0; page < PageCount(len(want)); page++ {
			p.Page = page
			res := Compute(nil, rows, p)
			if page < PageCount(len(want))-1 && len(res.Rows) != PageSize {
				t.Fatalf("%+v: page %d has %d rows", p, page, len(res.Rows))
			}
			got = append(got, res.Rows...)
		}
		if ids(got) != ids(want) {
			t.Errorf("%+v: pages = %s, want %s", p, ids(got), ids(want))
		}
	}
}
