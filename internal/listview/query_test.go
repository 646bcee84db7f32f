package listview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	Name   string
	Status string
	Date   string
	Amount float64
	Misc   any
}

func rowFields() Fields[row] {
	return Fields[row]{
		Search: []func(row) string{
			func(r row) string { return r.Name },
			func(r row) string { return r.Status },
		},
		Status: func(r row) string { return r.Status },
		Date:   func(r row) string { return r.Date },
		Sort: map[string]func(row) any{
			"name":   func(r row) any { return r.Name },
			"date":   func(r row) any { return DateString(r.Date) },
			"amount": func(r row) any { return r.Amount },
			"misc":   func(r row) any { return r.Misc },
		},
	}
}

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestApplyZeroQueryKeepsOrder(t *testing.T) {
	items := []row{{Name: "c"}, {Name: "a"}, {Name: "b"}}
	got := Apply(items, Query{}, rowFields())
	assert.Equal(t, []string{"c", "a", "b"}, names(got))
}

func TestSearchIsCaseInsensitiveOr(t *testing.T) {
	items := []row{
		{Name: "Harbor Pavilion", Status: "active"},
		{Name: "Riverside Loft", Status: "archived"},
		{Name: "Old Harbor Annex", Status: "inactive"},
	}

	got := Apply(items, Query{Search: "HARBOR"}, rowFields())
	assert.Equal(t, []string{"Harbor Pavilion", "Old Harbor Annex"}, names(got))

	// Matches any accessor, here status
	got = Apply(items, Query{Search: "arch"}, rowFields())
	assert.Equal(t, []string{"Riverside Loft"}, names(got))

	// Whitespace-only search selects everything
	got = Apply(items, Query{Search: "   "}, rowFields())
	assert.Len(t, got, 3)
}

func TestStatusFilterMultiSelect(t *testing.T) {
	items := []row{
		{Name: "a", Status: "Active"},
		{Name: "b", Status: "inactive"},
		{Name: "c", Status: "archived"},
	}

	got := Apply(items, Query{Statuses: []string{"active", "ARCHIVED"}}, rowFields())
	assert.Equal(t, []string{"a", "c"}, names(got))
}

func TestDateRangeFilter(t *testing.T) {
	items := []row{
		{Name: "jan", Date: "15/01/2026"},
		{Name: "mar", Date: "02/03/2026"},
		{Name: "jun", Date: "30/06/2026"},
		{Name: "none", Date: ""},
	}

	got := Apply(items, Query{DateFrom: "01/02/2026", DateTo: "31/05/2026"}, rowFields())
	assert.Equal(t, []string{"mar"}, names(got))

	// Open-ended ranges
	got = Apply(items, Query{DateFrom: "01/03/2026"}, rowFields())
	assert.Equal(t, []string{"mar", "jun"}, names(got))
}

func TestSortStringCaseIndependent(t *testing.T) {
	items := []row{{Name: "beta"}, {Name: "Alpha"}, {Name: "gamma"}}

	got := Apply(items, Query{SortKey: "name", SortDir: SortAsc}, rowFields())
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names(got))

	got = Apply(items, Query{SortKey: "name", SortDir: SortDesc}, rowFields())
	assert.Equal(t, []string{"gamma", "beta", "Alpha"}, names(got))
}

func TestSortDateNotLexical(t *testing.T) {
	// Lexically "02/03/2026" < "15/01/2026"; by value it is later
	items := []row{
		{Name: "mar", Date: "02/03/2026"},
		{Name: "jan", Date: "15/01/2026"},
	}

	got := Apply(items, Query{SortKey: "date", SortDir: SortAsc}, rowFields())
	assert.Equal(t, []string{"jan", "mar"}, names(got))
}

func TestSortStableOnTies(t *testing.T) {
	items := []row{
		{Name: "first", Amount: 10},
		{Name: "second", Amount: 10},
		{Name: "third", Amount: 5},
		{Name: "fourth", Amount: 10},
	}

	got := Apply(items, Query{SortKey: "amount", SortDir: SortAsc}, rowFields())
	assert.Equal(t, []string{"third", "first", "second", "fourth"}, names(got))
}

func TestSortNonNumericCoercesToZero(t *testing.T) {
	items := []row{
		{Name: "num", Misc: 7},
		{Name: "junk", Misc: "not a number"},
		{Name: "neg", Misc: -3},
	}

	got := Apply(items, Query{SortKey: "misc", SortDir: SortAsc}, rowFields())
	assert.Equal(t, []string{"neg", "junk", "num"}, names(got))
}

func TestSortUnknownKeyLeavesOrder(t *testing.T) {
	items := []row{{Name: "b"}, {Name: "a"}}
	got := Apply(items, Query{SortKey: "missing", SortDir: SortAsc}, rowFields())
	assert.Equal(t, []string{"b", "a"}, names(got))
}

func TestToggleSortCycles(t *testing.T) {
	var q Query

	q.ToggleSort("name")
	assert.Equal(t, "name", q.SortKey)
	assert.Equal(t, SortAsc, q.SortDir)

	q.ToggleSort("name")
	assert.Equal(t, SortDesc, q.SortDir)

	q.ToggleSort("name")
	assert.Equal(t, SortAsc, q.SortDir)

	// Switching columns resets to ascending
	q.ToggleSort("name")
	q.ToggleSort("amount")
	assert.Equal(t, "amount", q.SortKey)
	assert.Equal(t, SortAsc, q.SortDir)
}

func TestFiltersAndSearchCompose(t *testing.T) {
	items := []row{
		{Name: "Harbor Pavilion", Status: "active", Date: "10/01/2026", Amount: 100},
		{Name: "Harbor Annex", Status: "archived", Date: "20/01/2026", Amount: 50},
		{Name: "Harbor Tower", Status: "active", Date: "05/06/2026", Amount: 75},
		{Name: "Riverside Loft", Status: "active", Date: "12/01/2026", Amount: 60},
	}

	q := Query{
		Search:   "harbor",
		Statuses: []string{"active"},
		DateFrom: "01/01/2026",
		DateTo:   "31/01/2026",
		SortKey:  "amount",
		SortDir:  SortDesc,
	}
	got := Apply(items, q, rowFields())
	assert.Equal(t, []string{"Harbor Pavilion"}, names(got))
}
