// ABOUTME: Tests for the generic list derivation
// ABOUTME: Covers search, filters, sorting, and pagination edge cases
package table

import (
	"fmt"
	"testing"
	"time"
)

type testRow struct {
	name    string
	status  string
	rank    int64
	created time.Time
}

func (r testRow) SearchText() string { return r.name + " " + r.status }

func (r testRow) FieldValue(dim string) string {
	if dim == "status" {
		return r.status
	}
	return ""
}

func (r testRow) SortValue(key string) (any, bool) {
	switch key {
	case "name":
		return r.name, true
	case "rank":
		return r.rank, true
	case "created_at":
		return r.created, true
	}
	return nil, false
}

func (r testRow) CreatedTime() time.Time { return r.created }

func makeRows(n int) []testRow {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]testRow, n)
	for i := 0; i < n; i++ {
		status := "completed"
		if i < 3 {
			status = "pending"
		}
		rows[i] = testRow{
			name:    fmt.Sprintf("doc-%02d", i),
			status:  status,
			rank:    int64(n - i),
			created: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return rows
}

func TestDeriveDefaults(t *testing.T) {
	rows := makeRows(25)

	result := Derive(rows, Query{}, Criteria{})

	if result.Total != 25 {
		t.Errorf("Expected total 25, got %d", result.Total)
	}
	if len(result.Page) != DefaultPageSize {
		t.Errorf("Expected page of %d, got %d", DefaultPageSize, len(result.Page))
	}
	if result.Page[0].name != "doc-00" {
		t.Errorf("Expected first row doc-00, got %s", result.Page[0].name)
	}
	if len(result.Filtered) != 25 {
		t.Errorf("Expected filtered set of 25, got %d", len(result.Filtered))
	}
}

func TestDerivePagination(t *testing.T) {
	rows := makeRows(25)

	// Page 3 of 10 holds the remainder
	result := Derive(rows, Query{Page: 3, PageSize: 10}, Criteria{})
	if len(result.Page) != 5 {
		t.Errorf("Expected 5 rows on page 3, got %d", len(result.Page))
	}
	if result.Page[0].name != "doc-20" {
		t.Errorf("Expected page 3 to start at doc-20, got %s", result.Page[0].name)
	}

	// Out-of-range pages come back empty, not clamped
	result = Derive(rows, Query{Page: 7, PageSize: 10}, Criteria{})
	if len(result.Page) != 0 {
		t.Errorf("Expected empty page for out-of-range request, got %d rows", len(result.Page))
	}
	if result.Total != 25 {
		t.Errorf("Total should still reflect the filtered set, got %d", result.Total)
	}
}

func TestDeriveStatusFilter(t *testing.T) {
	rows := makeRows(25)

	result := Derive(rows, Query{}, Criteria{
		Fields: map[string][]string{"status": {"pending"}},
	})

	if result.Total != 3 {
		t.Errorf("Expected 3 pending rows, got %d", result.Total)
	}
	for _, row := range result.Page {
		if row.status != "pending" {
			t.Errorf("Filter leaked row with status %s", row.status)
		}
	}
}

func TestDeriveMultiValueFilter(t *testing.T) {
	rows := makeRows(25)

	result := Derive(rows, Query{}, Criteria{
		Fields: map[string][]string{"status": {"pending", "completed"}},
	})

	if result.Total != 25 {
		t.Errorf("Expected all 25 rows when both statuses selected, got %d", result.Total)
	}
}

func TestDeriveSearch(t *testing.T) {
	rows := makeRows(25)

	result := Derive(rows, Query{Search: "DOC-07"}, Criteria{})
	if result.Total != 1 {
		t.Fatalf("Expected 1 match for case-insensitive search, got %d", result.Total)
	}
	if result.Page[0].name != "doc-07" {
		t.Errorf("Expected doc-07, got %s", result.Page[0].name)
	}

	// Whitespace-only search is a no-op
	result = Derive(rows, Query{Search: "   "}, Criteria{})
	if result.Total != 25 {
		t.Errorf("Blank search should match everything, got %d", result.Total)
	}
}

func TestDeriveSort(t *testing.T) {
	rows := makeRows(5)

	result := Derive(rows, Query{Sort: Sort{Key: "name", Order: OrderDesc}}, Criteria{})
	if result.Page[0].name != "doc-04" {
		t.Errorf("Expected doc-04 first in descending name order, got %s", result.Page[0].name)
	}

	result = Derive(rows, Query{Sort: Sort{Key: "rank", Order: OrderAsc}}, Criteria{})
	if result.Page[0].rank != 1 {
		t.Errorf("Expected rank 1 first in ascending order, got %d", result.Page[0].rank)
	}

	result = Derive(rows, Query{Sort: Sort{Key: "created_at", Order: OrderDesc}}, Criteria{})
	if result.Page[0].name != "doc-04" {
		t.Errorf("Expected newest row first, got %s", result.Page[0].name)
	}

	// Unknown sort keys leave the original order untouched
	result = Derive(rows, Query{Sort: Sort{Key: "bogus"}}, Criteria{})
	if result.Page[0].name != "doc-00" {
		t.Errorf("Unknown sort key should preserve order, got %s first", result.Page[0].name)
	}
}

func TestDeriveDateRange(t *testing.T) {
	rows := makeRows(25)

	from := rows[10].created
	to := rows[14].created

	result := Derive(rows, Query{}, Criteria{From: &from, To: &to})
	if result.Total != 5 {
		t.Errorf("Expected 5 rows in the date window, got %d", result.Total)
	}
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	rows := makeRows(5)

	Derive(rows, Query{Sort: Sort{Key: "name", Order: OrderDesc}}, Criteria{})

	if rows[0].name != "doc-00" {
		t.Errorf("Derive mutated the caller's slice: %s first", rows[0].name)
	}
}

func TestDeriveIdempotent(t *testing.T) {
	rows := makeRows(12)
	q := Query{Page: 2, PageSize: 5, Sort: Sort{Key: "name", Order: OrderAsc}}

	first := Derive(rows, q, Criteria{})
	second := Derive(rows, q, Criteria{})

	if len(first.Page) != len(second.Page) {
		t.Fatalf("Repeated derivation disagreed on page size: %d vs %d", len(first.Page), len(second.Page))
	}
	for i := range first.Page {
		if first.Page[i].name != second.Page[i].name {
			t.Errorf("Row %d differs between derivations: %s vs %s", i, first.Page[i].name, second.Page[i].name)
		}
	}
}

func TestCriteriaEmpty(t *testing.T) {
	if !(Criteria{}).Empty() {
		t.Error("Zero criteria should report empty")
	}

	c := Criteria{Fields: map[string][]string{"status": {"active"}}}
	if c.Empty() {
		t.Error("Criteria with a field filter should not report empty")
	}

	now := time.Now()
	if (Criteria{From: &now}).Empty() {
		t.Error("Criteria with a date bound should not report empty")
	}
}
