package lonja

import (
	"fmt"
	"testing"
)

func makeEntries(n int) []ContentWithType {
	out := make([]ContentWithType, n)
	for i := range out {
		out[i] = ContentWithType{
			ContentEntry: ContentEntry{Slug: fmt.Sprintf("entry-%d", i)},
			Type:         TypeRecipe,
		}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, pageSize, want int
	}{
		{0, 10, 1}, // at least one page even when empty
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 20, 2},
		{25, 5, 5},
		{7, 0, 1}, // degenerate page size
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.pageSize); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.pageSize, got, tt.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{0, 3, 1},
		{-5, 3, 1},
		{1, 3, 1},
		{3, 3, 3},
		{4, 3, 3},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

func TestPaginateWindow(t *testing.T) {
	entries := makeEntries(25)

	p1 := Paginate(entries, 1, 10)
	if len(p1.Items) != 10 || p1.Items[0].Slug != "entry-0" || p1.TotalPages != 3 {
		t.Errorf("page 1: %d items, first %q, total %d", len(p1.Items), p1.Items[0].Slug, p1.TotalPages)
	}

	p3 := Paginate(entries, 3, 10)
	if len(p3.Items) != 5 || p3.Items[0].Slug != "entry-20" {
		t.Errorf("page 3: %d items, first %q", len(p3.Items), p3.Items[0].Slug)
	}
}

func TestPaginateReconstructs(t *testing.T) {
	entries := makeEntries(23)
	pageSize := 7

	var rebuilt []ContentWithType
	total := TotalPages(len(entries), pageSize)
	for page := 1; page <= total; page++ {
		rebuilt = append(rebuilt, Paginate(entries, page, pageSize).Items...)
	}
	if len(rebuilt) != len(entries) {
		t.Fatalf("reconstructed %d entries, want %d", len(rebuilt), len(entries))
	}
	for i := range entries {
		if rebuilt[i].Slug != entries[i].Slug {
			t.Errorf("rebuilt[%d] = %q, want %q", i, rebuilt[i].Slug, entries[i].Slug)
		}
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	entries := makeEntries(5)

	got := Paginate(entries, 99, 10)
	if got.Page != 1 || len(got.Items) != 5 {
		t.Errorf("out-of-range page should clamp: page=%d items=%d", got.Page, len(got.Items))
	}

	empty := Paginate(nil, 2, 10)
	if empty.Page != 1 || empty.TotalPages != 1 || len(empty.Items) != 0 {
		t.Errorf("empty set: page=%d total=%d items=%d", empty.Page, empty.TotalPages, len(empty.Items))
	}
}
