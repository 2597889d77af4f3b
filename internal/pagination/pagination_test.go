package pagination

import (
	"testing"
)

func TestPageRequestDefaults(t *testing.T) {
	var p PageRequest
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 {
		t.Errorf("expected 1/20, got %d/%d", p.Page, p.PageSize)
	}
	if p.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[int](nil, 1, 10, 25)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil {
		t.Error("nil data should become an empty slice")
	}
}

func TestWindow(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name  string
		req   PageRequest
		want  []int
		pages int
	}{
		{"first page", PageRequest{Page: 1, PageSize: 2}, []int{1, 2}, 3},
		{"last partial page", PageRequest{Page: 3, PageSize: 2}, []int{5}, 3},
		{"past the end", PageRequest{Page: 9, PageSize: 2}, []int{}, 3},
		{"defaults", PageRequest{}, []int{1, 2, 3, 4, 5}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(items, tt.req)
			if len(got.Data) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got.Data)
			}
			for i := range tt.want {
				if got.Data[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, got.Data)
				}
			}
			if got.TotalItems != 5 || got.TotalPages != tt.pages {
				t.Errorf("unexpected totals %d/%d", got.TotalItems, got.TotalPages)
			}
		})
	}
}
