package paging

import (
	"strconv"
	"testing"
)

func TestPaginateWalkVisitsEveryItemOnce(t *testing.T) {
	items := make([]int, 0, 17)
	for i := 0; i < 17; i++ {
		items = append(items, i)
	}

	var walked []int
	var cursor *string
	pages := 0
	for {
		page := Paginate(items, cursor, 5)
		walked = append(walked, page.Items...)
		pages++
		if pages > 10 {
			t.Fatalf("pagination did not terminate")
		}
		if page.NextCursor == nil {
			break
		}
		cursor = page.NextCursor
	}

	if pages != 4 {
		t.Fatalf("expected 4 pages for 17 items at limit 5, got %d", pages)
	}
	if len(walked) != len(items) {
		t.Fatalf("expected %d items walked, got %d", len(items), len(walked))
	}
	for i, v := range walked {
		if v != items[i] {
			t.Fatalf("item %d out of order: got %d want %d", i, v, items[i])
		}
	}
}

func TestPaginateSinglePageWhenLimitCoversAll(t *testing.T) {
	items := []string{"a", "b", "c"}
	page := Paginate(items, nil, 3)
	if page.NextCursor != nil {
		t.Fatalf("expected nil next cursor, got %q", *page.NextCursor)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected full list back, got %d items", len(page.Items))
	}

	page = Paginate(items, nil, 10)
	if page.NextCursor != nil || len(page.Items) != 3 {
		t.Fatalf("oversized limit should return one full page, got %+v", page)
	}
}

func TestPaginateDefaultsOnBadCursorAndLimit(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	bad := "not-a-number"
	page := Paginate(items, &bad, 0)
	if len(page.Items) != DefaultLimit {
		t.Fatalf("expected default limit %d from unparsable cursor, got %d", DefaultLimit, len(page.Items))
	}
	if page.Items[0] != 1 {
		t.Fatalf("unparsable cursor should mean offset 0, first item %d", page.Items[0])
	}

	neg := "-3"
	page = Paginate(items, &neg, 4)
	if page.Items[0] != 1 {
		t.Fatalf("negative cursor should mean offset 0, first item %d", page.Items[0])
	}
}

func TestPaginatePastEndIsEmpty(t *testing.T) {
	items := []int{1, 2, 3}
	far := strconv.Itoa(100)
	page := Paginate(items, &far, 5)
	if len(page.Items) != 0 || page.NextCursor != nil {
		t.Fatalf("expected empty terminal page, got %+v", page)
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	page := Paginate([]int{}, nil, 5)
	if len(page.Items) != 0 || page.NextCursor != nil {
		t.Fatalf("expected empty page for empty input, got %+v", page)
	}
}
