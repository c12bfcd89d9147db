package content

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC)
}

func TestSortedBy_Date_AscendingIsNonDecreasing(t *testing.T) {
	items := []Item{
		{Path: "/b", Body: Body{Date: day(3)}},
		{Path: "/a", Body: Body{Date: day(1)}},
		{Path: "/c", Body: Body{Date: day(2)}},
	}

	got := SortedBy(items, ByDate, Ascending)

	for i := 1; i < len(got); i++ {
		if got[i].Body.Date.Before(got[i-1].Body.Date) {
			t.Fatalf("dates decrease at index %d: %v after %v", i, got[i].Body.Date, got[i-1].Body.Date)
		}
	}
	if got[0].Path != "/a" || got[2].Path != "/b" {
		t.Errorf("unexpected order: %v", []string{got[0].Path, got[1].Path, got[2].Path})
	}
}

func TestSortedBy_TiesKeepOriginalOrderInBothDirections(t *testing.T) {
	items := []Item{
		{Path: "/first", Body: Body{Date: day(1)}},
		{Path: "/second", Body: Body{Date: day(1)}},
		{Path: "/third", Body: Body{Date: day(1)}},
	}

	for _, order := range []Order{Ascending, Descending} {
		got := SortedBy(items, ByDate, order)
		if got[0].Path != "/first" || got[1].Path != "/second" || got[2].Path != "/third" {
			t.Errorf("order %v broke tie stability: %v", order, []string{got[0].Path, got[1].Path, got[2].Path})
		}
	}
}

func TestSortedBy_DoesNotMutateInput(t *testing.T) {
	items := []Item{
		{Path: "/b", Body: Body{Date: day(2)}},
		{Path: "/a", Body: Body{Date: day(1)}},
	}

	_ = SortedBy(items, ByDate, Ascending)

	if items[0].Path != "/b" {
		t.Errorf("input slice was reordered: first is %q", items[0].Path)
	}
}

func TestSortedBy_Title_Descending(t *testing.T) {
	items := []Item{
		{Path: "/1", Body: Body{Title: "Alpha"}},
		{Path: "/2", Body: Body{Title: "Gamma"}},
		{Path: "/3", Body: Body{Title: "Beta"}},
	}

	got := SortedBy(items, ByTitle, Descending)

	want := []string{"Gamma", "Beta", "Alpha"}
	for i, w := range want {
		if got[i].Body.Title != w {
			t.Errorf("title[%d] = %q, want %q", i, got[i].Body.Title, w)
		}
	}
}
