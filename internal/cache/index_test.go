package cache

import (
	"context"
	"testing"
	"time"
)

// TestIndexRecordAndQuery verifies the fetch log round trip.
func TestIndexRecordAndQuery(t *testing.T) {
	t.Parallel()

	idx, err := OpenIndex(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	ctx := context.Background()

	if e, err := idx.Latest(ctx, "https://projecteuler.net/problem=1"); err != nil || e != nil {
		t.Fatalf("expected empty index, got entry=%v err=%v", e, err)
	}

	fetchedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	err = idx.Record(ctx, Entry{
		URL:           "https://projecteuler.net/problem=1",
		LocalPath:     "/cache/problem=1",
		StatusCode:    200,
		ContentLength: 1234,
		FetchedAt:     fetchedAt,
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	e, err := idx.Latest(ctx, "https://projecteuler.net/problem=1")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if e == nil {
		t.Fatal("expected an entry")
	}
	if e.StatusCode != 200 || e.ContentLength != 1234 {
		t.Errorf("entry = %+v", e)
	}
	if !e.FetchedAt.Equal(fetchedAt) {
		t.Errorf("fetched_at = %v, want %v", e.FetchedAt, fetchedAt)
	}
}

// TestIndexLatestReturnsNewest verifies that repeated fetches of one URL
// keep history and Latest returns the newest row.
func TestIndexLatestReturnsNewest(t *testing.T) {
	t.Parallel()

	idx, err := OpenIndex(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	ctx := context.Background()
	url := "https://projecteuler.net/problem=2"

	for i, size := range []int64{10, 20} {
		err := idx.Record(ctx, Entry{
			URL:           url,
			LocalPath:     "/cache/problem=2",
			StatusCode:    200,
			ContentLength: size,
			FetchedAt:     time.Date(2026, 8, 1+i, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	e, err := idx.Latest(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	if e.ContentLength != 20 {
		t.Errorf("expected newest entry (size 20), got %+v", e)
	}

	n, err := idx.Count(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows, got %d", n)
	}
}
