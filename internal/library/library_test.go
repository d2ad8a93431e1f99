package library

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ari/clemstats/internal/summary"
)

func TestOverview(t *testing.T) {
	lib, err := NewLibrary(createTestDB(t, fixture), DefaultFilter())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	defer lib.Close()

	c, err := lib.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if c.Songs != 4 || c.Albums != 2 || c.Artists != 2 || c.Genres != 2 {
		t.Errorf("Overview() counts = %d/%d/%d/%d; want 4/2/2/2", c.Songs, c.Albums, c.Artists, c.Genres)
	}
	if want := 1236 * time.Second; c.TotalLength != want {
		t.Errorf("Overview().TotalLength = %v; want %v", c.TotalLength, want)
	}
	if c.LastPlayed == nil || c.LastPlayed.Title != "Money" {
		t.Errorf("Overview().LastPlayed = %+v; want Money", c.LastPlayed)
	}
}

func TestPartition(t *testing.T) {
	lib, err := NewLibrary(createTestDB(t, fixture), DefaultFilter())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	defer lib.Close()

	at := time.Unix(unix(2023, 2, 1), 0)
	p, err := lib.Partition(context.Background(), at)
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}
	if p.Before != 2 || p.After != 1 {
		t.Errorf("Partition() = %d/%d; want 2/1", p.Before, p.After)
	}
	if !p.At.Equal(at) {
		t.Errorf("Partition().At = %v; want %v", p.At, at)
	}
}

func TestMonthlySummary(t *testing.T) {
	lib, err := NewLibrary(createTestDB(t, fixture), DefaultFilter())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	defer lib.Close()

	now := time.Date(2023, time.May, 10, 0, 0, 0, 0, time.UTC)
	months, err := lib.MonthlySummary(context.Background(), now)
	if err != nil {
		t.Fatalf("MonthlySummary() error = %v", err)
	}

	want := []struct {
		month string
		count int64
		secs  int64
	}{
		{"2023-01", 2, 441},
		{"2023-02", 0, 0},
		{"2023-03", 1, 382},
		{"2023-04", 0, 0},
		{"2023-05", 0, 0},
	}
	if len(months) != len(want) {
		t.Fatalf("len(months) = %d; want %d", len(months), len(want))
	}
	for i, w := range want {
		m := months[i]
		if m.Month.String() != w.month || m.PlayCount != w.count || m.TotalDuration != w.secs {
			t.Errorf("months[%d] = %s/%d/%d; want %s/%d/%d", i,
				m.Month, m.PlayCount, m.TotalDuration, w.month, w.count, w.secs)
		}
	}
}

func TestMonthlySummaryLeavesOutLaterMonths(t *testing.T) {
	lib, err := NewLibrary(createTestDB(t, fixture), DefaultFilter())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	defer lib.Close()

	// Money was last played in March.
	now := time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC)
	months, err := lib.MonthlySummary(context.Background(), now)
	if err != nil {
		t.Fatalf("MonthlySummary() error = %v", err)
	}
	if len(months) != 2 {
		t.Fatalf("len(months) = %d; want 2", len(months))
	}
	if got := months[0]; got.Month.String() != "2023-01" || got.PlayCount != 2 {
		t.Errorf("months[0] = %s/%d; want 2023-01/2", got.Month, got.PlayCount)
	}
	if got := months[1]; got.Month.String() != "2023-02" || got.PlayCount != 0 || got.TotalDuration != 0 {
		t.Errorf("months[1] = %s/%d/%d; want 2023-02/0/0", got.Month, got.PlayCount, got.TotalDuration)
	}
}

func TestMonthlySummaryNoPlays(t *testing.T) {
	lib, err := NewLibrary(createTestDB(t, []testSong{{Title: "Unplayed", LastPlayed: -1}}), DefaultFilter())
	if err != nil {
		t.Fatalf("NewLibrary() error = %v", err)
	}
	defer lib.Close()

	_, err = lib.MonthlySummary(context.Background(), time.Now())
	if !errors.Is(err, summary.ErrEmptyInput) {
		t.Errorf("MonthlySummary() error = %v; want ErrEmptyInput", err)
	}
}
