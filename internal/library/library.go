package library

import (
	"context"
	"fmt"
	"time"

	"github.com/ari/clemstats/internal/summary"
	"github.com/sirupsen/logrus"
)

// Library answers the statistics questions over a Clementine database
type Library struct {
	db *DB
}

// NewLibrary opens the database at dbPath read-only
func NewLibrary(dbPath string, filter Filter) (*Library, error) {
	db, err := Open(dbPath, filter)
	if err != nil {
		return nil, err
	}
	return &Library{db: db}, nil
}

// Close closes the database connection
func (l *Library) Close() error {
	return l.db.Close()
}

// Overview returns the aggregate counts and the last played song
func (l *Library) Overview(ctx context.Context) (*Collection, error) {
	songs, err := l.db.CountSongs(ctx)
	if err != nil {
		return nil, err
	}

	albums, err := l.db.CountDistinct(ctx, "album")
	if err != nil {
		return nil, err
	}

	artists, err := l.db.CountDistinct(ctx, "artist")
	if err != nil {
		return nil, err
	}

	genres, err := l.db.CountDistinct(ctx, "genre")
	if err != nil {
		return nil, err
	}

	totalLength, err := l.db.GetTotalLength(ctx)
	if err != nil {
		return nil, err
	}

	lastPlayed, err := l.db.GetLastPlayed(ctx)
	if err != nil {
		return nil, err
	}

	return &Collection{
		Songs:       songs,
		Albums:      albums,
		Artists:     artists,
		Genres:      genres,
		TotalLength: totalLength,
		LastPlayed:  lastPlayed,
	}, nil
}

// Partition splits the played songs around at
func (l *Library) Partition(ctx context.Context, at time.Time) (*Partition, error) {
	before, err := l.db.CountPlayedBefore(ctx, at)
	if err != nil {
		return nil, err
	}

	after, err := l.db.CountPlayedSince(ctx, at)
	if err != nil {
		return nil, err
	}

	return &Partition{At: at, Before: before, After: after}, nil
}

// PlayedBetween returns the songs last played in [start, end]
func (l *Library) PlayedBetween(ctx context.Context, start, end time.Time) ([]PlayedSong, error) {
	return l.db.GetPlayedBetween(ctx, start, end)
}

// MonthlySummary returns one record per month from the first month with a
// play through the month containing now. Months are UTC months, matching
// the grouping done by the query.
func (l *Library) MonthlySummary(ctx context.Context, now time.Time) ([]summary.MonthlyRecord, error) {
	sparse, err := l.db.GetMonthlyPlays(ctx)
	if err != nil {
		return nil, err
	}

	current := summary.MonthOf(now.UTC())
	for _, r := range sparse {
		if r.Month.After(current) {
			l.db.log.WithFields(logrus.Fields{
				"month":     r.Month.String(),
				"now":       current.String(),
				"playcount": r.PlayCount,
			}).Warn("plays dated after the current month left out of the summary")
		}
	}

	dense, err := summary.Summarize(sparse, current)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize monthly plays: %w", err)
	}
	return dense, nil
}

// TotalLength sums the lengths of songs
func TotalLength(songs []PlayedSong) time.Duration {
	var total time.Duration
	for _, s := range songs {
		total += s.Length
	}
	return total
}
