package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/ari/clemstats/internal/summary"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// ErrDatabaseNotFound is returned when the player database does not exist
var ErrDatabaseNotFound = errors.New("database not found")

// DB is a read-only connection to a Clementine database
type DB struct {
	db     *sql.DB
	filter Filter
	log    logrus.FieldLogger
}

// Open opens the database at the given path in read-only mode
func Open(path string, filter Filter) (*DB, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, abs)
		}
		return nil, fmt.Errorf("failed to stat database: %w", err)
	}

	db, err := sql.Open("sqlite", readOnlyDSN(abs))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &DB{
		db:     db,
		filter: filter,
		log:    logrus.WithField("database", abs),
	}, nil
}

// readOnlyDSN builds a SQLite URI so the player's file is never written or created
func readOnlyDSN(abs string) string {
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "mode=ro",
	}
	return u.String()
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.db.Close()
}

// Filter returns the filter applied to every query
func (db *DB) Filter() Filter {
	return db.filter
}

// PlayedSong is a song together with the last time it was played
type PlayedSong struct {
	Artist     string        `json:"artist"`
	Title      string        `json:"title"`
	LastPlayed time.Time     `json:"last_played"`
	Length     time.Duration `json:"length"`
}

// Collection holds the aggregate counts of the collection
type Collection struct {
	Songs       int64         `json:"songs"`
	Albums      int64         `json:"albums"`
	Artists     int64         `json:"artists"`
	Genres      int64         `json:"genres"`
	TotalLength time.Duration `json:"total_length"`
	LastPlayed  *PlayedSong   `json:"last_played,omitempty"`
}

// Partition holds the number of songs last played before and after a point in time
type Partition struct {
	At     time.Time `json:"at"`
	Before int64     `json:"before"`
	After  int64     `json:"after"`
}

func (db *DB) queryRow(ctx context.Context, b squirrel.SelectBuilder) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	db.log.WithFields(logrus.Fields{"query": query, "args": args}).Debug("query row")
	return db.db.QueryRowContext(ctx, query, args...), nil
}

func (db *DB) query(ctx context.Context, b squirrel.SelectBuilder) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	db.log.WithFields(logrus.Fields{"query": query, "args": args}).Debug("query")
	return db.db.QueryContext(ctx, query, args...)
}

func (db *DB) count(ctx context.Context, b squirrel.SelectBuilder) (int64, error) {
	row, err := db.queryRow(ctx, b)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountSongs returns the number of songs
func (db *DB) CountSongs(ctx context.Context) (int64, error) {
	n, err := db.count(ctx, db.filter.collection("COUNT(*)"))
	if err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return n, nil
}

// CountDistinct returns the number of distinct values of the album, artist or genre column
func (db *DB) CountDistinct(ctx context.Context, column string) (int64, error) {
	switch column {
	case "album", "artist", "genre":
	default:
		return 0, fmt.Errorf("failed to count distinct values: unsupported column %q", column)
	}
	n, err := db.count(ctx, db.filter.collection("COUNT(DISTINCT "+column+")"))
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct %s: %w", column, err)
	}
	return n, nil
}

// GetTotalLength returns the summed length of all songs
func (db *DB) GetTotalLength(ctx context.Context) (time.Duration, error) {
	row, err := db.queryRow(ctx, db.filter.collection("TOTAL(length)"))
	if err != nil {
		return 0, fmt.Errorf("failed to get total length: %w", err)
	}
	// TOTAL() is always a float, 0.0 for no rows
	var ns float64
	if err := row.Scan(&ns); err != nil {
		return 0, fmt.Errorf("failed to get total length: %w", err)
	}
	return time.Duration(ns), nil
}

// GetLastPlayed returns the most recently played song, nil if nothing was played
func (db *DB) GetLastPlayed(ctx context.Context) (*PlayedSong, error) {
	b := db.filter.songs("artist", "title", "lastplayed", "length").
		Where(squirrel.Gt{"lastplayed": 0}).
		OrderBy("lastplayed DESC").
		Limit(1)

	row, err := db.queryRow(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to get last played song: %w", err)
	}
	s, err := scanPlayedSong(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last played song: %w", err)
	}
	return s, nil
}

// CountPlayedBefore returns the number of songs last played strictly before at
func (db *DB) CountPlayedBefore(ctx context.Context, at time.Time) (int64, error) {
	b := db.filter.songs("COUNT(*)").
		Where(squirrel.Gt{"lastplayed": 0}).
		Where(squirrel.Lt{"lastplayed": at.Unix()})
	n, err := db.count(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("failed to count songs played before %d: %w", at.Unix(), err)
	}
	return n, nil
}

// CountPlayedSince returns the number of songs last played at or after at
func (db *DB) CountPlayedSince(ctx context.Context, at time.Time) (int64, error) {
	b := db.filter.songs("COUNT(*)").
		Where(squirrel.Gt{"lastplayed": 0}).
		Where(squirrel.GtOrEq{"lastplayed": at.Unix()})
	n, err := db.count(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("failed to count songs played since %d: %w", at.Unix(), err)
	}
	return n, nil
}

// GetPlayedBetween returns the songs last played within [start, end], oldest first
func (db *DB) GetPlayedBetween(ctx context.Context, start, end time.Time) ([]PlayedSong, error) {
	b := db.filter.songs("artist", "title", "lastplayed", "length").
		Where(squirrel.Gt{"lastplayed": 0}).
		Where(squirrel.Expr("lastplayed BETWEEN ? AND ?", start.Unix(), end.Unix())).
		OrderBy("lastplayed")

	rows, err := db.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to query played songs: %w", err)
	}
	defer rows.Close()

	var songs []PlayedSong
	for rows.Next() {
		s, err := scanPlayedSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan played song: %w", err)
		}
		songs = append(songs, *s)
	}
	return songs, rows.Err()
}

// GetMonthlyPlays returns one record per month with at least one play, oldest first.
// Months are computed in UTC.
func (db *DB) GetMonthlyPlays(ctx context.Context) ([]summary.MonthlyRecord, error) {
	b := db.filter.songs(
		"strftime('%Y-%m', lastplayed, 'unixepoch') AS month",
		"COUNT(*) AS num_songs",
		"COALESCE(SUM(length), 0) / 1000000000 AS length_secs",
	).
		Where(squirrel.Gt{"lastplayed": 0}).
		GroupBy("month").
		OrderBy("month")

	rows, err := db.query(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly plays: %w", err)
	}
	defer rows.Close()

	var records []summary.MonthlyRecord
	for rows.Next() {
		var month string
		var r summary.MonthlyRecord
		if err := rows.Scan(&month, &r.PlayCount, &r.TotalDuration); err != nil {
			return nil, fmt.Errorf("failed to scan monthly plays: %w", err)
		}
		if r.Month, err = summary.ParseYearMonth(month); err != nil {
			return nil, fmt.Errorf("failed to scan monthly plays: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayedSong(row scanner) (*PlayedSong, error) {
	var artist, title sql.NullString
	var lastPlayed, length sql.NullInt64
	if err := row.Scan(&artist, &title, &lastPlayed, &length); err != nil {
		return nil, err
	}
	return &PlayedSong{
		Artist:     nullStringValue(artist),
		Title:      nullStringValue(title),
		LastPlayed: time.Unix(nullInt64Value(lastPlayed), 0),
		Length:     time.Duration(nullInt64Value(length)),
	}, nil
}

// nullStringValue returns the string value or empty string if not valid.
func nullStringValue(n sql.NullString) string {
	if !n.Valid {
		return ""
	}
	return n.String
}

// nullInt64Value returns the int64 value or 0 if not valid.
func nullInt64Value(n sql.NullInt64) int64 {
	if !n.Valid {
		return 0
	}
	return n.Int64
}
