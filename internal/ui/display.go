package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ari/clemstats/internal/library"
	"github.com/ari/clemstats/internal/player"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// ANSI color codes
const (
	ColorReset   = "\033[0m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorBold    = "\033[1m"
)

// DateTimeLayout is used for every absolute time in the reports
const DateTimeLayout = "2006-01-02 15:04"

var colorEnabled = true

// SetColor turns ANSI colors on or off for all reports
func SetColor(enabled bool) {
	colorEnabled = enabled
}

func paint(s string, codes ...string) string {
	if !colorEnabled {
		return s
	}
	return strings.Join(codes, "") + s + ColorReset
}

// FormatDuration formats seconds as H:MM:SS, prefixed with the day count past 24 hours
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		return "-" + FormatDuration(-seconds)
	}
	days := seconds / 86400
	h := seconds % 86400 / 3600
	m := seconds % 3600 / 60
	s := seconds % 60

	clock := fmt.Sprintf("%d:%02d:%02d", h, m, s)
	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	}
	return fmt.Sprintf("%d days, %s", days, clock)
}

// FormatLength formats a duration with second precision
func FormatLength(d time.Duration) string {
	return FormatDuration(int64(d / time.Second))
}

// FormatDateTime formats a time in local time, "-" for the zero time
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DateTimeLayout)
}

// DisplayCollection prints the collection overview
func DisplayCollection(w io.Writer, c *library.Collection) {
	fmt.Fprintf(w, "\n%s\n", paint("Collection", ColorBold, ColorBlue))
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "%s songs on %s albums by %s different artists spread on %s genres.\n",
		humanize.Comma(c.Songs),
		humanize.Comma(c.Albums),
		humanize.Comma(c.Artists),
		humanize.Comma(c.Genres))
	fmt.Fprintf(w, "The total play time of the collection is %s.\n", FormatLength(c.TotalLength))

	if c.LastPlayed != nil {
		fmt.Fprintf(w, "The last song played was %s by %s at %s (%s).\n",
			paint(c.LastPlayed.Title, ColorGreen),
			paint(c.LastPlayed.Artist, ColorGreen),
			FormatDateTime(c.LastPlayed.LastPlayed),
			humanize.Time(c.LastPlayed.LastPlayed))
	} else {
		fmt.Fprintf(w, "%s\n", paint("No song has been played yet.", ColorYellow))
	}
}

// DisplayPartition prints how many songs were last played before and after a date
func DisplayPartition(w io.Writer, p *library.Partition) {
	at := FormatDateTime(p.At)
	fmt.Fprintf(w, "\n%s\n", paint("Split", ColorBold, ColorMagenta))
	fmt.Fprintf(w, "There are %s songs played before %s.\n", humanize.Comma(p.Before), at)
	fmt.Fprintf(w, "There are %s songs played after %s.\n", humanize.Comma(p.After), at)
}

// DisplaySongList prints the songs played in [start, end] in fixed-width columns
func DisplaySongList(w io.Writer, songs []library.PlayedSong, start, end time.Time, width int) {
	fmt.Fprintf(w, "\n%s\n", paint("Songs played", ColorBold, ColorCyan))
	fmt.Fprintf(w, "%s %s %s\n", cell("artist", width), cell("title", width), "last played")
	fmt.Fprintf(w, "%s %s %s\n", strings.Repeat("-", width), strings.Repeat("-", width), strings.Repeat("-", len(DateTimeLayout)))

	for _, s := range songs {
		fmt.Fprintf(w, "%s %s %s\n", cell(s.Artist, width), cell(s.Title, width), FormatDateTime(s.LastPlayed))
	}

	fmt.Fprintf(w, "\nThe total number of songs played between %s and %s is %s, with a total play time of %s.\n",
		FormatDateTime(start), FormatDateTime(end),
		humanize.Comma(int64(len(songs))),
		FormatLength(library.TotalLength(songs)))
}

// cell truncates s to width display cells and pads it to exactly width
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, ""), width)
}

// DisplayTrack prints the track the player has loaded
func DisplayTrack(w io.Writer, t *player.Track, raw bool) {
	if raw {
		for _, k := range t.RawKeys() {
			fmt.Fprintf(w, "%s: %s\n", k, t.Raw[k])
		}
		return
	}
	if t.Title == "" && t.Artist == "" {
		fmt.Fprintf(w, "%s\n", paint("Nothing is playing.", ColorYellow))
		return
	}
	fmt.Fprintf(w, "Now playing %s by %s", paint(t.Title, ColorGreen), paint(t.Artist, ColorGreen))
	if t.Album != "" {
		fmt.Fprintf(w, " from %s", t.Album)
	}
	if t.Length > 0 {
		fmt.Fprintf(w, " (%s)", FormatLength(t.Length))
	}
	fmt.Fprintln(w, ".")
}

// Error displays an error message
func Error(msg string) {
	fmt.Fprintf(os.Stderr, "%s\n", paint("Error: "+msg, ColorRed))
}
