package library

import "github.com/Masterminds/squirrel"

// songsTable is the Clementine table holding one row per song
const songsTable = "songs"

// Filter selects which songs take part in the statistics
type Filter struct {
	// IncludeUnavailable keeps songs whose files are gone (unavailable = 1)
	IncludeUnavailable bool `json:"include_unavailable"`
	// RequirePlayed drops songs with a zero play count from the played-song
	// queries. The collection counts always include unplayed songs.
	RequirePlayed bool `json:"require_played"`
}

// DefaultFilter matches what the player itself counts as the collection
func DefaultFilter() Filter {
	return Filter{RequirePlayed: true}
}

// collection starts a SELECT over every song in the collection.
// Placeholders are "?" which is what SQLite expects.
func (f Filter) collection(columns ...string) squirrel.SelectBuilder {
	b := squirrel.Select(columns...).From(songsTable)
	if !f.IncludeUnavailable {
		b = b.Where(squirrel.Eq{"unavailable": 0})
	}
	return b
}

// songs starts a SELECT over the songs that count as played
func (f Filter) songs(columns ...string) squirrel.SelectBuilder {
	b := f.collection(columns...)
	if f.RequirePlayed {
		b = b.Where(squirrel.Gt{"playcount": 0})
	}
	return b
}
