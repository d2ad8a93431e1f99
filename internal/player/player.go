// Package player reads the current track from a running player over MPRIS.
package player

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	// DefaultBusName is the MPRIS name Clementine registers on the session bus
	DefaultBusName = "org.mpris.MediaPlayer2.clementine"

	mprisPath        = "/org/mpris/MediaPlayer2"
	metadataProperty = "org.mpris.MediaPlayer2.Player.Metadata"
)

// ErrPlayerUnavailable is returned when the session bus or the player cannot be reached
var ErrPlayerUnavailable = errors.New("player unavailable")

// Track is the track the player currently has loaded
type Track struct {
	Title  string            `json:"title"`
	Artist string            `json:"artist"`
	Album  string            `json:"album"`
	Length time.Duration     `json:"length"`
	Raw    map[string]string `json:"raw,omitempty"`
}

// NowPlaying asks the player registered under busName for its current track
func NowPlaying(busName string) (*Track, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlayerUnavailable, err)
	}
	defer conn.Close()

	obj := conn.Object(busName, dbus.ObjectPath(mprisPath))
	v, err := obj.GetProperty(metadataProperty)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPlayerUnavailable, busName, err)
	}

	metadata, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("unexpected metadata type %s", v.Signature())
	}
	return TrackFromMetadata(metadata), nil
}

// TrackFromMetadata decodes an MPRIS metadata map
func TrackFromMetadata(metadata map[string]dbus.Variant) *Track {
	t := &Track{Raw: make(map[string]string, len(metadata))}
	for key, v := range metadata {
		t.Raw[key] = formatValue(v.Value())
	}

	t.Title = stringValue(metadata["xesam:title"])
	t.Album = stringValue(metadata["xesam:album"])
	t.Artist = stringValue(metadata["xesam:artist"])

	// mpris:length is in microseconds, x or t depending on the player
	switch n := metadata["mpris:length"].Value().(type) {
	case int64:
		t.Length = time.Duration(n) * time.Microsecond
	case uint64:
		t.Length = time.Duration(n) * time.Microsecond
	case int32:
		t.Length = time.Duration(n) * time.Microsecond
	}
	return t
}

// RawKeys returns the metadata keys in sorted order
func (t *Track) RawKeys() []string {
	keys := make([]string, 0, len(t.Raw))
	for k := range t.Raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func stringValue(v dbus.Variant) string {
	switch s := v.Value().(type) {
	case string:
		return s
	case []string:
		return strings.Join(s, ", ")
	}
	return ""
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case dbus.ObjectPath:
		return string(x)
	}
	return fmt.Sprint(v)
}
