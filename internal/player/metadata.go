package player

import (
	"errors"
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// ErrRemote is returned by ReadTrackInfo for locations that are not local
// files.
var ErrRemote = errors.New("not a local file")

// TrackInfo holds the tags shown on the now-playing line.
type TrackInfo struct {
	Title  string
	Artist string
	Album  string
	Track  int
	Total  int
}

// ReadTrackInfo reads the tags of a local audio file.
func ReadTrackInfo(location string) (*TrackInfo, error) {
	if strings.Contains(location, "://") {
		return nil, ErrRemote
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	artist := m.Artist()
	if artist == "" {
		artist = m.AlbumArtist()
	}
	track, total := m.Track()

	return &TrackInfo{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(artist),
		Album:  strings.TrimSpace(m.Album()),
		Track:  track,
		Total:  total,
	}, nil
}
