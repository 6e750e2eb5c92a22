// Package library holds the read-only playlist tree: collections of ordered tracks.
package library

import (
	"errors"
	"fmt"
)

// ErrEmptyLibrary is returned by Validate when there is nothing to browse.
var ErrEmptyLibrary = errors.New("library has no collections")

// Track is a single playable item.
type Track struct {
	Name     string
	Location string // file path or URI handed to the player
}

// Collection is an ordered playlist ("CD").
type Collection struct {
	Name   string
	Tracks []Track
}

// Library is the full set of collections, loaded once at startup.
type Library struct {
	Collections []Collection
}

// Len returns the number of tracks.
func (c Collection) Len() int {
	return len(c.Tracks)
}

// Track returns the track at index i, or false if out of range.
func (c Collection) Track(i int) (Track, bool) {
	if i < 0 || i >= len(c.Tracks) {
		return Track{}, false
	}
	return c.Tracks[i], true
}

// Names returns the track names in order.
func (c Collection) Names() []string {
	names := make([]string, len(c.Tracks))
	for i, t := range c.Tracks {
		names[i] = t.Name
	}
	return names
}

// Clone returns a deep copy that shares nothing with c.
func (c Collection) Clone() Collection {
	tracks := make([]Track, len(c.Tracks))
	copy(tracks, c.Tracks)
	return Collection{Name: c.Name, Tracks: tracks}
}

// Names returns the collection names in order.
func (l Library) Names() []string {
	names := make([]string, len(l.Collections))
	for i, c := range l.Collections {
		names[i] = c.Name
	}
	return names
}

// IndexOf returns the index of the collection with the given name, or -1.
func (l Library) IndexOf(name string) int {
	for i, c := range l.Collections {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Validate checks the non-empty invariants: at least one collection and
// at least one track per collection.
func Validate(l Library) error {
	if len(l.Collections) == 0 {
		return ErrEmptyLibrary
	}
	for i, c := range l.Collections {
		if len(c.Tracks) == 0 {
			return fmt.Errorf("collection %d (%q) has no tracks", i, c.Name)
		}
	}
	return nil
}
