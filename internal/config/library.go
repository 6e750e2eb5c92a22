package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/cdplay/internal/library"
)

// Accepted key names; the first entry of each list is the canonical one.
var (
	collectionKeys = []string{"collections", "cds"}
	trackKeys      = []string{"tracks", "songs"}
)

// parseLibrary walks the raw config tree and checks its shape. Every
// problem is reported with the key path that caused it.
func parseLibrary(k *koanf.Koanf) (library.Library, error) {
	key, raw, ok := firstOf(k.Raw(), collectionKeys)
	if !ok {
		return library.Library{}, shapeErr(collectionKeys[0], "missing list of collections")
	}

	items, ok := raw.([]any)
	if !ok {
		return library.Library{}, shapeErr(key, "must be a list")
	}
	if len(items) == 0 {
		return library.Library{}, shapeErr(key, "must contain at least one collection")
	}

	lib := library.Library{Collections: make([]library.Collection, 0, len(items))}
	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", key, i)
		c, err := parseCollection(path, item)
		if err != nil {
			return library.Library{}, err
		}
		lib.Collections = append(lib.Collections, c)
	}

	return lib, nil
}

func parseCollection(path string, raw any) (library.Collection, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return library.Collection{}, shapeErr(path, "must be an object")
	}

	name, err := requireString(path, m, "name")
	if err != nil {
		return library.Collection{}, err
	}

	key, rawTracks, ok := firstOf(m, trackKeys)
	if !ok {
		return library.Collection{}, shapeErr(path+"."+trackKeys[0], "missing list of tracks")
	}
	tracksPath := path + "." + key

	items, ok := rawTracks.([]any)
	if !ok {
		return library.Collection{}, shapeErr(tracksPath, "must be a list")
	}
	if len(items) == 0 {
		return library.Collection{}, shapeErr(tracksPath, "must contain at least one track")
	}

	c := library.Collection{Name: name, Tracks: make([]library.Track, 0, len(items))}
	for i, item := range items {
		t, err := parseTrack(fmt.Sprintf("%s[%d]", tracksPath, i), item)
		if err != nil {
			return library.Collection{}, err
		}
		c.Tracks = append(c.Tracks, t)
	}

	return c, nil
}

func parseTrack(path string, raw any) (library.Track, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return library.Track{}, shapeErr(path, "must be an object")
	}

	name, err := requireString(path, m, "name")
	if err != nil {
		return library.Track{}, err
	}
	location, err := requireString(path, m, "location")
	if err != nil {
		return library.Track{}, err
	}

	return library.Track{Name: name, Location: expandPath(location)}, nil
}

func requireString(path string, m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok {
		return "", shapeErr(path+"."+key, "missing")
	}
	s, ok := raw.(string)
	if !ok {
		return "", shapeErr(path+"."+key, "must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", shapeErr(path+"."+key, "must not be empty")
	}
	return s, nil
}

// firstOf returns the first key of keys present in m.
func firstOf(m map[string]any, keys []string) (string, any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return key, v, true
		}
	}
	return "", nil, false
}

func shapeErr(path, reason string) *Error {
	return &Error{Path: path, Reason: reason}
}
