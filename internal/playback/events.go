package playback

import "github.com/llehouerou/cdplay/internal/library"

// StateChange is emitted when playback starts, pauses, resumes or stops.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted each time a player process is started, including
// when the same track is started again.
type TrackChange struct {
	Collection string
	Track      library.Track
	Index      int
	Total      int
}
