package navigator

import (
	"context"
	"errors"

	"github.com/llehouerou/cdplay/internal/library"
)

const (
	collectionsTitle = "choose collection"
	tracksTitle      = "select starting track"
)

// Position locates a cursor in the two-level menu.
type Position struct {
	Collection int
	Track      int
}

// Selection is the result of a browse: a collection and the track to start
// playing from.
type Selection struct {
	Collection library.Collection
	Start      int
}

// Browse runs the collection screen then the track screen of the chosen
// collection. Back on the track screen returns to the collection screen
// with its cursor where it was. Cursors start at start; the track cursor is
// only used when the same collection is chosen again.
//
// The returned Position is where the cursors were when Browse returned.
func Browse(ctx context.Context, lib library.Library, l Listener, s Sink, start Position) (Selection, Position, error) {
	pos := start
	names := lib.Names()

	for {
		outer := New(collectionsTitle, names, WithCursor(pos.Collection), WithoutBack())
		ci, err := outer.Run(ctx, l, s)
		if err != nil {
			return Selection{}, Position{Collection: outer.Cursor()}, err
		}

		collection := lib.Collections[ci]
		track := 0
		if ci == pos.Collection {
			track = pos.Track
		}
		pos = Position{Collection: ci, Track: track}

		inner := New(collection.Name+": "+tracksTitle, collection.Names(), WithCursor(track))
		ti, err := inner.Run(ctx, l, s)
		switch {
		case errors.Is(err, ErrBack):
			pos.Track = inner.Cursor()
			continue
		case err != nil:
			return Selection{}, Position{Collection: ci, Track: inner.Cursor()}, err
		}

		return Selection{Collection: collection.Clone(), Start: ti}, Position{Collection: ci, Track: ti}, nil
	}
}
