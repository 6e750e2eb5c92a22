package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists album art file names in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

// findAlbumArt looks for an image next to a local track. Remote locations
// have no directory to look in.
func findAlbumArt(location string) string {
	if strings.Contains(location, "://") {
		return ""
	}
	dir := filepath.Dir(location)
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
