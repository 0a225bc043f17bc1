package media

import (
	"path"
	"strings"

	"github.com/santiago/autovidriera/internal/model"
)

// imageMIMEs and videoMIMEs are the single source of truth for
// extension classification. Historical variants of the resolver
// disagreed on which video patterns to recognize; this table
// consolidates them.
var imageMIMEs = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

var videoMIMEs = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".m4v":  "video/x-m4v",
}

// Classify derives the media kind and MIME type of a filename from its
// extension. ok is false for names outside both allow-lists.
func Classify(name string) (kind model.MediaKind, mime string, ok bool) {
	ext := strings.ToLower(path.Ext(name))
	if mime, ok := imageMIMEs[ext]; ok {
		return model.MediaKindImage, mime, true
	}
	if mime, ok := videoMIMEs[ext]; ok {
		return model.MediaKindVideo, mime, true
	}
	return "", "", false
}
