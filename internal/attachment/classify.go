// Package attachment classifies uploaded files into the fixed set of
// attachment kinds stored alongside transactions.
package attachment

import (
	"path"
	"strings"
)

// Kind is one of the attachment categories a transaction can carry.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
	KindAudio Kind = "audio"
	KindFile  Kind = "file"
)

var audioExts = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
}

// FromContentType classifies by the declared content type, falling back to
// the filename extension. Used at upload time with the actual header.
func FromContentType(contentType, filename string) Kind {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return KindImage
	case contentType == "application/pdf":
		return KindPDF
	case audioExts[strings.ToLower(path.Ext(filename))]:
		return KindAudio
	default:
		return KindFile
	}
}

// FromURL classifies a stored attachment url by its extension alone. Used at
// transaction update time when a url arrives without a type.
func FromURL(url string) Kind {
	ext := strings.ToLower(path.Ext(url))
	switch ext {
	case ".jpeg", ".jpg", ".png", ".gif":
		return KindImage
	case ".pdf":
		return KindPDF
	case ".mp3", ".wav", ".ogg":
		return KindAudio
	default:
		return KindFile
	}
}
