// Package viewer decides how a document's payload is presented.
package viewer

import (
	"net/url"
	"path"
	"strings"

	"archiveweb/internal/model"
)

// Kind is the presentation chosen for a document.
type Kind string

const (
	KindText     Kind = "text"
	KindPDF      Kind = "pdf"
	KindVideo    Kind = "video"
	KindImage    Kind = "image"
	KindDownload Kind = "download"
	KindNone     Kind = "none"
)

// FilesPath is the same-origin prefix stored files are served under.
const FilesPath = "/uploads/"

// View is the selected presentation. URL and MIME are empty for text and none.
type View struct {
	Kind Kind
	Text string
	URL  string
	MIME string
	Name string
}

var (
	videoExts = map[string]bool{"mp4": true, "mov": true, "webm": true}
	imageExts = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}
)

// Select maps doc to a view. Inline content wins over any stored file.
func Select(doc *model.Document) View {
	if doc == nil {
		return View{Kind: KindNone}
	}
	if doc.HasContent() {
		return View{Kind: KindText, Text: *doc.Content}
	}

	name := doc.File()
	if name == "" {
		return View{Kind: KindNone}
	}

	v := View{URL: FileURL(name), Name: name}
	ext := Extension(name)
	switch {
	case ext == "pdf":
		v.Kind = KindPDF
		v.MIME = "application/pdf"
	case videoExts[ext]:
		v.Kind = KindVideo
		v.MIME = "video/" + ext
	case imageExts[ext]:
		v.Kind = KindImage
	default:
		v.Kind = KindDownload
	}
	return v
}

// Extension returns the lower-cased extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

// FileURL is the same-origin address of a stored file.
func FileURL(name string) string {
	return FilesPath + url.PathEscape(name)
}
