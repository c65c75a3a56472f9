// Package media describes the author's video resource and provides a
// simulated media element for previews and tests.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultExt is used when a video name carries no extension.
const DefaultExt = "mp4"

// ErrEmpty reports a video source without content.
var ErrEmpty = errors.New("video source is empty")

// Source is a loaded video resource.
type Source struct {
	Name string
	Size int64
	MIME string

	path string
	data []byte
}

// ReadSeekCloser is the readable view of a Source.
type ReadSeekCloser = io.ReadSeekCloser

// Open stats and sniffs the video at path. The content is read lazily.
func Open(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("open video: %s is a directory", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("open video %s: %w", path, ErrEmpty)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	defer file.Close()
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("detect video type: %w", err)
	}
	name := filepath.Base(path)
	return &Source{
		Name: name,
		Size: info.Size(),
		MIME: resolveMIME(detected, name),
		path: path,
	}, nil
}

// FromBytes wraps in-memory video content.
func FromBytes(name string, data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("video %s: %w", name, ErrEmpty)
	}
	return &Source{
		Name: name,
		Size: int64(len(data)),
		MIME: resolveMIME(mimetype.Detect(data), name),
		data: data,
	}, nil
}

// Ext returns the lowercase extension of the source name without the dot,
// or DefaultExt.
func (s *Source) Ext() string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(s.Name)), ".")
	if ext == "" {
		return DefaultExt
	}
	return ext
}

// BundleName is the normalized file name used inside exported bundles.
func (s *Source) BundleName() string {
	return "video." + s.Ext()
}

// Path returns the file backing the source, or "" for in-memory sources.
func (s *Source) Path() string {
	return s.path
}

// Open returns a fresh reader over the video bytes.
func (s *Source) Open() (ReadSeekCloser, error) {
	if s.path == "" {
		return nopCloser{bytes.NewReader(s.data)}, nil
	}
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("read video: %w", err)
	}
	return file, nil
}

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// resolveMIME prefers the sniffed media type, then the extension, then
// video/mp4.
func resolveMIME(detected *mimetype.MIME, name string) string {
	for m := detected; m != nil; m = m.Parent() {
		value := m.String()
		if strings.HasPrefix(value, "video/") || strings.HasPrefix(value, "audio/") {
			return strings.SplitN(value, ";", 2)[0]
		}
	}
	ext := strings.ToLower(filepath.Ext(name))
	if known, ok := videoTypes[ext]; ok {
		return known
	}
	if byExt := mime.TypeByExtension(ext); strings.HasPrefix(byExt, "video/") {
		return strings.SplitN(byExt, ";", 2)[0]
	}
	return "video/mp4"
}

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".webm": "video/webm",
	".ogv":  "video/ogg",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
}
