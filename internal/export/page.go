package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime"

	"github.com/a-h/templ"
)

//go:generate templ generate -f page.templ

// Element ids shared by the page and the player script.
const (
	rootID   = "vidquiz-root"
	configID = "vidquiz-config"
)

// playerConfig is the JSON the player reads at boot.
type playerConfig struct {
	Labels Labels `json:"labels"`
}

// pageData is everything that varies between generated pages. Both artifact
// modes render the same page; only Source and Questions differ.
type pageData struct {
	Title string
	Lang  string
	// Source renders the <source> element of the video.
	Source templ.Component
	// Questions renders the script that assigns the question global.
	Questions templ.Component
	Labels    Labels
}

func (d pageData) lang() string {
	if d.Lang == "" {
		return "en"
	}
	return d.Lang
}

// dataURISource streams the video into a <source> element as a base64 data
// URI. The payload is too large to build as one attribute string.
func dataURISource(mimeType string, open func() (io.ReadCloser, error)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		mediaType, _, err := mime.ParseMediaType(mimeType)
		if err != nil {
			return fmt.Errorf("video type %q: %w", mimeType, err)
		}
		reader, err := open()
		if err != nil {
			return err
		}
		defer reader.Close()
		if _, err := fmt.Fprintf(w, `<source src="data:%s;base64,`, mediaType); err != nil {
			return err
		}
		encoder := base64.NewEncoder(base64.StdEncoding, w)
		if _, err := io.Copy(encoder, reader); err != nil {
			return fmt.Errorf("read video: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, `" type="%s">`, mediaType)
		return err
	})
}

// inlineQuestions embeds the question script in the page.
func inlineQuestions(script []byte) templ.Component {
	return rawElement("script", string(script))
}

// rawElement wraps embedded content in a raw text element. body must not
// contain the closing tag; the JSON encoder escapes '<' in question text.
func rawElement(tag, body string) templ.Component {
	return templ.Raw("<" + tag + ">\n" + body + "</" + tag + ">")
}
