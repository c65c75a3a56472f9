// Package export turns a question set and its video into a standalone
// interactive player, either as one HTML file or as a bundle of the video,
// a question script, and an HTML page.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

// Artifact file names. QuestionsGlobal is the window property the question
// script assigns and the page reads.
const (
	InlineFileName  = "interactive_video.html"
	ArchiveName     = "interactive_video_package.zip"
	BundleDirName   = "interactive_video"
	QuestionsFile   = "questions.js"
	IndexFile       = "index.html"
	QuestionsGlobal = "interactiveQuestions"
)

// Options controls page texts.
type Options struct {
	Title  string
	Locale string
	Labels Labels
}

// DefaultOptions returns English labels and the default title.
func DefaultOptions() Options {
	labels, _ := LabelsFor("en")
	return Options{Title: "Interactive Video", Locale: "en", Labels: labels}
}

// File is one artifact entry. Write streams its content.
type File struct {
	Name string
	// Stored marks content that is already compressed.
	Stored bool
	Write  func(ctx context.Context, w io.Writer) error
}

// Artifact is a generated player ready to be written.
type Artifact struct {
	Mode  Mode
	Files []File
}

// QuestionsScript renders the script that assigns the sorted question set
// to the player global.
func QuestionsScript(questions []question.Question) ([]byte, error) {
	data, err := json.Marshal(question.List(question.Sorted(questions)))
	if err != nil {
		return nil, fmt.Errorf("encode questions: %w", err)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "window.%s = ", QuestionsGlobal)
	buf.Write(data)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// Inline builds the single-file artifact with the video as a data URI.
func Inline(video *media.Source, questions []question.Question, opts Options) (Artifact, error) {
	script, err := prepare(ModeHTML, video, questions)
	if err != nil {
		return Artifact{}, err
	}
	data := pageData{
		Title:     opts.Title,
		Lang:      opts.Locale,
		Source:    dataURISource(video.MIME, func() (io.ReadCloser, error) { return video.Open() }),
		Questions: inlineQuestions(script),
		Labels:    opts.Labels,
	}
	return Artifact{
		Mode: ModeHTML,
		Files: []File{{
			Name:  InlineFileName,
			Write: renderPage(data),
		}},
	}, nil
}

// Bundle builds the three-file artifact. mode is ModeZip or ModeDir.
func Bundle(mode Mode, video *media.Source, questions []question.Question, opts Options) (Artifact, error) {
	if mode != ModeZip && mode != ModeDir {
		return Artifact{}, &GenerationError{Mode: mode, Err: fmt.Errorf("bundle mode must be %s or %s", ModeZip, ModeDir)}
	}
	script, err := prepare(mode, video, questions)
	if err != nil {
		return Artifact{}, err
	}
	videoName := video.BundleName()
	data := pageData{
		Title:     opts.Title,
		Lang:      opts.Locale,
		Source:    externalSource(videoName, video.MIME),
		Questions: externalQuestions(),
		Labels:    opts.Labels,
	}
	return Artifact{
		Mode: mode,
		Files: []File{
			{Name: videoName, Stored: true, Write: copyVideo(video)},
			{Name: QuestionsFile, Write: writeBytes(script)},
			{Name: IndexFile, Write: renderPage(data)},
		},
	}, nil
}

// Build dispatches to Inline or Bundle.
func Build(mode Mode, video *media.Source, questions []question.Question, opts Options) (Artifact, error) {
	if mode == ModeHTML {
		return Inline(video, questions, opts)
	}
	return Bundle(mode, video, questions, opts)
}

func prepare(mode Mode, video *media.Source, questions []question.Question) ([]byte, error) {
	if video == nil {
		return nil, &GenerationError{Mode: mode, Err: ErrNoSource}
	}
	if err := question.ValidateSet(questions); err != nil {
		return nil, &GenerationError{Mode: mode, Err: err}
	}
	script, err := QuestionsScript(questions)
	if err != nil {
		return nil, &GenerationError{Mode: mode, Err: err}
	}
	return script, nil
}

func renderPage(data pageData) func(context.Context, io.Writer) error {
	return func(ctx context.Context, w io.Writer) error {
		return page(data).Render(ctx, w)
	}
}

func writeBytes(content []byte) func(context.Context, io.Writer) error {
	return func(_ context.Context, w io.Writer) error {
		_, err := w.Write(content)
		return err
	}
}

func copyVideo(video *media.Source) func(context.Context, io.Writer) error {
	return func(_ context.Context, w io.Writer) error {
		reader, err := video.Open()
		if err != nil {
			return err
		}
		defer reader.Close()
		if _, err := io.Copy(w, reader); err != nil {
			return fmt.Errorf("read video: %w", err)
		}
		return nil
	}
}
