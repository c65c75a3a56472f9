package question

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only supported question file version.
const CurrentVersion = 1

// File is a question file: an optional default video and the question set.
type File struct {
	Version   int
	Video     string
	Questions List
}

type fileRecord struct {
	Version   int      `json:"version" yaml:"version"`
	Video     string   `json:"video,omitempty" yaml:"video,omitempty"`
	Questions []Record `json:"questions" yaml:"questions"`
}

// LoadFile reads, parses, normalizes, and validates a question file. A JSON
// file may also hold a bare array of question records.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read question file: %w", err)
	}
	file, err := parseFile(data, path)
	if err != nil {
		return File{}, err
	}
	if file.Video != "" && !filepath.IsAbs(file.Video) {
		file.Video = filepath.Join(filepath.Dir(path), file.Video)
	}
	return file, nil
}

// ParseFile parses and validates question file contents. The format is
// chosen from the name's extension.
func ParseFile(data []byte, name string) (File, error) {
	return parseFile(data, name)
}

func parseFile(data []byte, path string) (File, error) {
	var (
		record fileRecord
		err    error
	)
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		record, err = parseJSONFile(data)
	} else {
		record, err = parseYAMLFile(data)
	}
	if err != nil {
		return File{}, err
	}
	if record.Version == 0 {
		return File{}, &ValidationError{Issues: []Issue{{Field: "version", Message: "is required"}}}
	}
	if record.Version != CurrentVersion {
		return File{}, &ValidationError{Issues: []Issue{{Field: "version", Message: fmt.Sprintf("unsupported version %d", record.Version)}}}
	}
	questions, err := fromRecords(record.Questions)
	if err != nil {
		return File{}, fmt.Errorf("decode questions: %w", err)
	}
	questions = NormalizeAll(questions)
	if err := ValidateSet(questions); err != nil {
		return File{}, err
	}
	return File{Version: record.Version, Video: strings.TrimSpace(record.Video), Questions: questions}, nil
}

func parseJSONFile(data []byte) (fileRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []Record
		if err := decodeJSONStrict(trimmed, &records); err != nil {
			return fileRecord{}, err
		}
		return fileRecord{Version: CurrentVersion, Questions: records}, nil
	}
	var record fileRecord
	if err := decodeJSONStrict(trimmed, &record); err != nil {
		return fileRecord{}, err
	}
	return record, nil
}

func decodeJSONStrict(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fmt.Errorf("parse json: multiple documents are not supported")
		}
		return fmt.Errorf("parse json: %w", err)
	}
	return nil
}

func parseYAMLFile(data []byte) (fileRecord, error) {
	var record fileRecord
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&record); err != nil {
		return fileRecord{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return fileRecord{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return fileRecord{}, fmt.Errorf("parse yaml: %w", err)
	}
	return record, nil
}

// EncodeYAML renders file in the question file format.
func EncodeYAML(file File) ([]byte, error) {
	record := fileRecord{Version: file.Version, Video: file.Video, Questions: make([]Record, 0, len(file.Questions))}
	if record.Version == 0 {
		record.Version = CurrentVersion
	}
	for _, q := range file.Questions {
		encoded, err := ToRecord(q)
		if err != nil {
			return nil, err
		}
		record.Questions = append(record.Questions, encoded)
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(record); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes file to path as YAML, replacing it atomically.
func WriteFile(path string, file File) error {
	data, err := EncodeYAML(file)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".questions-*.yml")
	if err != nil {
		return fmt.Errorf("write question file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write question file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write question file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write question file: %w", err)
	}
	return nil
}
