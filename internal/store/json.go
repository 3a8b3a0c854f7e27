package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amishk599/jobsift/internal/model"
)

// ErrMalformed marks a store file that exists but is not a JSON job array.
var ErrMalformed = errors.New("malformed job store")

// Load reads the job array at path. A missing file is an empty list; a file that
// does not parse returns ErrMalformed.
func Load(path string) ([]model.Job, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Job{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	jobs := []model.Job{}
	if len(bytes.TrimSpace(data)) == 0 {
		return jobs, nil
	}
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", path, ErrMalformed, err)
	}
	if jobs == nil {
		// "null" on disk
		jobs = []model.Job{}
	}
	return jobs, nil
}

// LoadOrEmpty reads the job array at path, treating both missing and malformed
// files as empty. Other read failures are still returned.
func LoadOrEmpty(path string) ([]model.Job, error) {
	jobs, err := Load(path)
	if errors.Is(err, ErrMalformed) {
		return []model.Job{}, err
	}
	return jobs, err
}

// Save writes jobs to path as an indented JSON array. The file is replaced
// atomically: the data goes to a temp file in the same directory which is then
// renamed over path, so an interrupted save leaves the previous contents intact.
func Save(path string, jobs []model.Job) error {
	data, err := Encode(jobs)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// Encode renders jobs the way they are stored on disk: a 4-space indented JSON
// array with HTML characters left unescaped. A nil slice encodes as [].
func Encode(jobs []model.Job) ([]byte, error) {
	if jobs == nil {
		jobs = []model.Job{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(jobs); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileWriter writes the fetch output to a fixed path.
type FileWriter struct {
	path string
}

// NewFileWriter returns a JobWriter that saves to path.
func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// WriteJobs replaces the file contents with jobs.
func (w *FileWriter) WriteJobs(jobs []model.Job) error {
	return Save(w.path, jobs)
}

// Path returns the destination file.
func (w *FileWriter) Path() string { return w.path }
