// Package store persists the high score between sessions.
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultHighScoreFile is the plain text file used when no path is given
const DefaultHighScoreFile = "highscore.txt"

var ErrCorrupt = errors.New("high score file is not an integer")

// FileStore keeps the high score as a plain text integer
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultHighScoreFile
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns 0 when the file does not exist yet
func (s *FileStore) Load(ctx context.Context) (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", s.path, err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || score < 0 {
		return 0, fmt.Errorf("%w: %s", ErrCorrupt, s.path)
	}
	return score, nil
}

func (s *FileStore) Save(ctx context.Context, score int) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
