package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agenthands/dendron/pkg/compiler/lexer"
)

var (
	ErrPathEscape   = errors.New("source: path escape violation")
	ErrFileTooLarge = errors.New("source: file size limit exceeded")
)

// DefaultMaxFileSize bounds how much of a program file is read.
const DefaultMaxFileSize = 5 * 1024 * 1024

// Loader reads Dendron program files confined to Root.
type Loader struct {
	Root        string
	MaxFileSize int64
}

func NewLoader(root string, maxFileSize int64) *Loader {
	absRoot, _ := filepath.Abs(root)
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &Loader{
		Root:        absRoot,
		MaxFileSize: maxFileSize,
	}
}

// Resolve maps path onto the filesystem, rejecting anything outside Root.
// Relative paths are taken relative to Root.
func (l *Loader) Resolve(path string) (string, error) {
	var clean string
	if filepath.IsAbs(path) {
		clean = filepath.Clean(path)
	} else {
		clean = filepath.Join(l.Root, filepath.Clean(path))
	}
	rel, err := filepath.Rel(l.Root, clean)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathEscape
	}
	return clean, nil
}

// ReadFile returns the raw contents of path.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	clean, err := l.Resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, l.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	if int64(len(data)) > l.MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// Load reads path and splits it into statements, one per non-blank line.
func (l *Loader) Load(path string) ([]lexer.Statement, error) {
	data, err := l.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return lexer.Split(data), nil
}
