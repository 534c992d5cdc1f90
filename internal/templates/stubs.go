package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/misinform-app/articles/internal/apperrors"
)

// StubLoader reads JSON stubs from a directory. Files are read on every call.
type StubLoader struct {
	dir string
}

func NewStubLoader(dir string) *StubLoader {
	return &StubLoader{dir: dir}
}

// Load returns the raw stub text for d.
func (l *StubLoader) Load(d Descriptor) (string, error) {
	b, err := os.ReadFile(filepath.Join(l.dir, d.StubFile))
	if err != nil {
		return "", apperrors.NewIOError(fmt.Sprintf("Cannot read file %s", d.StubFile), err)
	}
	return string(b), nil
}

// Dir returns the stub directory.
func (l *StubLoader) Dir() string {
	return l.dir
}
