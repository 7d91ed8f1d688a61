// Package providers holds small helpers shared by the bundled
// ResourceProvider implementations (classpath, file).
package providers

import (
	"io"
	"os"
)

// FileStream is a ResourceStream backed by an *os.File, shared by the
// classpath and file providers.
type FileStream struct {
	name string
	file *os.File
}

// NewFileStream wraps an already-opened file under the given logical
// name.
func NewFileStream(name string, file *os.File) *FileStream {
	return &FileStream{name: name, file: file}
}

func (s *FileStream) Name() string      { return s.name }
func (s *FileStream) Reader() io.Reader { return s.file }
func (s *FileStream) Close() error      { return s.file.Close() }
