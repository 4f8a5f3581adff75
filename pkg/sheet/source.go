package sheet

import "path/filepath"

// Source identifies where a workbook originates so readers can operate on
// files, fs.FS entries, or in-memory payloads.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the reader modalities.
type SourceKind string

const (
	SourceKindFile  SourceKind = "file"
	SourceKindFS    SourceKind = "fs"
	SourceKindBytes SourceKind = "bytes"
)

// BytesSource is a Source that carries its own payload.
type BytesSource interface {
	Source
	Bytes() []byte
}

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }

func (s fileSource) Kind() SourceKind { return SourceKindFile }

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }

func (s fsSource) Kind() SourceKind { return SourceKindFS }

// SourceFromFS returns a Source identifying a workbook inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

type bytesSource struct {
	name string
	data []byte
}

func (s bytesSource) Location() string { return s.name }

func (s bytesSource) Kind() SourceKind { return SourceKindBytes }

func (s bytesSource) Bytes() []byte { return s.data }

// SourceFromBytes wraps an in-memory workbook. name is only used for
// diagnostics. The payload is copied.
func SourceFromBytes(name string, data []byte) BytesSource {
	return bytesSource{name: name, data: append([]byte(nil), data...)}
}
