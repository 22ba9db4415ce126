package source

type (
	// FileID uniquely identifies a file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
)

// File captures metadata and raw content for a single candidate file.
// Content stays byte-exact: binary STL must never be rewritten, and the
// textual validator does its own whitespace normalization.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
