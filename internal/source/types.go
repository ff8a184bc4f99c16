package source

type (
	// FileID identifies a diagram file inside a FileSet.
	FileID uint32
	// FileFlags records how a file's bytes were obtained and normalised.
	FileFlags uint8
)

const (
	// FileVirtual marks content that did not come from disk (stdin, tests, editor buffers).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM marks a file whose UTF-8 byte order mark was stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks a file whose CRLF line endings were rewritten to LF.
	FileNormalizedCRLF
)

// File is one loaded diagram source.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human position.
type LineCol struct {
	Line uint32
	Col  uint32
}
