package types

// MediaStore holds enrollment media and uploaded analysis videos behind
// opaque references.
type MediaStore interface {
	// Save persists data under the folder and extension given and returns
	// the opaque reference for later reads.
	Save(folder string, data []byte, extension string) (string, error)
	Read(ref string) ([]byte, error)
	Delete(ref string) error
	// AbsolutePath resolves a reference to a local filesystem path for
	// consumers that must stream from disk, such as video capture.
	AbsolutePath(ref string) string
}
