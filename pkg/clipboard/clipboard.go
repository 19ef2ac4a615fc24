// Package clipboard provides a point-in-time snapshot of the system clipboard
// classified as a file list, a raw RGBA image, or plain text. The three
// content kinds are resolved in one read so callers dispatch on a single
// tagged value instead of probing the clipboard three times.
package clipboard

// Kind identifies which shape a Snapshot carries.
type Kind int

const (
	KindEmpty Kind = iota
	KindFileList
	KindImage
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindFileList:
		return "file-list"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return "empty"
	}
}

// Image is a raw bitmap: tightly packed RGBA rows, row-major, top-to-bottom.
// len(Pix) must be Width*Height*4.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Snapshot is an exclusive point-in-time read of the clipboard. Exactly one
// payload field is meaningful, selected by Kind.
type Snapshot struct {
	Kind  Kind
	Files []string
	Image Image
	Text  string
}

// Reader produces clipboard snapshots. A returned error means the clipboard
// itself could not be opened; an empty or unsupported clipboard is KindEmpty,
// not an error.
type Reader interface {
	Read() (Snapshot, error)
}
