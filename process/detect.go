package process

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// enough to see first local file header and names of the first few
// entries, OOXML matchers look for content types and "word/" there
const headSize = 8192

// isDocxFile checks if file looks like OOXML word processing package or at
// least a zip container, final word belongs to package parser.
func isDocxFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	head = head[:n]

	return filetype.Is(head, "docx") || filetype.Is(head, "zip"), nil
}
