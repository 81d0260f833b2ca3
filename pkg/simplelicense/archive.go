package simplelicense

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"
)

// ArchiveSuffix is appended to the original file name for the download
const ArchiveSuffix = ".zip"

// ArchiveName returns the suggested download name for filename.
func ArchiveName(filename string) string {
	return EntryName(filename) + ArchiveSuffix
}

// EntryName reduces filename to its last path element, treating both slash
// and backslash as separators. Names without a usable element yield "".
func EntryName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	switch name {
	case ".", "..", "/":
		return ""
	}
	return name
}

type archiveEntry struct {
	name string
	data []byte
}

// writeArchive zips entries in order. Nothing is returned unless the whole
// archive was written and closed.
func writeArchive(modified time.Time, entries ...archiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to create entry %q: %w", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write entry %q: %w", e.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
