package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"slices"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

// RIFF INFO sub-chunk identifiers
const (
	infoTitle   = "INAM"
	infoArtist  = "IART"
	infoProduct = "IPRD"
	infoComment = "ICMT"
)

var managedInfo = []string{infoTitle, infoArtist, infoProduct, infoComment}

type riffChunk struct {
	id   string
	data []byte
}

func (c riffChunk) isInfoList() bool {
	return c.id == "LIST" && len(c.data) >= 4 && string(c.data[:4]) == "INFO"
}

// wavCodec replaces the LIST/INFO chunk. Every other chunk, including
// "data", is copied verbatim and in order.
type wavCodec struct{}

func (wavCodec) name() string { return "wav" }

func (wavCodec) embed(data []byte, meta simplelicense.Metadata) ([]byte, error) {
	chunks, trailer, err := parseWAV(data)
	if err != nil {
		return nil, err
	}

	var entries []riffChunk
	infoIdx := slices.IndexFunc(chunks, riffChunk.isInfoList)
	if infoIdx >= 0 {
		old, err := parseChunks(chunks[infoIdx].data[4:])
		if err != nil {
			return nil, err
		}
		for _, e := range old {
			if !slices.Contains(managedInfo, e.id) {
				entries = append(entries, e)
			}
		}
	}
	for _, v := range []struct{ id, value string }{
		{infoTitle, meta.Title},
		{infoArtist, meta.Artist},
		{infoProduct, meta.Album},
		{infoComment, meta.Comment},
	} {
		if v.value != "" {
			entries = append(entries, riffChunk{id: v.id, data: append([]byte(v.value), 0)})
		}
	}

	var list bytes.Buffer
	list.WriteString("INFO")
	for _, e := range entries {
		writeChunk(&list, e)
	}
	info := riffChunk{id: "LIST", data: list.Bytes()}

	switch {
	case infoIdx >= 0 && len(entries) == 0:
		chunks = slices.Delete(chunks, infoIdx, infoIdx+1)
	case infoIdx >= 0:
		chunks[infoIdx] = info
	case len(entries) > 0:
		chunks = append(chunks, info)
	}

	var body bytes.Buffer
	body.WriteString("WAVE")
	for _, c := range chunks {
		writeChunk(&body, c)
	}
	if uint64(body.Len()) > math.MaxUint32 {
		return nil, unsupportedf("wav file exceeds 4 GiB")
	}

	out := make([]byte, 0, 8+body.Len()+len(trailer))
	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(body.Len()))
	out = append(out, body.Bytes()...)
	out = append(out, trailer...)
	return out, nil
}

func (wavCodec) read(data []byte) (simplelicense.Metadata, error) {
	chunks, _, err := parseWAV(data)
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	var meta simplelicense.Metadata
	for _, c := range chunks {
		if !c.isInfoList() {
			continue
		}
		entries, err := parseChunks(c.data[4:])
		if err != nil {
			return simplelicense.Metadata{}, err
		}
		for _, e := range entries {
			v := string(bytes.TrimRight(e.data, "\x00"))
			switch e.id {
			case infoTitle:
				meta.Title = v
			case infoArtist:
				meta.Artist = v
			case infoProduct:
				meta.Album = v
			case infoComment:
				meta.Comment = v
			}
		}
	}
	return meta, nil
}

// parseWAV returns the chunks inside the RIFF/WAVE form and any bytes after it.
func parseWAV(data []byte) ([]riffChunk, []byte, error) {
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, nil, invalidf("missing RIFF/WAVE header")
	}
	end := 8 + int(binary.LittleEndian.Uint32(data[4:8]))
	if end > len(data) || end < 12 {
		// streaming writers leave the size unset
		end = len(data)
	}

	chunks, err := parseChunks(data[12:end])
	if err != nil {
		return nil, nil, err
	}

	var hasFormat, hasData bool
	for _, c := range chunks {
		switch c.id {
		case "fmt ":
			hasFormat = true
		case "data":
			hasData = true
		}
	}
	if !hasFormat || !hasData {
		return nil, nil, invalidf("wav lacks fmt or data chunk")
	}
	return chunks, data[end:], nil
}

// parseChunks walks a sequence of word-aligned RIFF chunks.
func parseChunks(b []byte) ([]riffChunk, error) {
	var chunks []riffChunk
	off := 0
	for off < len(b) {
		if len(b)-off < 8 {
			if allZero(b[off:]) {
				break
			}
			return nil, invalidf("truncated chunk header at offset %d", off)
		}
		id := string(b[off : off+4])
		size := int(binary.LittleEndian.Uint32(b[off+4 : off+8]))
		start := off + 8
		if size > len(b)-start {
			return nil, invalidf("chunk %q of %d bytes exceeds container", id, size)
		}
		chunks = append(chunks, riffChunk{id: id, data: b[start : start+size]})
		off = start + size + size&1
	}
	return chunks, nil
}

func writeChunk(buf *bytes.Buffer, c riffChunk) {
	buf.WriteString(c.id)
	var size [4]byte
	binary.LittleEndian.PutUint32(size[:], uint32(len(c.data)))
	buf.Write(size[:])
	buf.Write(c.data)
	if len(c.data)&1 == 1 {
		buf.WriteByte(0)
	}
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
