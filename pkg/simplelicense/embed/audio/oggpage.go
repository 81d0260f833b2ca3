package audio

import (
	"encoding/binary"
)

const (
	oggContinued = 0x01
	oggBOS       = 0x02
	oggEOS       = 0x04

	oggHeaderSize  = 27
	oggMaxSegments = 255
	oggNoGranule   = ^uint64(0)
)

var oggCapture = []byte("OggS")

type oggPage struct {
	headerType byte
	granule    uint64
	serial     uint32
	seq        uint32
	segments   []byte
	payload    []byte
}

// parseOggPages splits data into pages and verifies every checksum.
func parseOggPages(data []byte) ([]oggPage, error) {
	var pages []oggPage
	for off := 0; off < len(data); {
		if len(data)-off < oggHeaderSize || string(data[off:off+4]) != string(oggCapture) {
			return nil, invalidf("missing ogg capture pattern at offset %d", off)
		}
		if data[off+4] != 0 {
			return nil, unsupportedf("ogg stream structure version %d", data[off+4])
		}

		nseg := int(data[off+26])
		headerLen := oggHeaderSize + nseg
		if len(data)-off < headerLen {
			return nil, invalidf("truncated ogg page header at offset %d", off)
		}
		segments := data[off+oggHeaderSize : off+headerLen]
		size := 0
		for _, l := range segments {
			size += int(l)
		}
		if len(data)-off-headerLen < size {
			return nil, invalidf("truncated ogg page at offset %d", off)
		}

		raw := data[off : off+headerLen+size]
		if binary.LittleEndian.Uint32(raw[22:26]) != oggChecksum(raw) {
			return nil, invalidf("ogg page checksum mismatch at offset %d", off)
		}

		pages = append(pages, oggPage{
			headerType: raw[5],
			granule:    binary.LittleEndian.Uint64(raw[6:14]),
			serial:     binary.LittleEndian.Uint32(raw[14:18]),
			seq:        binary.LittleEndian.Uint32(raw[18:22]),
			segments:   segments,
			payload:    raw[headerLen:],
		})
		off += len(raw)
	}
	if len(pages) == 0 {
		return nil, invalidf("empty ogg stream")
	}
	return pages, nil
}

// marshal serializes the page with a freshly computed checksum.
func (p oggPage) marshal() []byte {
	b := make([]byte, oggHeaderSize+len(p.segments)+len(p.payload))
	copy(b, oggCapture)
	b[5] = p.headerType
	binary.LittleEndian.PutUint64(b[6:14], p.granule)
	binary.LittleEndian.PutUint32(b[14:18], p.serial)
	binary.LittleEndian.PutUint32(b[18:22], p.seq)
	b[26] = byte(len(p.segments))
	copy(b[oggHeaderSize:], p.segments)
	copy(b[oggHeaderSize+len(p.segments):], p.payload)
	binary.LittleEndian.PutUint32(b[22:26], oggChecksum(b))
	return b
}

// paginate lays packets out on consecutive pages starting at sequence seq.
// Pages on which no packet ends carry no granule position.
func paginate(packets [][]byte, serial uint32, seq uint32) []oggPage {
	var pages []oggPage
	cur := oggPage{serial: serial, seq: seq, granule: oggNoGranule}

	flush := func(continued bool) {
		pages = append(pages, cur)
		seq++
		cur = oggPage{serial: serial, seq: seq, granule: oggNoGranule}
		if continued {
			cur.headerType = oggContinued
		}
	}

	for _, pkt := range packets {
		lacing := lacingValues(len(pkt))
		off := 0
		for i, l := range lacing {
			if len(cur.segments) == oggMaxSegments {
				flush(i > 0)
			}
			cur.segments = append(cur.segments, l)
			cur.payload = append(cur.payload, pkt[off:off+int(l)]...)
			off += int(l)
		}
		cur.granule = 0
	}
	if len(cur.segments) > 0 {
		pages = append(pages, cur)
	}
	return pages
}

func lacingValues(n int) []byte {
	out := make([]byte, 0, n/255+1)
	for ; n >= 255; n -= 255 {
		out = append(out, 255)
	}
	return append(out, byte(n))
}

var oggCRCTable = func() [256]uint32 {
	var t [256]uint32
	for i := range t {
		r := uint32(i) << 24
		for j := 0; j < 8; j++ {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04c11db7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

// oggChecksum computes the page CRC with the checksum field read as zero.
func oggChecksum(page []byte) uint32 {
	var crc uint32
	for i, b := range page {
		if i >= 22 && i < 26 {
			b = 0
		}
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^b]
	}
	return crc
}
