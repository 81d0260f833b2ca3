package audio

import (
	"bytes"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

var (
	vorbisIDPrefix      = []byte("\x01vorbis")
	vorbisCommentPrefix = []byte("\x03vorbis")
	opusIDPrefix        = []byte("OpusHead")
	opusCommentPrefix   = []byte("OpusTags")
)

// oggStream describes the header layout of the first logical bitstream
type oggStream struct {
	codec         string
	serial        uint32
	headerPackets int
	commentPrefix []byte
	framingBit    bool
}

func detectOggStream(first oggPage) (oggStream, error) {
	if first.headerType&oggBOS == 0 {
		return oggStream{}, invalidf("first ogg page is not a beginning of stream")
	}
	switch {
	case bytes.HasPrefix(first.payload, vorbisIDPrefix):
		return oggStream{codec: "vorbis", serial: first.serial, headerPackets: 3, commentPrefix: vorbisCommentPrefix, framingBit: true}, nil
	case bytes.HasPrefix(first.payload, opusIDPrefix):
		return oggStream{codec: "opus", serial: first.serial, headerPackets: 2, commentPrefix: opusCommentPrefix}, nil
	}
	return oggStream{}, unsupportedf("ogg stream is neither vorbis nor opus")
}

// oggCodec rewrites the comment header packet of an Ogg Vorbis or Opus
// stream. Header pages are repaginated; audio pages keep their payload and
// granule position and only get new sequence numbers and checksums.
type oggCodec struct{}

func (oggCodec) name() string { return "ogg" }

func (oggCodec) embed(data []byte, meta simplelicense.Metadata) ([]byte, error) {
	pages, err := parseOggPages(data)
	if err != nil {
		return nil, err
	}
	stream, err := detectOggStream(pages[0])
	if err != nil {
		return nil, err
	}
	packets, lastHeaderPage, err := collectHeaderPackets(pages, stream)
	if err != nil {
		return nil, err
	}

	comment, err := rewriteCommentPacket(packets[1], stream, meta)
	if err != nil {
		return nil, err
	}
	headers := append([][]byte{comment}, packets[2:]...)
	newHeaderPages := paginate(headers, stream.serial, pages[0].seq+1)

	oldCount := lastHeaderPage
	delta := uint32(len(newHeaderPages) - oldCount)

	var buf bytes.Buffer
	buf.Write(pages[0].marshal())
	for _, p := range newHeaderPages {
		buf.Write(p.marshal())
	}
	for _, p := range pages[lastHeaderPage+1:] {
		if p.serial == stream.serial {
			p.seq += delta
		}
		buf.Write(p.marshal())
	}
	return buf.Bytes(), nil
}

func (oggCodec) read(data []byte) (simplelicense.Metadata, error) {
	pages, err := parseOggPages(data)
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	stream, err := detectOggStream(pages[0])
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	packets, _, err := collectHeaderPackets(pages, stream)
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	body, _, err := commentBody(packets[1], stream)
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	cmt, err := parseCommentBody(body)
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	return metadataFromComments(cmt.Comments), nil
}

// collectHeaderPackets reassembles the header packets of stream and returns
// them with the index of the page that completes the last one. The
// identification packet must fill page 0 and the last header packet must
// end its page.
func collectHeaderPackets(pages []oggPage, stream oggStream) ([][]byte, int, error) {
	var packets [][]byte
	var cur []byte
	for i, p := range pages {
		if p.serial != stream.serial {
			return nil, 0, unsupportedf("multiplexed ogg headers")
		}
		if i > 0 && p.headerType&oggContinued == 0 && len(cur) > 0 {
			return nil, 0, invalidf("ogg page %d drops a continued packet", i)
		}
		off := 0
		for _, l := range p.segments {
			cur = append(cur, p.payload[off:off+int(l)]...)
			off += int(l)
			if l == 255 {
				continue
			}
			packets = append(packets, cur)
			cur = nil
			if len(packets) == 1 && (i != 0 || off != len(p.payload)) {
				return nil, 0, invalidf("identification header does not fill the first page")
			}
			if len(packets) == stream.headerPackets {
				if off != len(p.payload) {
					return nil, 0, invalidf("%s headers do not end on a page boundary", stream.codec)
				}
				return packets, i, nil
			}
		}
	}
	return nil, 0, invalidf("ogg stream ends inside the %s headers", stream.codec)
}

// commentBody splits a comment packet into the comment body and any bytes
// that follow it.
func commentBody(packet []byte, stream oggStream) (body, tail []byte, err error) {
	if !bytes.HasPrefix(packet, stream.commentPrefix) {
		return nil, nil, invalidf("missing %s comment header", stream.codec)
	}
	rest := packet[len(stream.commentPrefix):]
	n, err := commentBodyLen(rest)
	if err != nil {
		return nil, nil, err
	}
	if stream.framingBit && (n >= len(rest) || rest[n]&0x01 == 0) {
		return nil, nil, invalidf("vorbis comment header lacks framing bit")
	}
	return rest[:n], rest[n:], nil
}

func rewriteCommentPacket(packet []byte, stream oggStream, meta simplelicense.Metadata) ([]byte, error) {
	body, tail, err := commentBody(packet, stream)
	if err != nil {
		return nil, err
	}
	cmt, err := parseCommentBody(body)
	if err != nil {
		return nil, err
	}
	if err := applyComments(cmt, meta); err != nil {
		return nil, err
	}

	block := cmt.Marshal()
	out := make([]byte, 0, len(stream.commentPrefix)+len(block.Data)+len(tail))
	out = append(out, stream.commentPrefix...)
	out = append(out, block.Data...)
	if stream.framingBit {
		out = append(out, 0x01)
	} else {
		// opus keeps optional binary data after the comments
		out = append(out, tail...)
	}
	return out, nil
}
