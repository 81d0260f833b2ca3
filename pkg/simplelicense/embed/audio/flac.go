package audio

import (
	"bytes"
	"slices"

	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

// flacCodec rewrites the VORBIS_COMMENT metadata block. Audio frames are
// carried through go-flac untouched.
type flacCodec struct{}

func (flacCodec) name() string { return "flac" }

func (flacCodec) embed(data []byte, meta simplelicense.Metadata) ([]byte, error) {
	f, err := parseFLAC(data)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(f.Meta, func(b *flac.MetaDataBlock) bool {
		return b.Type == flac.VorbisComment
	})

	var cmt *flacvorbis.MetaDataBlockVorbisComment
	if idx >= 0 {
		cmt, err = parseCommentBody(f.Meta[idx].Data)
		if err != nil {
			return nil, err
		}
	} else {
		cmt = flacvorbis.New()
	}

	if err := applyComments(cmt, meta); err != nil {
		return nil, err
	}

	block := cmt.Marshal()
	if idx >= 0 {
		f.Meta[idx] = &block
	} else {
		// STREAMINFO must stay first
		f.Meta = slices.Insert(f.Meta, 1, &block)
	}
	return f.Marshal(), nil
}

func (flacCodec) read(data []byte) (simplelicense.Metadata, error) {
	f, err := parseFLAC(data)
	if err != nil {
		return simplelicense.Metadata{}, err
	}
	for _, b := range f.Meta {
		if b.Type != flac.VorbisComment {
			continue
		}
		cmt, err := parseCommentBody(b.Data)
		if err != nil {
			return simplelicense.Metadata{}, err
		}
		return metadataFromComments(cmt.Comments), nil
	}
	return simplelicense.Metadata{}, nil
}

func parseFLAC(data []byte) (*flac.File, error) {
	if !bytes.HasPrefix(data, []byte("fLaC")) {
		return nil, invalidf("missing fLaC stream marker")
	}
	f, err := flac.ParseBytes(bytes.NewReader(data))
	if err != nil {
		return nil, invalidf("flac: %v", err)
	}
	if len(f.Meta) == 0 || f.Meta[0].Type != flac.StreamInfo {
		return nil, invalidf("flac stream does not start with STREAMINFO")
	}
	return f, nil
}
