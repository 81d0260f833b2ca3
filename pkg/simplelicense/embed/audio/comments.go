package audio

import (
	"encoding/binary"
	"slices"
	"strings"

	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

// Vorbis comment field names managed by the embedder
const (
	fieldTitle        = "TITLE"
	fieldArtist       = "ARTIST"
	fieldAlbum        = "ALBUM"
	fieldOrganization = "ORGANIZATION"
	fieldWebsite      = "WEBSITE"
	fieldContact      = "CONTACT"
)

var managedFields = []string{fieldTitle, fieldArtist, fieldAlbum, fieldOrganization, fieldWebsite, fieldContact}

// applyComments replaces the managed fields of cmt and keeps every other comment.
func applyComments(cmt *flacvorbis.MetaDataBlockVorbisComment, meta simplelicense.Metadata) error {
	kept := cmt.Comments[:0:0]
	for _, c := range cmt.Comments {
		if !slices.Contains(managedFields, commentKey(c)) {
			kept = append(kept, c)
		}
	}
	cmt.Comments = kept

	values := []struct{ key, value string }{
		{fieldTitle, meta.Title},
		{fieldArtist, meta.Artist},
		{fieldAlbum, meta.Album},
		{fieldOrganization, meta.Institution},
		{fieldWebsite, meta.Website},
		{fieldContact, meta.Contact},
	}
	for _, v := range values {
		if v.value == "" {
			continue
		}
		if err := cmt.Add(v.key, v.value); err != nil {
			return err
		}
	}
	return nil
}

// metadataFromComments maps managed fields back onto Metadata; the first value wins.
func metadataFromComments(comments []string) simplelicense.Metadata {
	var meta simplelicense.Metadata
	set := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	for _, c := range comments {
		i := strings.IndexByte(c, '=')
		if i < 0 {
			continue
		}
		v := c[i+1:]
		switch commentKey(c) {
		case fieldTitle:
			set(&meta.Title, v)
		case fieldArtist:
			set(&meta.Artist, v)
		case fieldAlbum:
			set(&meta.Album, v)
		case fieldOrganization:
			set(&meta.Institution, v)
		case fieldWebsite:
			set(&meta.Website, v)
		case fieldContact:
			set(&meta.Contact, v)
		}
	}
	return meta
}

func commentKey(comment string) string {
	if i := strings.IndexByte(comment, '='); i >= 0 {
		return strings.ToUpper(comment[:i])
	}
	return strings.ToUpper(comment)
}

// commentBodyLen walks a Vorbis comment body (vendor string, count, entries)
// and returns its length, checking every declared length against the buffer.
func commentBodyLen(body []byte) (int, error) {
	off := 0
	readLen := func() (int, error) {
		if len(body)-off < 4 {
			return 0, invalidf("truncated vorbis comment header")
		}
		n := int(binary.LittleEndian.Uint32(body[off:]))
		off += 4
		return n, nil
	}

	vendor, err := readLen()
	if err != nil {
		return 0, err
	}
	if vendor > len(body)-off {
		return 0, invalidf("vendor string exceeds comment block")
	}
	off += vendor

	count, err := readLen()
	if err != nil {
		return 0, err
	}
	for i := 0; i < count; i++ {
		n, err := readLen()
		if err != nil {
			return 0, err
		}
		if n > len(body)-off {
			return 0, invalidf("comment %d exceeds comment block", i)
		}
		off += n
	}
	return off, nil
}

// parseCommentBody decodes a validated Vorbis comment body.
func parseCommentBody(body []byte) (*flacvorbis.MetaDataBlockVorbisComment, error) {
	n, err := commentBodyLen(body)
	if err != nil {
		return nil, err
	}
	cmt, err := flacvorbis.ParseFromMetaDataBlock(flac.MetaDataBlock{Type: flac.VorbisComment, Data: body[:n]})
	if err != nil {
		return nil, invalidf("vorbis comment: %v", err)
	}
	return cmt, nil
}
