package audio

import (
	"bytes"

	"github.com/bogem/id3v2/v2"

	"github.com/tendant/simple-license/pkg/simplelicense"
)

const (
	id3HeaderSize     = 10
	id3FooterFlag     = 0x10
	maxTagPadding     = 64 * 1024
	commentLanguage   = "eng"
	commentDesc       = "license"
	txxxInstitution   = "INSTITUTION"
	txxxWebsite       = "WEBSITE"
	txxxContact       = "CONTACT"
	userDefinedTextID = "TXXX"
)

// mp3Codec replaces the leading ID3v2 tag and copies the MPEG frames as is.
type mp3Codec struct{}

func (mp3Codec) name() string { return "mp3" }

func (mp3Codec) embed(data []byte, meta simplelicense.Metadata) ([]byte, error) {
	tagEnd, audioStart, err := locateMPEGAudio(data)
	if err != nil {
		return nil, err
	}

	tag := id3v2.NewEmptyTag()
	if tagEnd > 0 {
		tag, err = id3v2.ParseReader(bytes.NewReader(data[:tagEnd]), id3v2.Options{Parse: true})
		if err != nil {
			return nil, invalidf("id3v2: %v", err)
		}
	}

	tag.SetVersion(4)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	setTextFrame(tag, tag.CommonID("Title"), meta.Title)
	setTextFrame(tag, tag.CommonID("Artist"), meta.Artist)
	setTextFrame(tag, tag.CommonID("Album/Movie/Show title"), meta.Album)

	commentID := tag.CommonID("Comments")
	tag.DeleteFrames(commentID)
	if meta.Comment != "" {
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    commentLanguage,
			Description: commentDesc,
			Text:        meta.Comment,
		})
	}

	setUserDefinedFrames(tag, map[string]string{
		txxxInstitution: meta.Institution,
		txxxWebsite:     meta.Website,
		txxxContact:     meta.Contact,
	})

	var buf bytes.Buffer
	if _, err := tag.WriteTo(&buf); err != nil {
		return nil, err
	}
	buf.Write(data[audioStart:])
	return buf.Bytes(), nil
}

func (mp3Codec) read(data []byte) (simplelicense.Metadata, error) {
	if _, _, err := locateMPEGAudio(data); err != nil {
		return simplelicense.Metadata{}, err
	}
	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return simplelicense.Metadata{}, invalidf("id3v2: %v", err)
	}

	meta := simplelicense.Metadata{
		Title:  tag.Title(),
		Artist: tag.Artist(),
		Album:  tag.Album(),
	}
	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if cf, ok := f.(id3v2.CommentFrame); ok && cf.Description == commentDesc {
			meta.Comment = cf.Text
			break
		}
	}
	for _, f := range tag.GetFrames(userDefinedTextID) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		switch udtf.Description {
		case txxxInstitution:
			meta.Institution = udtf.Value
		case txxxWebsite:
			meta.Website = udtf.Value
		case txxxContact:
			meta.Contact = udtf.Value
		}
	}
	return meta, nil
}

func setTextFrame(tag *id3v2.Tag, id, value string) {
	tag.DeleteFrames(id)
	if value != "" {
		tag.AddTextFrame(id, id3v2.EncodingUTF8, value)
	}
}

// setUserDefinedFrames replaces the TXXX frames named in values and keeps the rest.
func setUserDefinedFrames(tag *id3v2.Tag, values map[string]string) {
	var kept []id3v2.UserDefinedTextFrame
	for _, f := range tag.GetFrames(userDefinedTextID) {
		udtf, ok := f.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}
		if _, managed := values[udtf.Description]; !managed {
			kept = append(kept, udtf)
		}
	}
	tag.DeleteFrames(userDefinedTextID)
	for _, udtf := range kept {
		tag.AddUserDefinedTextFrame(udtf)
	}
	for _, desc := range []string{txxxInstitution, txxxWebsite, txxxContact} {
		if v := values[desc]; v != "" {
			tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
				Encoding:    id3v2.EncodingUTF8,
				Description: desc,
				Value:       v,
			})
		}
	}
}

// locateMPEGAudio returns the end of the leading ID3v2 tag and the offset of
// the first MPEG audio frame. Zero padding between the two is skipped.
func locateMPEGAudio(data []byte) (tagEnd, audioStart int, err error) {
	tagEnd, err = id3v2Length(data)
	if err != nil {
		return 0, 0, err
	}

	audioStart = tagEnd
	for audioStart < len(data) && data[audioStart] == 0 && audioStart-tagEnd < maxTagPadding {
		audioStart++
	}
	if !isMPEGFrameHeader(data[audioStart:]) {
		return 0, 0, invalidf("no MPEG audio frame at offset %d", audioStart)
	}
	return tagEnd, audioStart, nil
}

// id3v2Length returns the full size of a leading ID3v2 tag, or 0 without one.
func id3v2Length(data []byte) (int, error) {
	if len(data) < id3HeaderSize || string(data[:3]) != "ID3" {
		return 0, nil
	}
	size := 0
	for _, b := range data[6:10] {
		if b&0x80 != 0 {
			return 0, invalidf("id3v2 size is not synchsafe")
		}
		size = size<<7 | int(b)
	}
	total := id3HeaderSize + size
	if data[5]&id3FooterFlag != 0 {
		total += id3HeaderSize
	}
	if total > len(data) {
		return 0, invalidf("id3v2 tag of %d bytes exceeds file", total)
	}
	return total, nil
}

// isMPEGFrameHeader checks the frame sync and rejects reserved field values.
func isMPEGFrameHeader(b []byte) bool {
	if len(b) < 4 {
		return false
	}
	if b[0] != 0xFF || b[1]&0xE0 != 0xE0 {
		return false
	}
	version := (b[1] >> 3) & 0x03
	layer := (b[1] >> 1) & 0x03
	bitrate := b[2] >> 4
	sampleRate := (b[2] >> 2) & 0x03
	return version != 0x01 && layer != 0x00 && bitrate != 0x0F && sampleRate != 0x03
}
