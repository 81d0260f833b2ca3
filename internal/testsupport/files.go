package testsupport

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// MP3FrameHeader is an MPEG-1 Layer III, 128 kbit/s, 44.1 kHz frame header
var MP3FrameHeader = []byte{0xFF, 0xFB, 0x90, 0x64}

// MP3FrameSize is the length of a frame with MP3FrameHeader and no padding
const MP3FrameSize = 417

// MinimalMP3 returns frames MPEG audio frames without any tag. Frame bodies
// carry a counter so payload changes are detectable.
func MinimalMP3(frames int) []byte {
	out := make([]byte, 0, frames*MP3FrameSize)
	for i := 0; i < frames; i++ {
		frame := make([]byte, MP3FrameSize)
		copy(frame, MP3FrameHeader)
		for j := len(MP3FrameHeader); j < len(frame); j++ {
			frame[j] = byte(i + j)
		}
		out = append(out, frame...)
	}
	return out
}

// FLACFrames is the fake frame payload appended by MinimalFLAC
var FLACFrames = []byte{0xFF, 0xF8, 0x69, 0x08, 0x00, 0x12, 0x34, 0x56, 0x78, 0x9A}

// MinimalFLAC returns a stream with a STREAMINFO block followed by
// FLACFrames. With padding set a PADDING block is added after STREAMINFO.
func MinimalFLAC(padding bool) []byte {
	var buf bytes.Buffer
	buf.WriteString("fLaC")

	streamInfo := make([]byte, 34)
	binary.BigEndian.PutUint16(streamInfo[0:2], 4096)
	binary.BigEndian.PutUint16(streamInfo[2:4], 4096)
	// 44100 Hz, 2 channels, 16 bits per sample, 0 total samples
	streamInfo[10] = 0x0A
	streamInfo[11] = 0xC4
	streamInfo[12] = 0x42
	streamInfo[13] = 0xF0

	writeBlock := func(blockType byte, last bool, data []byte) {
		header := blockType
		if last {
			header |= 0x80
		}
		buf.WriteByte(header)
		buf.Write([]byte{byte(len(data) >> 16), byte(len(data) >> 8), byte(len(data))})
		buf.Write(data)
	}

	writeBlock(0, !padding, streamInfo)
	if padding {
		writeBlock(1, true, make([]byte, 16))
	}
	buf.Write(FLACFrames)
	return buf.Bytes()
}

// MinimalWAV returns a 16-bit mono PCM file with samples bytes of audio.
// Odd lengths exercise chunk padding.
func MinimalWAV(samples int) []byte {
	var chunks bytes.Buffer
	chunks.WriteString("WAVE")

	format := make([]byte, 16)
	binary.LittleEndian.PutUint16(format[0:2], 1)
	binary.LittleEndian.PutUint16(format[2:4], 1)
	binary.LittleEndian.PutUint32(format[4:8], 8000)
	binary.LittleEndian.PutUint32(format[8:12], 16000)
	binary.LittleEndian.PutUint16(format[12:14], 2)
	binary.LittleEndian.PutUint16(format[14:16], 16)
	writeRIFFChunk(&chunks, "fmt ", format)

	writeRIFFChunk(&chunks, "data", WAVSamples(samples))

	var out bytes.Buffer
	out.WriteString("RIFF")
	binary.Write(&out, binary.LittleEndian, uint32(chunks.Len()))
	out.Write(chunks.Bytes())
	return out.Bytes()
}

// WAVSamples returns the payload of the data chunk built by MinimalWAV.
func WAVSamples(samples int) []byte {
	data := make([]byte, samples)
	for i := range data {
		data[i] = byte(i * 7)
	}
	return data
}

func writeRIFFChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
}

// PDFContent is the page content stream of MinimalPDF
const PDFContent = "0 0 m 100 100 l S"

// MinimalPDF returns a single page PDF. When info is not empty it is written
// as the body of a document information dictionary, e.g. "/Producer (x)".
func MinimalPDF(info string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] /Contents 4 0 R /Resources << >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(PDFContent), PDFContent),
	}
	if info != "" {
		objects = append(objects, "<< "+info+" >>")
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	buf.WriteString("trailer\n")
	if info != "" {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R /Info %d 0 R >>\n", len(objects)+1, len(objects))
	} else {
		fmt.Fprintf(&buf, "<< /Size %d /Root 1 0 R >>\n", len(objects)+1)
	}
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}
