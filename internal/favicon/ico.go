package favicon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

type icoHeader struct {
	Reserved uint16
	Type     uint16 // 1 = icon
	Count    uint16
}

type icoEntry struct {
	Width      uint8 // 0 means 256
	Height     uint8
	Colors     uint8
	Reserved   uint8
	Planes     uint16
	BitCount   uint16
	BytesInRes uint32
	Offset     uint32
}

// EncodeICO writes images into one .ico container using PNG-compressed
// entries. Images must be at most 256 pixels on each side.
func EncodeICO(w io.Writer, images []image.Image) error {
	if len(images) == 0 {
		return fmt.Errorf("ico: no images")
	}

	blobs := make([][]byte, len(images))
	entries := make([]icoEntry, len(images))
	offset := uint32(icoHeaderSize + icoEntrySize*len(images))

	for i, img := range images {
		b := img.Bounds()
		if b.Dx() > 256 || b.Dy() > 256 {
			return fmt.Errorf("ico: image %d is %dx%d, max 256x256", i, b.Dx(), b.Dy())
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("ico: encode image %d: %w", i, err)
		}
		blobs[i] = buf.Bytes()
		entries[i] = icoEntry{
			Width:      uint8(b.Dx() % 256),
			Height:     uint8(b.Dy() % 256),
			Planes:     1,
			BitCount:   32,
			BytesInRes: uint32(buf.Len()),
			Offset:     offset,
		}
		offset += uint32(buf.Len())
	}

	header := icoHeader{Type: 1, Count: uint16(len(images))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, entries); err != nil {
		return err
	}
	for _, blob := range blobs {
		if _, err := w.Write(blob); err != nil {
			return err
		}
	}
	return nil
}
