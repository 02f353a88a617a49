package cli

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// makeOpaqueGradient returns a w x h opaque image whose channels vary with
// position.
func makeOpaqueGradient(w, h int) *image.NRGBA {
	img := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / max(1, w-1)), G: uint8(y * 255 / max(1, h-1)), B: 90, A: 255})
		}
	}
	return img
}

// exifPayload builds an APP1 payload holding an Orientation entry in IFD0
// and, when maker is set, a Make entry.
func exifPayload(order binary.ByteOrder, maker string, orientation uint16) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString("Exif\x00\x00")
	if order == binary.BigEndian {
		buf.WriteString("MM")
	} else {
		buf.WriteString("II")
	}
	_ = binary.Write(buf, order, uint16(0x2A))
	_ = binary.Write(buf, order, uint32(8))

	n := uint16(1)
	if maker != "" {
		n++
	}
	_ = binary.Write(buf, order, n)
	dataOff := uint32(8 + 2 + 12*int(n) + 4)
	if maker != "" {
		_ = binary.Write(buf, order, uint16(tagMake))
		_ = binary.Write(buf, order, uint16(2))
		_ = binary.Write(buf, order, uint32(len(maker)+1))
		_ = binary.Write(buf, order, dataOff)
	}
	_ = binary.Write(buf, order, uint16(tagOrientation))
	_ = binary.Write(buf, order, uint16(3))
	_ = binary.Write(buf, order, uint32(1))
	_ = binary.Write(buf, order, orientation)
	_ = binary.Write(buf, order, uint16(0))
	_ = binary.Write(buf, order, uint32(0))
	if maker != "" {
		buf.WriteString(maker)
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// jpegWithAPP1 encodes img and inserts payload as an APP1 segment right
// after SOI.
func jpegWithAPP1(t *testing.T, img image.Image, payload []byte) []byte {
	t.Helper()
	var enc bytes.Buffer
	if err := jpeg.Encode(&enc, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatalf("jpeg encode: %v", err)
	}
	b := enc.Bytes()
	out := append([]byte{}, b[:2]...)
	if payload != nil {
		segLen := len(payload) + 2
		out = append(out, 0xFF, 0xE1, byte(segLen>>8), byte(segLen))
		out = append(out, payload...)
	}
	return append(out, b[2:]...)
}
