package cli

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"testing"
)

// makeExifPayload builds a minimal EXIF APP1 payload (starting with
// "Exif\x00\x00") containing a single Orientation tag (0x0112) in IFD0.
func makeExifPayload(orientation uint16) []byte {
	buf := &bytes.Buffer{}
	buf.Write([]byte("Exif\x00\x00"))
	buf.Write([]byte{'I', 'I'})
	_ = binary.Write(buf, binary.LittleEndian, uint16(0x2A))
	_ = binary.Write(buf, binary.LittleEndian, uint32(8))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(0x0112))
	_ = binary.Write(buf, binary.LittleEndian, uint16(3))
	_ = binary.Write(buf, binary.LittleEndian, uint32(1))
	_ = binary.Write(buf, binary.LittleEndian, uint16(orientation))
	_ = binary.Write(buf, binary.LittleEndian, uint16(0))
	_ = binary.Write(buf, binary.LittleEndian, uint32(0))
	return buf.Bytes()
}

func makeTestJPEGWithOrientation(t *testing.T, orientation uint16) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 128, 255})
		}
	}
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80}); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	jpegBytes := buf.Bytes()

	// Splice a minimal APP1/EXIF segment in right after the SOI marker.
	exif := makeExifPayload(orientation)
	var out bytes.Buffer
	out.Write(jpegBytes[:2]) // SOI
	out.WriteByte(0xFF)
	out.WriteByte(0xE1)
	size := uint16(len(exif) + 2)
	_ = binary.Write(&out, binary.BigEndian, size)
	out.Write(exif)
	out.Write(jpegBytes[2:])
	return out.Bytes()
}

func TestLoadImageAutoOrientsRotatedJPEG(t *testing.T) {
	data := makeTestJPEGWithOrientation(t, 6) // 90 CW
	f, err := os.CreateTemp("", "orig-*.jpg")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, format, err := LoadImage(f.Name())
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected format jpeg, got %q", format)
	}
	b := img.Bounds()
	// orientation 6 swaps width/height relative to the 16x16 square source,
	// which stays square, so instead check the pixel content was rotated:
	// the (0,0) corner of a 90-CW rotation holds the original bottom-left
	// pixel, which this fixture fills as color.RGBA{0, 150, 128, 255}.
	r, g, _, _ := img.At(b.Min.X, b.Min.Y).RGBA()
	if !near(r>>8, 0) || !near(g>>8, 150) {
		t.Fatalf("expected rotated corner pixel near (0,150), got (%d,%d)", r>>8, g>>8)
	}
}

// near tolerates JPEG quantization noise when checking an expected channel value.
func near(got uint32, want uint32) bool {
	d := int(got) - int(want)
	if d < 0 {
		d = -d
	}
	return d <= 12
}

func TestLoadImageLeavesUnrotatedOrientationAlone(t *testing.T) {
	data := makeTestJPEGWithOrientation(t, 1)
	f, err := os.CreateTemp("", "orig2-*.jpg")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	if _, err := f.Write(data); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, _, err := LoadImage(f.Name())
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	r, g, _, _ := img.At(0, 0).RGBA()
	if !near(r>>8, 0) || !near(g>>8, 0) {
		t.Fatalf("expected top-left corner pixel near (0,0), got (%d,%d)", r>>8, g>>8)
	}
}
