// file: internals/helpers/convert_image_test.go
package helper

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"testing"
)

func pngBytes(t *testing.T, side int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func fileHeaderFor(t *testing.T, payload []byte) *multipart.FileHeader {
	t.Helper()
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("image", "portrait.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(body, mw.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["image"][0]
}

func TestValidatePortrait(t *testing.T) {
	img, err := ValidatePortrait(fileHeaderFor(t, pngBytes(t, PortraitSide)))
	if err != nil {
		t.Fatalf("ValidatePortrait: %v", err)
	}
	if b := img.Bounds(); b.Dx() != PortraitSide || b.Dy() != PortraitSide {
		t.Fatalf("bounds = %v", b)
	}
}

func TestValidatePortraitWrongSize(t *testing.T) {
	if _, err := ValidatePortrait(fileHeaderFor(t, pngBytes(t, 100))); err == nil {
		t.Fatal("want size error, got nil")
	}
}

func TestValidatePortraitNotAnImage(t *testing.T) {
	if _, err := ValidatePortrait(fileHeaderFor(t, []byte("plain text"))); err == nil {
		t.Fatal("want decode error, got nil")
	}
}

func TestEncodePortraitWebP(t *testing.T) {
	img, err := ValidatePortrait(fileHeaderFor(t, pngBytes(t, PortraitSide)))
	if err != nil {
		t.Fatalf("ValidatePortrait: %v", err)
	}
	out, err := EncodePortraitWebP(img)
	if err != nil {
		t.Fatalf("EncodePortraitWebP: %v", err)
	}
	// RIFF....WEBP container header.
	if len(out) < 12 || string(out[:4]) != "RIFF" || string(out[8:12]) != "WEBP" {
		t.Fatalf("output is not webp, first bytes: %q", out[:min(12, len(out))])
	}
}
