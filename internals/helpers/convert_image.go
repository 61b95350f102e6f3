// file: internals/helpers/convert_image.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	PortraitSide     = 400
	PortraitMaxBytes = 2 * 1024 * 1024
)

// ValidatePortrait enforces the portrait contract: at most 2 MB and exactly
// 400x400 pixels. Returns the decoded image for re-encoding.
func ValidatePortrait(fileHeader *multipart.FileHeader) (image.Image, error) {
	if fileHeader.Size > PortraitMaxBytes {
		return nil, fmt.Errorf("portrait exceeds %d bytes (got %d)", PortraitMaxBytes, fileHeader.Size)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open portrait: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, io.LimitReader(src, PortraitMaxBytes+1)); err != nil {
		return nil, fmt.Errorf("read portrait: %w", err)
	}
	if buf.Len() > PortraitMaxBytes {
		return nil, fmt.Errorf("portrait exceeds %d bytes", PortraitMaxBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode portrait: %w", err)
	}
	b := img.Bounds()
	if b.Dx() != PortraitSide || b.Dy() != PortraitSide {
		return nil, fmt.Errorf("portrait must be exactly %dx%d, got %dx%d",
			PortraitSide, PortraitSide, b.Dx(), b.Dy())
	}
	return img, nil
}

// EncodePortraitWebP normalizes orientation and re-encodes to webp for
// storage, which keeps uploads uniform regardless of the source format.
func EncodePortraitWebP(img image.Image) ([]byte, error) {
	normalized := imaging.Clone(img)
	out := new(bytes.Buffer)
	if err := webp.Encode(out, normalized, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}
