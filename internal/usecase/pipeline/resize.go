package pipeline

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"cms-backend/internal/domain"

	xdraw "golang.org/x/image/draw"
)

// resizeAndEncode scales src to targetWidth preserving aspect ratio and
// encodes it in the fixed derivative format. Sources narrower than the
// target are re-encoded at their own width, never upscaled. The transform
// is deterministic so redelivered events reproduce identical bytes.
func resizeAndEncode(src image.Image, targetWidth int) ([]byte, error) {
	resized := resizeToWidth(src, targetWidth)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: domain.DerivativeJPEGQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode derivative: %w", err)
	}

	return buf.Bytes(), nil
}

func resizeToWidth(src image.Image, targetWidth int) image.Image {
	bounds := src.Bounds()
	origWidth := bounds.Dx()
	origHeight := bounds.Dy()

	width := targetWidth
	if origWidth <= width {
		width = origWidth
	}

	height := origHeight * width / origWidth
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}
