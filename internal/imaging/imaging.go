package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the maximum width or height for uploaded images.
const MaxDimension = 1600

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// extensions maps an accepted MIME type to the stored file extension.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ErrUnsupportedFormat is returned for inputs that are not an accepted
// image type.
type ErrUnsupportedFormat struct {
	Detected string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported image format: %s", e.Detected)
}

// ProcessResult contains the processed image data.
type ProcessResult struct {
	Data []byte
	MIME string
	Ext  string
}

// Process reads image data and validates the format by sniffing bytes
// rather than trusting client headers. JPEG and PNG inputs larger than
// MaxDimension are downscaled and re-encoded; WebP and GIF pass through
// unchanged (re-encoding would drop animation frames).
func Process(r io.Reader) (*ProcessResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, &ErrUnsupportedFormat{Detected: detected}
	}

	result := &ProcessResult{Data: data, MIME: detected, Ext: extensions[detected]}
	if detected != "image/jpeg" && detected != "image/png" {
		return result, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	scaled := downscale(img, MaxDimension)
	if scaled == img {
		return result, nil
	}

	var buf bytes.Buffer
	if format == "png" {
		err = png.Encode(&buf, scaled)
	} else {
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: JPEGQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}

	result.Data = buf.Bytes()
	return result, nil
}

// downscale resizes the image so neither dimension exceeds maxDim,
// using Catmull-Rom interpolation. Returns the original image if
// already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	// Register decoders (jpeg is registered by default, but be explicit).
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
