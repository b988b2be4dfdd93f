// Package image turns raw uploads into the opaque data-URI strings the
// store persists in plain text columns.
package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"truecraft/internal/domain/service"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	maxFileSize = 5 * 1024 * 1024

	maxWidth  = 800
	maxHeight = 600

	thumbnailSize = 150

	jpegQuality      = 85
	thumbnailQuality = 80

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Processor implements service.ImageProcessor: bounded JPEG data URIs
// in, bounded JPEG data URIs out.
type Processor struct{}

var _ service.ImageProcessor = (*Processor)(nil)

// NewProcessor builds the processor.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process validates the upload, flattens transparency onto white,
// downscales to at most 800x600 and encodes a JPEG data URI.
func (p *Processor) Process(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("no image data supplied")
	}
	if len(data) > maxFileSize {
		return "", errors.Errorf("image exceeds the %dMB limit", maxFileSize/(1024*1024))
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "invalid image file")
	}

	flattened := flatten(decoded)
	bounded := scaleDown(flattened, maxWidth, maxHeight)

	return encodeDataURI(bounded, jpegQuality)
}

// Thumbnail produces a 150x150-bounded preview from a stored reference.
func (p *Processor) Thumbnail(stored string) (string, error) {
	if !strings.HasPrefix(stored, "data:image") {
		return "", errors.New("stored reference is not an image data URI")
	}

	parts := strings.SplitN(stored, ",", 2)
	if len(parts) != 2 {
		return "", errors.New("malformed image data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", errors.Wrap(err, "failed to decode stored image")
	}

	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", errors.Wrap(err, "failed to decode stored image")
	}

	bounded := scaleDown(flatten(decoded), thumbnailSize, thumbnailSize)

	return encodeDataURI(bounded, thumbnailQuality)
}

// flatten composites the image onto a white background so transparent
// uploads survive the JPEG encode.
func flatten(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Over)

	return dst
}

// scaleDown shrinks the image to fit within the given box, preserving
// aspect ratio. Images already within bounds pass through untouched.
func scaleDown(src *image.RGBA, boxWidth, boxHeight int) *image.RGBA {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= boxWidth && height <= boxHeight {
		return src
	}

	ratioW := float64(boxWidth) / float64(width)
	ratioH := float64(boxHeight) / float64(height)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}

	newWidth := int(float64(width) * ratio)
	newHeight := int(float64(height) * ratio)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)

	return dst
}

func encodeDataURI(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", errors.Wrap(err, "failed to encode image")
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
