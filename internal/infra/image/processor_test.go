package image

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()

	require.True(t, strings.HasPrefix(uri, dataURIPrefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, dataURIPrefix))
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)

	return decoded
}

func TestProcessor_Process_BoundsOversizedImages(t *testing.T) {
	p := NewProcessor()

	uri, err := p.Process(encodePNG(t, 1600, 1200))
	require.NoError(t, err)

	decoded := decodeDataURI(t, uri)
	assert.LessOrEqual(t, decoded.Bounds().Dx(), maxWidth)
	assert.LessOrEqual(t, decoded.Bounds().Dy(), maxHeight)
}

func TestProcessor_Process_KeepsSmallImagesUntouched(t *testing.T) {
	p := NewProcessor()

	uri, err := p.Process(encodePNG(t, 200, 100))
	require.NoError(t, err)

	decoded := decodeDataURI(t, uri)
	assert.Equal(t, 200, decoded.Bounds().Dx())
	assert.Equal(t, 100, decoded.Bounds().Dy())
}

func TestProcessor_Process_RejectsGarbageAndEmptyInput(t *testing.T) {
	p := NewProcessor()

	_, err := p.Process(nil)
	assert.Error(t, err)

	_, err = p.Process([]byte("not an image"))
	assert.Error(t, err)
}

func TestProcessor_Process_RejectsOversizedFiles(t *testing.T) {
	p := NewProcessor()

	_, err := p.Process(make([]byte, maxFileSize+1))
	assert.Error(t, err)
}

func TestProcessor_Thumbnail_BoundsTo150(t *testing.T) {
	p := NewProcessor()

	uri, err := p.Process(encodePNG(t, 800, 600))
	require.NoError(t, err)

	thumb, err := p.Thumbnail(uri)
	require.NoError(t, err)

	decoded := decodeDataURI(t, thumb)
	assert.LessOrEqual(t, decoded.Bounds().Dx(), thumbnailSize)
	assert.LessOrEqual(t, decoded.Bounds().Dy(), thumbnailSize)
}

func TestProcessor_Thumbnail_RejectsNonDataURIs(t *testing.T) {
	p := NewProcessor()

	_, err := p.Thumbnail("https://example.com/image.png")
	assert.Error(t, err)
}
