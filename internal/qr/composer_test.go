package qr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComposer() *Composer {
	return NewComposer(zerolog.Nop())
}

func testPayload() *Payload {
	return NewPayload().
		Add("healthId", "W1001").
		Add("fullName", "Asha Devi").
		Add("gender", "Female").
		Add("nativeState", "Bihar").
		Add("registrationDate", "2024-01-15")
}

// facePNG renders a solid-color square as PNG bytes.
func facePNG(t *testing.T, size int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestComposeProducesDecodablePNG(t *testing.T) {
	data, err := testComposer().Compose(testPayload(), nil)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestComposeIsDeterministic(t *testing.T) {
	c := testComposer()
	face := facePNG(t, 50, color.NRGBA{R: 200, A: 255})

	first, err := c.Compose(testPayload(), face)
	require.NoError(t, err)
	second, err := c.Compose(testPayload(), face)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComposeOverlaysFaceBottomRight(t *testing.T) {
	c := testComposer()

	plain, err := c.Compose(testPayload(), nil)
	require.NoError(t, err)
	overlaid, err := c.Compose(testPayload(), facePNG(t, 50, color.NRGBA{R: 200, A: 255}))
	require.NoError(t, err)

	assert.NotEqual(t, plain, overlaid)

	img, err := png.Decode(bytes.NewReader(overlaid))
	require.NoError(t, err)

	// A 50px face is pasted unscaled inside a 4px white border with an
	// 8px gap from each edge, so this pixel sits inside the thumbnail.
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	r, _, _, _ := img.At(w-20, h-20).RGBA()
	assert.Equal(t, uint32(200), r>>8)

	// The plain symbol keeps that region in the white quiet zone.
	plainImg, err := png.Decode(bytes.NewReader(plain))
	require.NoError(t, err)
	pr, pg, pb, _ := plainImg.At(w-20, h-20).RGBA()
	assert.Equal(t, uint32(0xffff), pr)
	assert.Equal(t, uint32(0xffff), pg)
	assert.Equal(t, uint32(0xffff), pb)
}

func TestComposeFlattensTransparentFace(t *testing.T) {
	c := testComposer()

	// 50% transparent red; the flattened thumbnail blends toward white
	// and the composed PNG stays fully opaque.
	face := facePNG(t, 50, color.NRGBA{R: 200, A: 128})
	overlaid, err := c.Compose(testPayload(), face)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(overlaid))
	require.NoError(t, err)

	minAlpha := uint32(0xffff)
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a < minAlpha {
				minAlpha = a
			}
		}
	}
	assert.Equal(t, uint32(0xffff), minAlpha)

	// The blended thumbnail is still visibly present in the corner.
	w := bounds.Dx()
	h := bounds.Dy()
	r, g, _, _ := img.At(w-20, h-20).RGBA()
	assert.Greater(t, r, g)
}

func TestComposeCorruptFaceFallsBackToPlainSymbol(t *testing.T) {
	c := testComposer()

	plain, err := c.Compose(testPayload(), nil)
	require.NoError(t, err)
	corrupt, err := c.Compose(testPayload(), []byte("not an image"))
	require.NoError(t, err)

	assert.Equal(t, plain, corrupt)
}

func TestComposeNeverUpscalesSmallFaces(t *testing.T) {
	c := testComposer()

	small := facePNG(t, 10, color.NRGBA{B: 250, A: 255})
	overlaid, err := c.Compose(testPayload(), small)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(overlaid))
	require.NoError(t, err)

	// A 10px thumbnail plus its border spans 18px; the pixel 30px in
	// from the corner is outside the overlay and stays in the quiet zone.
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	r, g, b, _ := img.At(w-30, h-30).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)
	assert.Equal(t, uint32(0xffff), b)
}

func TestComposeEmptyPayload(t *testing.T) {
	data, err := testComposer().Compose(NewPayload(), nil)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestEncodeText(t *testing.T) {
	data, err := testComposer().EncodeText("hello")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	// Version 1 at module size 10 with a 4-module quiet zone.
	assert.Equal(t, (21+8)*10, img.Bounds().Dx())
}

func TestEncodeTextGrowsPastTargetVersion(t *testing.T) {
	long := bytes.Repeat([]byte("a"), 120)
	data, err := testComposer().EncodeText(string(long))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), (21+8)*10)
}
