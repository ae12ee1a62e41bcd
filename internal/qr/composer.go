package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// Module geometry shared by worker and ad-hoc codes.
	moduleSize = 10

	// Worker codes carry a printed thumbnail over part of the symbol, so
	// they get the medium recovery tier. Ad-hoc codes favor density.
	workerVersion = 2
	adhocVersion  = 1

	// Thumbnail overlay geometry, in device units of the rendered image.
	thumbMinSize    = 64
	thumbBorder     = 4
	thumbCornerGap  = 8
	thumbWidthRatio = 6
)

// Composer renders payloads into scannable PNG images, optionally with a
// face thumbnail composited into the bottom-right corner.
type Composer struct {
	logger zerolog.Logger
}

func NewComposer(logger zerolog.Logger) *Composer {
	return &Composer{logger: logger}
}

// Compose encodes payload into a QR symbol and, when face bytes are
// supplied and decodable, overlays a bordered thumbnail. Overlay failure
// never fails the composition; the plain symbol is returned instead.
func (c *Composer) Compose(payload *Payload, face []byte) ([]byte, error) {
	symbol, err := newSymbol(payload.Encode(), workerVersion, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR symbol: %w", err)
	}

	img := imaging.Clone(symbol.Image(-moduleSize))
	if len(face) > 0 {
		img = c.overlayFace(img, face)
	}

	return encodePNG(img)
}

// EncodeText renders arbitrary text at the low recovery tier. Used by the
// ad-hoc endpoint; the result is not persisted anywhere.
func (c *Composer) EncodeText(text string) ([]byte, error) {
	symbol, err := newSymbol(text, adhocVersion, qrcode.Low)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR symbol: %w", err)
	}
	return encodePNG(imaging.Clone(symbol.Image(-moduleSize)))
}

// newSymbol targets a fixed version for headroom but grows to the minimal
// fitting version when the content is too long for it.
func newSymbol(content string, version int, level qrcode.RecoveryLevel) (*qrcode.QRCode, error) {
	symbol, err := qrcode.NewWithForcedVersion(content, version, level)
	if err != nil {
		symbol, err = qrcode.New(content, level)
	}
	if err != nil {
		return nil, err
	}
	return symbol, nil
}

// overlayFace composites a white-bordered square thumbnail flush into the
// bottom-right corner. Unreadable face bytes leave the symbol untouched.
func (c *Composer) overlayFace(img *image.NRGBA, face []byte) *image.NRGBA {
	decoded, err := imaging.Decode(bytes.NewReader(face))
	if err != nil {
		c.logger.Debug().Err(err).Msg("skipping face overlay: undecodable image")
		return img
	}

	// Flatten onto white so a transparent face cannot punch alpha into
	// the composed symbol; the output must stay fully opaque RGB.
	src := imaging.New(decoded.Bounds().Dx(), decoded.Bounds().Dy(), color.White)
	src = imaging.Overlay(src, decoded, image.Pt(0, 0), 1.0)

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	bound := width / thumbWidthRatio
	if bound < thumbMinSize {
		bound = thumbMinSize
	}

	// Fit never upscales; small faces keep their native size.
	thumb := imaging.Fit(src, bound, bound, imaging.Lanczos)

	bordered := imaging.New(
		thumb.Bounds().Dx()+2*thumbBorder,
		thumb.Bounds().Dy()+2*thumbBorder,
		color.White,
	)
	bordered = imaging.Paste(bordered, thumb, image.Pt(thumbBorder, thumbBorder))

	pos := image.Pt(
		width-bordered.Bounds().Dx()-thumbCornerGap,
		height-bordered.Bounds().Dy()-thumbCornerGap,
	)
	return imaging.Paste(img, bordered, pos)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
