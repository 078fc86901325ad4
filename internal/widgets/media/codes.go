package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"image"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Encoder turns text into a scaled barcode image.
type Encoder interface {
	Encode(content string, width, height int) (image.Image, error)
}

// EncoderFunc adapts a function to Encoder.
type EncoderFunc func(content string, width, height int) (image.Image, error)

// Encode calls f.
func (f EncoderFunc) Encode(content string, width, height int) (image.Image, error) {
	return f(content, width, height)
}

// Code128 encodes content as a Code 128 symbol.
var Code128 Encoder = EncoderFunc(func(content string, width, height int) (image.Image, error) {
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, err
	}
	if width < bc.Bounds().Dx() {
		width = bc.Bounds().Dx()
	}
	return barcode.Scale(bc, width, height)
})

// QR returns an encoder producing QR codes at the given error correction
// level. Height is ignored; QR symbols are square.
func QR(level qr.ErrorCorrectionLevel) Encoder {
	return EncoderFunc(func(content string, width, _ int) (image.Image, error) {
		bc, err := qr.Encode(content, level, qr.Auto)
		if err != nil {
			return nil, err
		}
		if width < bc.Bounds().Dx() {
			width = bc.Bounds().Dx()
		}
		return barcode.Scale(bc, width, width)
	})
}

// QRLevels maps form values to error correction levels.
var QRLevels = map[string]qr.ErrorCorrectionLevel{
	"L": qr.L,
	"M": qr.M,
	"Q": qr.Q,
	"H": qr.H,
}

const maxCodePixels = 2048

// pngResult encodes img as a PNG download and an inline preview.
func pngResult(img image.Image, filename string) (types.Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return types.Result{}, fmt.Errorf("encode png: %w", err)
	}
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	preview := fmt.Sprintf(`<img src="%s" alt="%s">`, template.HTMLEscapeString(src), template.HTMLEscapeString(filename))
	res := types.Result{
		HTML:        preview,
		Data:        buf.Bytes(),
		ContentType: "image/png",
		Filename:    filename,
	}
	b := img.Bounds()
	res.Add("Size", fmt.Sprintf("%d × %d px", b.Dx(), b.Dy()))
	return res, nil
}

func dimension(in types.Input, name string, def int) (int, error) {
	n, err := in.Int(name, def)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > maxCodePixels {
		return 0, types.InputError("%s must be between 1 and %d", name, maxCodePixels)
	}
	return n, nil
}

// Barcode is the barcode-generator widget.
type Barcode struct {
	Encoder Encoder
}

// NewBarcode returns a Code 128 barcode generator.
func NewBarcode() *Barcode {
	return &Barcode{Encoder: Code128}
}

// Run implements types.Widget. Empty text is rejected before the encoder
// is consulted.
func (b *Barcode) Run(_ context.Context, in types.Input) (types.Result, error) {
	text := in.Get("text")
	if text == "" {
		return types.Result{}, types.InputError("text is required")
	}
	width, err := dimension(in, "width", 300)
	if err != nil {
		return types.Result{}, err
	}
	height, err := dimension(in, "height", 100)
	if err != nil {
		return types.Result{}, err
	}

	img, err := b.Encoder.Encode(text, width, height)
	if err != nil {
		return types.Result{}, types.InputError("cannot encode %q: %v", text, err)
	}
	res, err := pngResult(img, "barcode.png")
	if err != nil {
		return types.Result{}, err
	}
	res.Output = text
	return res, nil
}

// QRCode returns the qr-code-generator widget.
func QRCode() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		text := in.Raw("text")
		if strings.TrimSpace(text) == "" {
			return types.Result{}, types.InputError("text is required")
		}
		levelName := strings.ToUpper(in.GetDefault("level", "M"))
		level, ok := QRLevels[levelName]
		if !ok {
			return types.Result{}, types.InputError("level must be one of L, M, Q, H")
		}
		size, err := dimension(in, "size", 256)
		if err != nil {
			return types.Result{}, err
		}

		img, err := QR(level).Encode(text, size, size)
		if err != nil {
			return types.Result{}, types.InputError("text does not fit in a QR code: %v", err)
		}
		res, err := pngResult(img, "qrcode.png")
		if err != nil {
			return types.Result{}, err
		}
		res.Output = text
		res.Add("Error correction", levelName)
		return res, nil
	})
}
