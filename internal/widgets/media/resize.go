package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	_ "image/gif"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

const (
	maxImageSide    = 8000
	maxSourcePixels = 50_000_000
)

// Output formats of the image resizer.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// TargetSize resolves the output size for a source of size src. A zero
// width or height keeps the aspect ratio; both zero keeps the source size.
func TargetSize(src image.Point, width, height int) (image.Point, error) {
	if width < 0 || height < 0 || width > maxImageSide || height > maxImageSide {
		return image.Point{}, types.InputError("width and height must be between 0 and %d", maxImageSide)
	}
	switch {
	case width == 0 && height == 0:
		return src, nil
	case width == 0:
		width = max(1, src.X*height/src.Y)
	case height == 0:
		height = max(1, src.Y*width/src.X)
	}
	if width > maxImageSide || height > maxImageSide {
		return image.Point{}, types.InputError("resized image would be %d × %d px; sides are limited to %d", width, height, maxImageSide)
	}
	return image.Pt(width, height), nil
}

// Resize scales img to size with Catmull-Rom resampling.
func Resize(img image.Image, size image.Point) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// ImageResizer returns the image-resizer widget. It accepts PNG, JPEG, GIF
// and WebP uploads and writes PNG or JPEG.
func ImageResizer() types.Widget {
	return types.WidgetFunc(func(_ context.Context, in types.Input) (types.Result, error) {
		file, ok := in.File("image")
		if !ok {
			return types.Result{}, types.InputError("choose an image to resize")
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data))
		if err != nil {
			return types.Result{}, types.ParseError("Unsupported image", err)
		}
		if cfg.Width <= 0 || cfg.Height <= 0 {
			return types.Result{}, types.ParseError("Unsupported image", fmt.Errorf("image is %d × %d px", cfg.Width, cfg.Height))
		}
		if int64(cfg.Width)*int64(cfg.Height) > maxSourcePixels {
			return types.Result{}, types.InputError("image is %d × %d px; at most %d pixels are supported", cfg.Width, cfg.Height, maxSourcePixels)
		}
		src, srcFormat, err := image.Decode(bytes.NewReader(file.Data))
		if err != nil {
			return types.Result{}, types.ParseError("Unsupported image", err)
		}
		width, err := in.Int("width", 0)
		if err != nil {
			return types.Result{}, err
		}
		height, err := in.Int("height", 0)
		if err != nil {
			return types.Result{}, err
		}
		size, err := TargetSize(src.Bounds().Size(), width, height)
		if err != nil {
			return types.Result{}, err
		}
		format := strings.ToLower(in.GetDefault("format", FormatPNG))
		quality, err := in.Int("quality", 90)
		if err != nil {
			return types.Result{}, err
		}
		if quality < 1 || quality > 100 {
			return types.Result{}, types.InputError("quality must be between 1 and 100")
		}

		if format == "jpg" {
			format = FormatJPEG
		}
		if format != FormatPNG && format != FormatJPEG {
			return types.Result{}, types.InputError("format must be png or jpeg")
		}

		out := Resize(src, size)
		var buf bytes.Buffer
		contentType, ext := "image/png", ".png"
		if format == FormatJPEG {
			contentType, ext = "image/jpeg", ".jpg"
			err = jpeg.Encode(&buf, out, &jpeg.Options{Quality: quality})
		} else {
			err = png.Encode(&buf, out)
		}
		if err != nil {
			return types.Result{}, fmt.Errorf("encode %s: %w", format, err)
		}

		name := strings.TrimSuffix(filepath.Base(file.Name), filepath.Ext(file.Name))
		if name == "" || name == "." {
			name = "image"
		}
		res := types.Result{
			Output:      fmt.Sprintf("%d × %d px", size.X, size.Y),
			Data:        buf.Bytes(),
			ContentType: contentType,
			Filename:    name + "-resized" + ext,
		}
		b := src.Bounds()
		res.Add("Original", fmt.Sprintf("%d × %d px (%s)", b.Dx(), b.Dy(), srcFormat)).
			Add("File size", fmt.Sprintf("%d → %d bytes", len(file.Data), buf.Len()))
		return res, nil
	})
}
