package cli

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/InfinityTools/go-logging"
	"github.com/deepteams/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/Fepozopo/rasterfx/pkg/raster"
	"github.com/Fepozopo/rasterfx/pkg/stdimg"
)

// Image container formats understood by LoadImage and SaveImage.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
	FormatWebP = "webp"
)

// sniffFormat identifies a container from its leading bytes.
func sniffFormat(b []byte) string {
	switch {
	case bytes.HasPrefix(b, []byte{0xFF, 0xD8, 0xFF}):
		return FormatJPEG
	case bytes.HasPrefix(b, []byte("\x89PNG\r\n\x1a\n")):
		return FormatPNG
	case bytes.HasPrefix(b, []byte("GIF87a")), bytes.HasPrefix(b, []byte("GIF89a")):
		return FormatGIF
	case bytes.HasPrefix(b, []byte("BM")):
		return FormatBMP
	case bytes.HasPrefix(b, []byte("II*\x00")), bytes.HasPrefix(b, []byte("MM\x00*")):
		return FormatTIFF
	case len(b) >= 12 && string(b[:4]) == "RIFF" && string(b[8:12]) == "WEBP":
		return FormatWebP
	}
	return ""
}

// FormatFromPath maps a file extension to a container format. Unknown
// extensions map to PNG.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".gif":
		return FormatGIF
	case ".bmp":
		return FormatBMP
	case ".tif", ".tiff":
		return FormatTIFF
	case ".webp":
		return FormatWebP
	}
	return FormatPNG
}

// DecodeImage decodes data into a pixel buffer. JPEG input is rotated
// upright according to its EXIF orientation.
func DecodeImage(data []byte) (*image.NRGBA, string, error) {
	format := sniffFormat(data)
	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch format {
	case FormatPNG:
		img, err = png.Decode(r)
	case FormatJPEG:
		img, err = jpeg.Decode(r)
	case FormatGIF:
		img, err = gif.Decode(r)
	case FormatBMP:
		img, err = bmp.Decode(r)
	case FormatTIFF:
		img, err = tiff.Decode(r)
	case FormatWebP:
		img, err = webp.Decode(r)
	default:
		return nil, "", fmt.Errorf("unrecognized image format")
	}
	if err != nil {
		return nil, format, fmt.Errorf("decode %s: %w", format, err)
	}
	buf := raster.FromImage(img)
	if format == FormatJPEG {
		if o := jpegOrientation(data); o != 1 {
			logging.Logf("Applying EXIF orientation %d\n", o)
			buf = stdimg.AutoOrient(buf, o)
		}
	}
	return buf, format, nil
}

// LoadImage reads and decodes the image file at path.
func LoadImage(path string) (*image.NRGBA, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	img, format, err := DecodeImage(b)
	if err != nil {
		return nil, format, fmt.Errorf("%s: %w", path, err)
	}
	return img, format, nil
}

// EncodeImage writes img to w in the given container format.
func EncodeImage(w io.Writer, img image.Image, format string, cfg Config) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: cfg.JPEGQuality})
	case FormatGIF:
		return gif.Encode(w, img, nil)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case FormatWebP:
		opts := webp.DefaultOptions()
		opts.Quality = cfg.WebPQuality
		opts.Lossless = cfg.Lossless
		opts.Exact = cfg.Lossless
		return webp.Encode(w, img, opts)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// SaveImage encodes img into path, picking the format from the extension.
func SaveImage(path string, img image.Image, cfg Config) error {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, img, FormatFromPath(path), cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// describeImage returns a one-line summary of a decoded image.
func describeImage(img *image.NRGBA, format string) string {
	h := stdimg.ComputeHistogram(img)
	m := h.Mean()
	return fmt.Sprintf("Format: %s, Width: %d, Height: %d, Transparent: %v, Mean RGBA: %.1f %.1f %.1f %.1f",
		strings.ToUpper(format), img.Rect.Dx(), img.Rect.Dy(), raster.HasTransparency(img), m[0], m[1], m[2], m[3])
}
