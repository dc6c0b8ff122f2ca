package tools

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/reusedev/anymotion-cli/internal/modules/storage/local"
)

func Thumbnail(r io.Reader, ratio float64, format imaging.Format) (io.Reader, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	width := max(1, int(float64(b.Dx())*ratio))
	height := max(1, int(float64(b.Dy())*ratio))
	thumbnail := imaging.Thumbnail(img, width, height, imaging.Lanczos)
	if thumbnail == nil {
		return nil, io.ErrUnexpectedEOF
	}
	var buf bytes.Buffer
	err = imaging.Encode(&buf, thumbnail, format)
	if err != nil {
		return nil, err
	}
	return &buf, nil
}

// ThumbnailPath is "<dir>/<name>_thumb<ext>" for src.
func ThumbnailPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_thumb" + ext
}

// ThumbnailFile writes a scaled copy of the image at src next to it and
// returns the new path. The copy is written atomically. Non-image files yield imaging.ErrUnsupportedFormat.
func ThumbnailFile(src string, ratio float64) (string, error) {
	format, err := imaging.FormatFromFilename(src)
	if err != nil {
		return "", err
	}
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()
	r, err := Thumbnail(f, ratio, format)
	if err != nil {
		return "", err
	}
	dst := ThumbnailPath(src)
	if err := local.SaveFile(r, dst); err != nil {
		return "", err
	}
	return dst, nil
}
