// Package media validates uploaded image blobs and renders them as data URIs
// for JSON responses.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

const DefaultMaxBytes = 8 << 20

var (
	ErrEmpty    = errors.New("image is empty")
	ErrTooLarge = errors.New("image exceeds size limit")
	ErrNotImage = errors.New("payload is not a supported image")
)

type Info struct {
	ContentType string
	Format      string
	Width       int
	Height      int
}

// Inspect sniffs and decodes the image header. Only the config is decoded,
// so large images are not fully rasterized.
func Inspect(raw []byte, maxBytes int) (*Info, error) {
	if len(raw) == 0 {
		return nil, ErrEmpty
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(raw) > maxBytes {
		return nil, ErrTooLarge
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrNotImage
	}
	return &Info{
		ContentType: contentTypeFor(format, raw),
		Format:      format,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

func contentTypeFor(format string, raw []byte) string {
	switch format {
	case "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	}
	return http.DetectContentType(raw)
}

// DataURI renders raw as data:<type>;base64,<payload>. An empty payload
// yields "".
func DataURI(contentType string, raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		ct = http.DetectContentType(raw)
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(raw)
}
