package storyframe

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gosimple/slug"
	"github.com/h2non/filetype"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	thumbWidth    = 800
	jpegQuality   = 80
	maxSourceSize = 20 << 20 // 20MB
	thumbsSubdir  = "thumbs"
)

// makeThumbnail decodes an image, resizes it to thumbWidth when wider, and
// encodes it as JPEG. It returns the encoded bytes and final dimensions.
func makeThumbnail(data []byte) ([]byte, int, int, error) {
	if !filetype.IsImage(data) {
		kind, _ := filetype.Match(data)
		return nil, 0, 0, fmt.Errorf("not an image (%s)", kind.MIME.Value)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > thumbWidth {
		newH := h * thumbWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = thumbWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, 0, 0, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), w, h, nil
}

// thumbFilename is the file name for the card image of a document.
func thumbFilename(docSlug string) string {
	name := slug.Make(docSlug)
	if name == "" {
		name = "untitled"
	}
	return name + ".jpg"
}

// Thumbnailer downloads preview images and writes card thumbnails under
// <staticDir>/thumbs.
type Thumbnailer struct {
	Dir    string
	Client *http.Client
}

// NewThumbnailer returns a Thumbnailer writing into staticDir/thumbs.
func NewThumbnailer(staticDir string) *Thumbnailer {
	return &Thumbnailer{
		Dir:    filepath.Join(staticDir, thumbsSubdir),
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Generate fetches src and writes the thumbnail for docSlug.
func (t *Thumbnailer) Generate(ctx context.Context, docSlug, src string) (Thumbnail, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return Thumbnail{}, err
	}
	resp, err := t.Client.Do(req)
	if err != nil {
		return Thumbnail{}, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Thumbnail{}, fmt.Errorf("fetch %s: status %d", src, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return Thumbnail{}, fmt.Errorf("read %s: %w", src, err)
	}

	out, w, h, err := makeThumbnail(data)
	if err != nil {
		return Thumbnail{}, err
	}
	if err := os.MkdirAll(t.Dir, 0o755); err != nil {
		return Thumbnail{}, fmt.Errorf("create thumbs dir: %w", err)
	}
	name := thumbFilename(docSlug)
	if err := os.WriteFile(filepath.Join(t.Dir, name), out, 0o644); err != nil {
		return Thumbnail{}, fmt.Errorf("write thumbnail: %w", err)
	}
	return Thumbnail{
		Slug:      docSlug,
		Filename:  name,
		Width:     w,
		Height:    h,
		SourceURL: src,
		CreatedAt: time.Now(),
	}, nil
}

// ThumbURL is the public path of a generated thumbnail.
func ThumbURL(t Thumbnail) string {
	return "/public/" + thumbsSubdir + "/" + t.Filename
}
