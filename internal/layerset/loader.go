package layerset

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "github.com/ftrvxmtrx/tga"

	"sprite-bevelgen/internal/pipeline"
	"sprite-bevelgen/internal/pixel"
)

// LoadImage decodes a PNG, TGA, or JPEG file into a pixel buffer.
func LoadImage(path string) (*pixel.Buffer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layerset: read %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("layerset: decode %s: %w", path, err)
	}

	return pixel.FromNRGBA(toNRGBA(img)), nil
}

// toNRGBA converts any image to NRGBA format.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// LoadFrame loads every part of a frame, resolving image paths against
// baseDir. def supplies tuning parameters for fields a part omits.
func LoadFrame(baseDir string, f Frame, def pipeline.Options) ([]*pipeline.Part, error) {
	parts := make([]*pipeline.Part, 0, len(f.Parts))
	for i, pd := range f.Parts {
		buf, err := LoadImage(filepath.Join(baseDir, pd.Image))
		if err != nil {
			return nil, err
		}

		var blockers *pixel.Buffer
		if pd.BlockerImage != "" {
			blockers, err = LoadImage(filepath.Join(baseDir, pd.BlockerImage))
			if err != nil {
				return nil, err
			}
			if blockers.Width != buf.Width || blockers.Height != buf.Height {
				return nil, fmt.Errorf("layerset: part %q blocker image is %dx%d, pixels are %dx%d",
					pd.Name, blockers.Width, blockers.Height, buf.Width, buf.Height)
			}
		}

		parts = append(parts, &pipeline.Part{
			Name:     pd.Name,
			Priority: i,
			Pixels:   buf,
			Blockers: blockers,
			Options:  pd.Options(def),
		})
	}
	return parts, nil
}
