// fieldviz renders a sprite layer's distance field or generated normal
// map as a magnified WebP for visual inspection.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"sprite-bevelgen/internal/diag"
	"sprite-bevelgen/internal/distfield"
	"sprite-bevelgen/internal/layerset"
	"sprite-bevelgen/internal/pipeline"
	"sprite-bevelgen/internal/pixel"
	"sprite-bevelgen/internal/region"
)

func main() {
	imagePath := flag.String("image", "", "Sprite layer image (PNG/TGA/JPEG)")
	blockerPath := flag.String("blocker", "", "Auxiliary blocker image (part mode)")
	outPath := flag.String("out", "fieldviz.webp", "Output WebP path")
	mode := flag.String("mode", "field", "field (whole-mask distance field) or normals (per-color pipeline)")
	scale := flag.Int("scale", 8, "Nearest-neighbor magnification factor")
	bevel := flag.Float64("bevel", 10, "Bevel width in pixels")
	full := flag.Bool("full", false, "Fully beveled (bevel spans the whole region)")
	inset := flag.Float64("inset", 0, "Edge inset")
	strength := flag.Float64("strength", 1, "Bevel strength")
	smoothness := flag.Float64("smooth", 0, "Smoothing blur radius (0 disables)")
	flag.Parse()

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -image is required")
		flag.Usage()
		os.Exit(1)
	}

	buf, err := layerset.LoadImage(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bw := region.FixedBevel(*bevel)
	if *full {
		bw = region.FullBevel()
	}
	opts := pipeline.Options{
		BevelWidth:    bw,
		Smoothness:    *smoothness,
		EdgeInset:     *inset,
		BevelStrength: *strength,
	}

	var img *image.NRGBA
	switch *mode {
	case "field":
		img, err = renderField(buf, *blockerPath, opts)
	case "normals":
		m := pipeline.DiscoverMap(*imagePath, 0, buf, diag.Discard{})
		fmt.Printf("Regions: %d\n", len(m.Regions))
		pipeline.ProcessMap(m, buf, opts, diag.Discard{})
		img = pipeline.Flatten(m).ToNRGBA()
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *scale > 1 {
		s := *scale
		big := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx()*s, img.Bounds().Dy()*s))
		draw.NearestNeighbor.Scale(big, big.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = big
	}

	f, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: WebP encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// renderField computes the whole-mask distance field and maps it to
// grayscale: black at the boundary, white at the deepest point.
// Unreached pixels show magenta, exterior pixels stay transparent.
func renderField(buf *pixel.Buffer, blockerPath string, opts pipeline.Options) (*image.NRGBA, error) {
	part := &pipeline.Part{Name: "viz", Pixels: buf, Options: opts}
	if blockerPath != "" {
		blockers, err := layerset.LoadImage(blockerPath)
		if err != nil {
			return nil, err
		}
		part.Blockers = blockers
	}

	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	r := pipeline.BuildRegion(part)
	if r == nil {
		return img, nil
	}

	edges := distfield.Compute(r, buf, opts.BevelWidth.Radius(r.Bounds), opts.EdgeInset)
	fmt.Printf("Edges: %d\n", edges)

	dmax := 0.0
	for i, d := range r.Distance {
		if r.RegionMask[i] && !math.IsInf(d, 1) && d > dmax {
			dmax = d
		}
	}

	for ly := 0; ly < r.Bounds.H; ly++ {
		for lx := 0; lx < r.Bounds.W; lx++ {
			li := ly*r.Bounds.W + lx
			if !r.RegionMask[li] {
				continue
			}
			var c color.NRGBA
			if d := r.Distance[li]; math.IsInf(d, 1) {
				c = color.NRGBA{R: 255, B: 255, A: 255}
			} else {
				v := uint8(0)
				if dmax > 0 {
					v = uint8(d / dmax * 255)
				}
				c = color.NRGBA{R: v, G: v, B: v, A: 255}
			}
			img.SetNRGBA(r.Bounds.X+lx, r.Bounds.Y+ly, c)
		}
	}
	return img, nil
}
