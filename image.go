package matrixcolor

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for LoadImage
	"image/png"
	"os"
	"runtime"

	_ "golang.org/x/image/bmp" // register decoder for LoadImage
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register decoder for LoadImage
	"golang.org/x/sync/errgroup"
)

// defaultBandRows is the number of rows each worker processes per task.
const defaultBandRows = 32

// ImageOptions controls CPU image application. The zero value is ready to
// use.
type ImageOptions struct {
	// Workers limits how many row bands are processed at once. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
	// BandRows is the number of rows per task. Zero means 32.
	BandRows int
}

func (o *ImageOptions) workers() int {
	if o == nil || o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

func (o *ImageOptions) bandRows() int {
	if o == nil || o.BandRows <= 0 {
		return defaultBandRows
	}
	return o.BandRows
}

// ApplyImage returns a copy of src with m applied to every pixel. Pixels are
// transformed in straight (non-premultiplied) alpha and each output
// component is clamped to [0, 1] before quantizing to 8 bits. opts may be
// nil.
func ApplyImage(m Matrix, src image.Image, opts *ImageOptions) *image.NRGBA {
	// Background is never cancelled, so the error is always nil.
	dst, _ := ApplyImageContext(context.Background(), m, src, opts)
	return dst
}

// ApplyImageContext is like ApplyImage but stops early and returns ctx's
// error if ctx is cancelled before every band has been processed.
func ApplyImageContext(ctx context.Context, m Matrix, src image.Image, opts *ImageOptions) (*image.NRGBA, error) {
	bounds := src.Bounds()
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, bounds.Min, draw.Src)

	h := bounds.Dy()
	band := opts.bandRows()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for y0 := 0; y0 < h; y0 += band {
		y1 := min(y0+band, h)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			applyRows(m, dst, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dst, nil
}

// applyRows transforms rows [y0, y1) of img in place. Rows are relative to
// the image origin.
func applyRows(m Matrix, img *image.NRGBA, y0, y1 int) {
	w := img.Rect.Dx()
	for y := y0; y < y1; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			px := row[i : i+4 : i+4]
			c := m.Apply(Color{
				R: float64(px[0]) / 255,
				G: float64(px[1]) / 255,
				B: float64(px[2]) / 255,
				A: float64(px[3]) / 255,
			})
			px[0] = to8(c.R)
			px[1] = to8(c.G)
			px[2] = to8(c.B)
			px[3] = to8(c.A)
		}
	}
}

// LoadImage decodes a PNG, JPEG, BMP or WebP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SavePNG encodes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
