// Package render draws a flattened client tree as an image: one box per
// element with its id, the focused element highlighted.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/mj1618/axbridge/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelMode controls what text is drawn on each element.
type LabelMode int

const (
	// LabelIDs draws "[id]".
	LabelIDs LabelMode = iota
	// LabelRoles draws "[id] role".
	LabelRoles
	// LabelNone draws boxes only.
	LabelNone
)

// Options configures Render.
type Options struct {
	// Scale multiplies element bounds. Zero means 1.
	Scale float64
	// Margin in output pixels around the tree's bounding box.
	Margin int
	Labels LabelMode
	// MaxPixels caps the canvas area. Zero means DefaultMaxPixels.
	MaxPixels int
}

// DefaultMaxPixels is the largest canvas Render allocates unless told
// otherwise: 8192x4096, 128 MiB of RGBA.
const DefaultMaxPixels = 1 << 25

var (
	background   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	boxColor     = color.RGBA{R: 200, G: 0, B: 0, A: 255}
	focusColor   = color.RGBA{R: 0, G: 120, B: 255, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Render draws elements onto a fresh canvas sized to the union of their
// bounds. Elements with empty bounds are skipped. It returns an error when
// nothing has area or the canvas would exceed the pixel cap.
func Render(elements []model.FlatElement, opts Options) (*image.RGBA, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var extent model.Rect
	for _, el := range elements {
		extent = extent.Union(model.RectFromArray(el.Bounds))
	}
	if extent.IsEmpty() {
		return nil, errors.New("no element has visible bounds")
	}

	maxPixels := opts.MaxPixels
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	fw := float64(extent.Width)*scale + float64(2*opts.Margin)
	fh := float64(extent.Height)*scale + float64(2*opts.Margin)
	if fw*fh > float64(maxPixels) {
		return nil, errors.Newf("canvas %.0fx%.0f exceeds %d pixels; lower --scale or filter with --bbox", fw, fh, maxPixels)
	}
	w := int(float64(extent.Width)*scale) + 2*opts.Margin
	h := int(float64(extent.Height)*scale) + 2*opts.Margin
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	project := func(r model.Rect) image.Rectangle {
		x := int(float64(r.X-extent.X)*scale) + opts.Margin
		y := int(float64(r.Y-extent.Y)*scale) + opts.Margin
		return image.Rect(x, y, x+int(float64(r.Width)*scale), y+int(float64(r.Height)*scale))
	}

	// Focus is drawn last so no sibling box covers it.
	var focused *model.FlatElement
	for i := range elements {
		el := &elements[i]
		r := model.RectFromArray(el.Bounds)
		if r.IsEmpty() {
			continue
		}
		if el.Focused {
			focused = el
			continue
		}
		drawElement(img, project(r), el, boxColor, 1, opts.Labels)
	}
	if focused != nil {
		drawElement(img, project(model.RectFromArray(focused.Bounds)), focused, focusColor, 3, opts.Labels)
	}
	return img, nil
}

// WritePNG renders elements and encodes the result as PNG.
func WritePNG(w io.Writer, elements []model.FlatElement, opts Options) error {
	img, err := Render(elements, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}

func label(el *model.FlatElement, mode LabelMode) string {
	switch mode {
	case LabelNone:
		return ""
	case LabelRoles:
		return fmt.Sprintf("[%d] %s", el.ID, el.Role)
	default:
		return fmt.Sprintf("[%d]", el.ID)
	}
}

func drawElement(img *image.RGBA, r image.Rectangle, el *model.FlatElement, c color.Color, thickness int, mode LabelMode) {
	for i := 0; i < thickness; i++ {
		drawRectangle(img, r.Min.X+i, r.Min.Y+i, r.Max.X-i, r.Max.Y-i, c)
	}
	if text := label(el, mode); text != "" {
		// Labels sit in the top-left corner so nested boxes stay readable.
		drawTextWithOutline(img, text, r.Min.X+thickness+1, r.Min.Y+thickness+11)
	}
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	clip := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if clip.Empty() {
		return
	}
	for x := clip.Min.X; x < clip.Max.X; x++ {
		if y1 >= clip.Min.Y {
			img.Set(x, y1, c)
		}
		if y2-1 < clip.Max.Y {
			img.Set(x, y2-1, c)
		}
	}
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		if x1 >= clip.Min.X {
			img.Set(x1, y, c)
		}
		if x2-1 < clip.Max.X {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text with its baseline at (x, y) and a one pixel
// dark outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	d := &font.Drawer{Dst: img, Face: basicfont.Face7x13}
	d.Src = image.NewUniform(outlineColor)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d.Dot = fixed.P(x+dx, y+dy)
			d.DrawString(text)
		}
	}
	d.Src = image.NewUniform(textColor)
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
