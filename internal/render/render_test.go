package render

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/mj1618/axbridge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []model.FlatElement {
	return []model.FlatElement{
		{ID: 1, Role: "win", Bounds: [4]int{0, 0, 100, 50}},
		{ID: 2, Role: "btn", Bounds: [4]int{10, 10, 20, 20}, Focused: true},
		{ID: 3, Role: "txt", Bounds: [4]int{60, 10, 0, 0}},
	}
}

func TestRenderCanvasAndColors(t *testing.T) {
	img, err := Render(sample(), Options{Labels: LabelNone})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())

	assert.Equal(t, boxColor, img.RGBAAt(50, 49), "bottom edge of the window box")
	assert.Equal(t, focusColor, img.RGBAAt(20, 29), "focused box is highlighted")
	assert.Equal(t, focusColor, img.RGBAAt(20, 27), "focused box is drawn thicker")
	assert.Equal(t, background, img.RGBAAt(20, 20))
	assert.Equal(t, background, img.RGBAAt(60, 10), "empty bounds are not drawn")
}

func TestRenderScaleAndMargin(t *testing.T) {
	img, err := Render(sample(), Options{Scale: 2, Margin: 5, Labels: LabelNone})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 210, 110), img.Bounds())
	assert.Equal(t, boxColor, img.RGBAAt(5, 50))
	assert.Equal(t, background, img.RGBAAt(2, 50))
}

func TestRenderOffsetOrigin(t *testing.T) {
	img, err := Render([]model.FlatElement{{ID: 7, Bounds: [4]int{300, 400, 40, 30}}}, Options{Labels: LabelNone})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), img.Bounds())
	assert.Equal(t, boxColor, img.RGBAAt(0, 15))
}

func TestRenderLabelsDrawText(t *testing.T) {
	plain, err := Render(sample(), Options{Labels: LabelNone})
	require.NoError(t, err)
	labelled, err := Render(sample(), Options{Labels: LabelRoles})
	require.NoError(t, err)
	assert.NotEqual(t, plain.Pix, labelled.Pix)
}

func TestRenderNothingVisible(t *testing.T) {
	_, err := Render([]model.FlatElement{{ID: 1}}, Options{})
	assert.Error(t, err)
	_, err = Render(nil, Options{})
	assert.Error(t, err)
}

func TestRenderCanvasTooLarge(t *testing.T) {
	elements := append(sample(), model.FlatElement{ID: 4, Role: "txt", Bounds: [4]int{0, 10_000_000, 10, 10}})
	_, err := Render(elements, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")

	_, err = Render(sample(), Options{Scale: 2, MaxPixels: 100 * 50})
	assert.Error(t, err, "scaling counts against the cap")

	img, err := Render(sample(), Options{MaxPixels: 100 * 50})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), img.Bounds())
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, sample(), Options{}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
}

func TestLabel(t *testing.T) {
	el := &model.FlatElement{ID: 4, Role: "btn"}
	assert.Equal(t, "[4]", label(el, LabelIDs))
	assert.Equal(t, "[4] btn", label(el, LabelRoles))
	assert.Equal(t, "", label(el, LabelNone))
}
