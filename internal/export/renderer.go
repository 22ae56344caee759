package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"memento/internal/models"
	"memento/internal/providers"
	"memento/internal/structures"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	Title   = "MEMENTO MORI"
	Tagline = "Помни о смерти... Твой час приближается"
	Stamp   = "Предсказано: "
	// Epitaph sits under the values of a revealed prediction.
	Epitaph = "До твоей встречи с вечностью..."
	Footer  = "Судьба неизбежна. Время неумолимо. Смерть терпелива."
)

// UnitLabels are the captions under the six values, largest unit first.
var UnitLabels = [6]string{"ЛЕТ", "МЕСЯЦЕВ", "ДНЕЙ", "ЧАСОВ", "МИНУТ", "СЕКУНД"}

var (
	colorBackground = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	colorGrid       = color.NRGBA{R: 139, G: 0, B: 0, A: 26}
	colorPrimary    = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	colorPanel      = color.NRGBA{R: 139, G: 0, B: 0, A: 40}
	colorMuted      = color.RGBA{R: 0xa1, G: 0xa1, B: 0xaa, A: 0xff}
)

type RendererInterface interface {
	// Render returns PNG bytes, or false when no rendering context exists.
	Render(p *models.Prediction) ([]byte, bool)
}

type faces struct {
	title  font.Face
	value  font.Face
	label  font.Face
	italic font.Face
}

type PNGRenderer struct {
	size int

	mu    sync.Mutex
	faces faces
}

func NewPNGRenderer(conf *structures.Config, logger providers.Logger) RendererInterface {
	r, err := newPNGRenderer(conf.Export.Size)
	if err != nil {
		logger.Warnf(providers.TypeApp, "Image export unavailable: %s", err)
		return &noopRenderer{}
	}
	logger.Infof(providers.TypeApp, "Image export ready: %dx%d", conf.Export.Size, conf.Export.Size)
	return r
}

func newPNGRenderer(size int) (*PNGRenderer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid export size %d", size)
	}
	scale := float64(size) / 1200

	title, err := newFace(gobold.TTF, 110*scale)
	if err != nil {
		return nil, fmt.Errorf("title face: %w", err)
	}
	value, err := newFace(gobold.TTF, 120*scale)
	if err != nil {
		return nil, fmt.Errorf("value face: %w", err)
	}
	label, err := newFace(goregular.TTF, 30*scale)
	if err != nil {
		return nil, fmt.Errorf("label face: %w", err)
	}
	italic, err := newFace(goitalic.TTF, 34*scale)
	if err != nil {
		return nil, fmt.Errorf("italic face: %w", err)
	}

	return &PNGRenderer{
		size:  size,
		faces: faces{title: title, value: value, label: label, italic: italic},
	}, nil
}

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (r *PNGRenderer) Render(p *models.Prediction) ([]byte, bool) {
	if p == nil {
		return nil, false
	}

	// opentype faces keep per-face glyph buffers.
	r.mu.Lock()
	img := r.draw(p)
	r.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, false
	}
	return buf.Bytes(), buf.Len() > 0
}

func (r *PNGRenderer) draw(p *models.Prediction) *image.RGBA {
	size := r.size
	px := func(v int) int { return v * size / 1200 }

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	grid := image.NewUniform(colorGrid)
	for step := px(40); step > 0 && step < size; step += px(40) {
		draw.Draw(img, image.Rect(step, 0, step+1, size), grid, image.Point{}, draw.Over)
		draw.Draw(img, image.Rect(0, step, size, step+1), grid, image.Point{}, draw.Over)
	}

	primary := image.NewUniform(colorPrimary)
	border := max(px(6), 1)
	inset := px(40)
	frame := image.Rect(inset, inset, size-inset, size-inset)
	drawFrame(img, frame, border, primary)

	drawCentered(img, r.faces.title, Title, size/2, px(230), colorPrimary)
	drawCentered(img, r.faces.italic, Tagline, size/2, px(310), colorMuted)

	values := [6]int64{p.Years, p.Months, p.Days, p.Hours, p.Minutes, p.Seconds}
	cellW := (size - 2*px(120)) / 3
	cellH := px(250)
	top := px(380)
	for i, v := range values {
		col, row := i%3, i/3
		x0 := px(120) + col*cellW
		y0 := top + row*(cellH+px(30))
		cell := image.Rect(x0+px(12), y0, x0+cellW-px(12), y0+cellH)
		draw.Draw(img, cell, image.NewUniform(colorPanel), image.Point{}, draw.Over)
		drawFrame(img, cell, max(px(2), 1), primary)

		cx := x0 + cellW/2
		drawCentered(img, r.faces.value, strconv.FormatInt(v, 10), cx, y0+px(150), colorPrimary)
		drawCentered(img, r.faces.label, UnitLabels[i], cx, y0+px(210), colorMuted)
	}

	drawCentered(img, r.faces.label, Stamp+p.Date, size/2, px(970), colorMuted)
	drawCentered(img, r.faces.italic, Epitaph, size/2, px(1030), colorPrimary)
	drawCentered(img, r.faces.label, Footer, size/2, px(1100), colorMuted)

	return img
}

func drawFrame(img draw.Image, rect image.Rectangle, width int, src image.Image) {
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+width), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-width, rect.Max.X, rect.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+width, rect.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-width, rect.Min.Y, rect.Max.X, rect.Max.Y), src, image.Point{}, draw.Src)
}

func drawCentered(img draw.Image, face font.Face, text string, cx, baseline int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{X: fixed.I(cx) - width/2, Y: fixed.I(baseline)}
	d.DrawString(text)
}

type noopRenderer struct{}

func (n *noopRenderer) Render(_ *models.Prediction) ([]byte, bool) { return nil, false }
