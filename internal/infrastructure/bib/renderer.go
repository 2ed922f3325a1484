// Package bib renders the downloadable race bib for a participant.
package bib

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"carreramedico/internal/ports/output"
)

var _ output.BibRenderer = (*Renderer)(nil)

const (
	defaultWidth  = 800
	defaultHeight = 600

	numberSize  = 160
	nameSize    = 40
	minFontSize = 12
	margin      = 40
)

var (
	numberColor = color.RGBA{A: 0xff}
	nameColor   = color.RGBA{B: 0xff, A: 0xff}
	bandColor   = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
)

// Renderer draws the bib number and name centred on a template image.
type Renderer struct {
	template image.Image
	font     *sfnt.Font
}

// NewRenderer loads the PNG template at path, or builds the default card
// when path is empty.
func NewRenderer(path string) (*Renderer, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bib font: %w", err)
	}
	if path == "" {
		return &Renderer{template: defaultTemplate(), font: fnt}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bib template: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode bib template: %w", err)
	}
	return &Renderer{template: img, font: fnt}, nil
}

// defaultTemplate is a white card with a coloured band top and bottom.
func defaultTemplate() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, defaultWidth, defaultHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	band := defaultHeight / 10
	draw.Draw(img, image.Rect(0, 0, defaultWidth, band), image.NewUniform(bandColor), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, defaultHeight-band, defaultWidth, defaultHeight), image.NewUniform(bandColor), image.Point{}, draw.Src)
	return img
}

// Render returns the PNG encoding of the bib. It is safe for concurrent use.
func (r *Renderer) Render(number, name string) ([]byte, error) {
	b := r.template.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, r.template, b.Min, draw.Src)

	cx := b.Min.X + b.Dx()/2
	cy := b.Min.Y + b.Dy()/2
	if err := r.drawCentered(dst, number, numberColor, cx, cy-60, numberSize); err != nil {
		return nil, err
	}
	if err := r.drawCentered(dst, name, nameColor, cx, cy+110, nameSize); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode bib: %w", err)
	}
	return buf.Bytes(), nil
}

// drawCentered renders text centred on (cx, cy), shrinking the font from size
// until it fits between the side margins.
func (r *Renderer) drawCentered(dst *image.RGBA, text string, col color.Color, cx, cy int, size float64) error {
	if text == "" {
		return nil
	}
	maxWidth := dst.Bounds().Dx() - 2*margin
	for {
		face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return fmt.Errorf("bib font face: %w", err)
		}
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face}
		w := d.MeasureString(text).Ceil()
		if w <= maxWidth || size <= minFontSize {
			m := face.Metrics()
			baseline := cy + (m.Ascent.Ceil()-m.Descent.Ceil())/2
			d.Dot = fixed.P(cx-w/2, baseline)
			d.DrawString(text)
			return face.Close()
		}
		_ = face.Close()
		size -= 2
	}
}
