// Package ogimage draws the fixed-size social preview images attached to
// posts, plus a generic branded image for anything that is not a post.
package ogimage

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"folio/internal/post"
)

// Preview image dimensions, the common Open Graph size.
const (
	Width  = 1200
	Height = 630
)

// FallbackName is the file name of the generic image. Slugs never start
// with an underscore, so no post image can take this name.
const FallbackName = "_default.png"

const (
	margin     = 80
	titleScale = 6
	metaScale  = 3
	maxLines   = 3
)

// Palette is the set of colors used to draw images.
type Palette struct {
	Background color.RGBA
	Accent     color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
}

// DefaultPalette is the brand palette.
var DefaultPalette = Palette{
	Background: color.RGBA{R: 0x12, G: 0x2b, B: 0x4a, A: 0xff},
	Accent:     color.RGBA{R: 0xf2, G: 0xb1, B: 0x34, A: 0xff},
	Text:       color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	Muted:      color.RGBA{R: 0xb8, G: 0xc4, B: 0xd6, A: 0xff},
}

// Renderer draws preview images for one site.
type Renderer struct {
	siteName string
	palette  Palette
	face     font.Face
}

// New returns a Renderer using DefaultPalette.
func New(siteName string) *Renderer {
	return &Renderer{siteName: siteName, palette: DefaultPalette, face: basicfont.Face7x13}
}

// Render writes the preview image for p as PNG.
func (r *Renderer) Render(w io.Writer, p post.Preview) error {
	img := r.canvas()
	r.drawText(img, r.siteName, margin, margin-20, metaScale, r.palette.Accent)

	lineHeight := r.lineHeight(titleScale) + 12
	y := 170
	for _, line := range wrap(p.Title, r.charsPerLine(titleScale), maxLines) {
		r.drawText(img, line, margin, y, titleScale, r.palette.Text)
		y += lineHeight
	}

	meta := p.Date
	if p.Author != "" {
		meta += "  |  " + p.Author
	}
	r.drawText(img, meta, margin, Height-150, metaScale, r.palette.Muted)

	if len(p.Tags) > 0 {
		tags := "#" + strings.Join(p.Tags, "  #")
		lines := wrap(tags, r.charsPerLine(metaScale), 1)
		if len(lines) > 0 {
			r.drawText(img, lines[0], margin, Height-100, metaScale, r.palette.Accent)
		}
	}
	return encode(w, img)
}

// Fallback writes the generic branded image.
func (r *Renderer) Fallback(w io.Writer) error {
	img := r.canvas()
	y := Height/2 - r.lineHeight(titleScale)
	for _, line := range wrap(r.siteName, r.charsPerLine(titleScale), 2) {
		r.drawText(img, line, margin, y, titleScale, r.palette.Text)
		y += r.lineHeight(titleScale) + 12
	}
	r.drawText(img, "Blog", margin, y+20, metaScale, r.palette.Accent)
	return encode(w, img)
}

func (r *Renderer) canvas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.palette.Background), image.Point{}, draw.Src)
	bar := image.Rect(0, 0, 24, Height)
	draw.Draw(img, bar, image.NewUniform(r.palette.Accent), image.Point{}, draw.Src)
	return img
}

// drawText renders text with the bitmap face on a small canvas and scales it
// up with nearest-neighbour sampling so glyph edges stay sharp.
func (r *Renderer) drawText(dst *image.RGBA, text string, x, y, scale int, c color.Color) {
	if text == "" {
		return
	}
	m := r.face.Metrics()
	w := font.MeasureString(r.face, text).Ceil()
	h := m.Height.Ceil()
	if w <= 0 || h <= 0 {
		return
	}
	small := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(text)
	target := image.Rect(x, y, x+w*scale, y+h*scale)
	draw.NearestNeighbor.Scale(dst, target, small, small.Bounds(), draw.Over, nil)
}

func (r *Renderer) lineHeight(scale int) int {
	return r.face.Metrics().Height.Ceil() * scale
}

func (r *Renderer) charsPerLine(scale int) int {
	adv, _ := r.face.GlyphAdvance('M')
	return (Width - 2*margin) / (adv.Ceil() * scale)
}

// wrap breaks text into at most maxLines lines of at most width characters,
// splitting on spaces. Overflow is marked with "..." on the last line.
func wrap(text string, width, maxLines int) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 || width <= 0 || maxLines <= 0 {
		return nil
	}
	var lines []string
	var cur string
	for _, f := range fields {
		if len([]rune(f)) > width {
			f = string([]rune(f)[:width])
		}
		switch {
		case cur == "":
			cur = f
		case len([]rune(cur))+1+len([]rune(f)) <= width:
			cur += " " + f
		default:
			lines = append(lines, cur)
			cur = f
		}
		if len(lines) == maxLines {
			last := []rune(lines[maxLines-1])
			if len(last)+3 > width {
				last = last[:width-3]
			}
			lines[maxLines-1] = strings.TrimRight(string(last), " ") + "..."
			return lines
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
