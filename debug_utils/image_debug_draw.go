package debug_utils

import (
	"bufio"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/golang/freetype/truetype"
	"github.com/gorustyt/fenav/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ImageDebugDraw rasterizes a top-down view of the xz-plane: x grows to
// the right and z grows downward. Height is ignored. Primitives are flat
// shaded with the color of their first vertex.
type ImageDebugDraw struct {
	img  *image.RGBA
	ras  *vector.Rasterizer
	list *DuDisplayList
	face font.Face

	origin common.Vec3
	scale  float32
	pad    float32
}

// NewImageDebugDraw fits bounds into an image width pixels wide, keeping
// the aspect ratio and leaving pad pixels on every side.
func NewImageDebugDraw(bounds common.Bounds, width, pad int) *ImageDebugDraw {
	width = max(width, 2*pad+1)
	spanX := bounds.Max[0] - bounds.Min[0]
	spanZ := bounds.Max[2] - bounds.Min[2]
	scale := float32(1)
	if span := max(spanX, spanZ); span > 0 && common.IsFinite(span) {
		scale = float32(width-2*pad) / span
	} else {
		spanX, spanZ = 0, 0
	}
	height := int(math.Ceil(float64(spanZ*scale))) + 2*pad
	height = max(height, 2*pad+1)

	d := &ImageDebugDraw{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		ras:    vector.NewRasterizer(width, height),
		list:   NewDuDisplayList(64),
		face:   basicfont.Face7x13,
		origin: bounds.Min,
		scale:  scale,
		pad:    float32(pad),
	}
	d.Clear(DuRGBA(255, 255, 255, 255))
	return d
}

func (d *ImageDebugDraw) Image() *image.RGBA { return d.img }

func (d *ImageDebugDraw) Clear(col Colorb) {
	draw.Draw(d.img, d.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Project maps a world position to pixel coordinates.
func (d *ImageDebugDraw) Project(p common.Vec3) (x, y float32) {
	return d.pad + (p[0]-d.origin[0])*d.scale, d.pad + (p[2]-d.origin[2])*d.scale
}

func (d *ImageDebugDraw) Begin(prim DuDebugDrawPrimitives, size ...float32) {
	s := float32(1)
	if len(size) > 0 && size[0] > 0 {
		s = size[0]
	}
	d.list.begin(prim, s)
}

func (d *ImageDebugDraw) Vertex(pos common.Vec3, color Colorb) {
	d.list.vertex(pos, color)
}

func (d *ImageDebugDraw) Vertex1(x, y, z float32, color Colorb) {
	d.list.vertex(common.V3(x, y, z), color)
}

func (d *ImageDebugDraw) End() {
	l := d.list
	size := l.m_primSize
	switch l.m_prim {
	case DU_DRAW_POINTS:
		for i := range l.m_pos {
			x, y := d.Project(l.m_pos[i])
			h := size / 2
			d.fill(l.m_color[i], x-h, y-h, x+h, y-h, x+h, y+h, x-h, y+h)
		}
	case DU_DRAW_LINES:
		for i := 0; i+1 < l.Size(); i += 2 {
			d.line(l.m_pos[i], l.m_pos[i+1], size, l.m_color[i])
		}
	case DU_DRAW_TRIS:
		for i := 0; i+2 < l.Size(); i += 3 {
			ax, ay := d.Project(l.m_pos[i])
			bx, by := d.Project(l.m_pos[i+1])
			cx, cy := d.Project(l.m_pos[i+2])
			d.fill(l.m_color[i], ax, ay, bx, by, cx, cy)
		}
	}
	l.clear()
}

func (d *ImageDebugDraw) line(a, b common.Vec3, width float32, col Colorb) {
	ax, ay := d.Project(a)
	bx, by := d.Project(b)
	dx, dy := bx-ax, by-ay
	n := float32(math.Hypot(float64(dx), float64(dy)))
	if n < 1e-3 {
		return
	}
	nx, ny := -dy/n*width/2, dx/n*width/2
	d.fill(col, ax+nx, ay+ny, bx+nx, by+ny, bx-nx, by-ny, ax-nx, ay-ny)
}

// fill rasterizes the closed polygon given as x,y pairs.
func (d *ImageDebugDraw) fill(col Colorb, xy ...float32) {
	if col.A() == 0 || len(xy) < 6 {
		return
	}
	b := d.img.Bounds()
	d.ras.Reset(b.Dx(), b.Dy())
	d.ras.MoveTo(xy[0], xy[1])
	for i := 2; i+1 < len(xy); i += 2 {
		d.ras.LineTo(xy[i], xy[i+1])
	}
	d.ras.ClosePath()
	d.ras.Draw(d.img, b, image.NewUniform(col), image.Point{})
}

// SetFontSize switches labels to the Go regular TrueType face at size
// points. Zero restores the built-in bitmap face.
func (d *ImageDebugDraw) SetFontSize(size float64) error {
	if size <= 0 {
		d.face = basicfont.Face7x13
		return nil
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	d.face = truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	return nil
}

// Text draws a label centered on pos.
func (d *ImageDebugDraw) Text(pos common.Vec3, text string, color Colorb) {
	x, y := d.Project(pos)
	w := font.MeasureString(d.face, text)
	m := d.face.Metrics()
	dr := &font.Drawer{
		Dst:  d.img,
		Src:  image.NewUniform(color),
		Face: d.face,
		Dot: fixed.Point26_6{
			X: fixed.I(int(x)) - w/2,
			Y: fixed.I(int(y)) + (m.Ascent-m.Descent)/2,
		},
	}
	dr.DrawString(text)
}

func (d *ImageDebugDraw) EncodePNG(w io.Writer) error {
	return png.Encode(w, d.img)
}

func (d *ImageDebugDraw) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err = d.EncodePNG(bw); err != nil {
		return err
	}
	return bw.Flush()
}
