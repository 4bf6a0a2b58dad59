package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

// Screen draws wireframes onto an ebiten image by projecting them on the CPU.
type Screen struct {
	dst      *ebiten.Image
	viewProj mgl32.Mat4
	in3D     bool
	face     text.Face
}

func NewScreen() *Screen {
	return &Screen{face: text.NewGoXFace(basicfont.Face7x13)}
}

// BeginFrame targets dst for the frame and clears it.
func (s *Screen) BeginFrame(dst *ebiten.Image, clear color.Color) {
	s.dst = dst
	s.in3D = false
	if dst != nil {
		dst.Fill(clear)
	}
}

func (s *Screen) Begin3D(cam Camera3D) {
	if s.dst == nil {
		return
	}
	b := s.dst.Bounds()
	s.viewProj = cam.ViewProjection(float32(b.Dx()) / float32(b.Dy()))
	s.in3D = true
}

func (s *Screen) End3D() {
	s.in3D = false
}

func (s *Screen) DrawGrid(slices int, spacing float32) {
	if !s.in3D || slices <= 0 {
		return
	}
	half := float32(slices/2) * spacing
	for i := -slices / 2; i <= slices/2; i++ {
		d := float32(i) * spacing
		clr := color.Color(colornames.Dimgray)
		if i == 0 {
			clr = colornames.Gray
		}
		s.line(mgl32.Vec3{d, 0, -half}, mgl32.Vec3{d, 0, half}, clr)
		s.line(mgl32.Vec3{-half, 0, d}, mgl32.Vec3{half, 0, d}, clr)
	}
}

func (s *Screen) DrawModel(m *Mesh, world mgl32.Mat4, tint color.RGBA) {
	if !s.in3D || m == nil {
		return
	}
	b := s.dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	mvp := s.viewProj.Mul4(world)
	for _, e := range m.Edges {
		x0, y0, ok0 := Project(mvp, m.Vertices[e[0]], w, h)
		x1, y1, ok1 := Project(mvp, m.Vertices[e[1]], w, h)
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(s.dst, x0, y0, x1, y1, 1, tint, true)
	}
}

func (s *Screen) DrawText(str string, x, y int) {
	if s.dst == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(s.dst, str, s.face, op)
}

func (s *Screen) line(a, b mgl32.Vec3, clr color.Color) {
	bounds := s.dst.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	x0, y0, ok0 := Project(s.viewProj, a, w, h)
	x1, y1, ok1 := Project(s.viewProj, b, w, h)
	if !ok0 || !ok1 {
		return
	}
	vector.StrokeLine(s.dst, x0, y0, x1, y1, 1, clr, true)
}
