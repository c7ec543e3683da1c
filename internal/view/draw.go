package view

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/internal/scene"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/ecs"
	"github.com/lao-tseu-is-alive/go-obstacle-navigation/pkg/geometry"
)

// arrowLength is used for arrows whose entity has no radius.
const arrowLength = 10.0

var whiteImage = ebiten.NewImage(3, 3)

func init() {
	whiteImage.Fill(color.White)
}

func pointer(x, y float64) geometry.Vector2D {
	return geometry.NewVector(x, y)
}

func vertex(p geometry.Vector2D, clr color.RGBA) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(p.X), DstY: float32(p.Y),
		SrcX: 1, SrcY: 1,
		ColorR: float32(clr.R) / 255,
		ColorG: float32(clr.G) / 255,
		ColorB: float32(clr.B) / 255,
		ColorA: float32(clr.A) / 255,
	}
}

// fanTriangles triangulates a polygon from its first vertex. Exact for the
// convex crates the demos use.
func fanTriangles(p geometry.Polygon, clr color.RGBA) ([]ebiten.Vertex, []uint16) {
	n := p.Len()
	if n < 3 {
		return nil, nil
	}
	vs := make([]ebiten.Vertex, 0, n)
	for _, pt := range p.Points() {
		vs = append(vs, vertex(pt, clr))
	}
	is := make([]uint16, 0, 3*(n-2))
	for i := 1; i < n-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	return vs, is
}

func drawPolygon(screen *ebiten.Image, p geometry.Polygon, clr color.RGBA) {
	vs, is := fanTriangles(p, clr)
	if len(is) == 0 {
		return
	}
	screen.DrawTriangles(vs, is, whiteImage, &ebiten.DrawTrianglesOptions{})
	strokePolygon(screen, p, clr)
}

func strokePolygon(screen *ebiten.Image, p geometry.Polygon, clr color.RGBA) {
	for _, e := range p.Edges() {
		vector.StrokeLine(screen, float32(e.A.X), float32(e.A.Y), float32(e.B.X), float32(e.B.Y), 1, clr, true)
	}
}

func drawPath(screen *ebiten.Image, path []geometry.Vector2D, clr color.RGBA) {
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, clr, true)
	}
	for _, p := range path {
		vector.FillCircle(screen, float32(p.X), float32(p.Y), 3, clr, true)
	}
}

func drawItem(screen *ebiten.Image, item scene.Item) {
	switch item.Shape {
	case ecs.ShapeArrow:
		vs := arrowVertices(item)
		screen.DrawTriangles(vs, []uint16{0, 1, 2}, whiteImage, &ebiten.DrawTrianglesOptions{})
	default:
		vector.FillCircle(screen, float32(item.Pos.X), float32(item.Pos.Y), float32(item.Radius), item.Color, true)
	}
}

// arrowVertices returns the tip and the two rear corners of an arrow
// pointing along the item's rotation.
func arrowVertices(item scene.Item) []ebiten.Vertex {
	length := item.Radius
	if length <= 0 {
		length = arrowLength
	}
	angle := item.Rotation
	tip := item.Pos.Add(geometry.NewVectorPolar(length, angle))
	right := item.Pos.Add(geometry.NewVectorPolar(length*0.8, angle+2.5))
	left := item.Pos.Add(geometry.NewVectorPolar(length*0.8, angle-2.5))
	return []ebiten.Vertex{
		vertex(tip, item.Color),
		vertex(right, item.Color),
		vertex(left, item.Color),
	}
}

