// Package raster draws lines, rectangles, triangles, circles and ellipses onto a 1-bit surface.
//
// Every primitive reduces to single pixel writes through a Plotter, so clipping is whatever the
// Plotter does; *image1bit.Frame ignores pixels outside its bounds. All coordinates are in
// pixels, inclusive unless noted otherwise.
package raster

import (
	"image"

	"periph.io/x/devices/v3/sh1106/image1bit"
)

// Plotter is a surface that can set single pixels.
type Plotter interface {
	SetPixel(x, y int, mode image1bit.Mode)
}

// Line draws a line from (x1, y1) to (x2, y2), both ends included.
func Line(p Plotter, x1, y1, x2, y2 int, mode image1bit.Mode) {
	switch {
	case x1 == x2:
		if y1 > y2 {
			y1, y2 = y2, y1
		}
		for y := y1; y <= y2; y++ {
			p.SetPixel(x1, y, mode)
		}
	case y1 == y2:
		hline(p, x1, x2, y1, mode)
	default:
		bresenham(p, x1, y1, x2, y2, mode)
	}
}

// bresenham walks the major axis one pixel at a time, stepping the minor axis whenever the
// accumulated error passes half a pixel.
func bresenham(p Plotter, x1, y1, x2, y2 int, mode image1bit.Mode) {
	dx, dy := x2-x1, y2-y1
	ux, uy := step(dx), step(dy)
	dx, dy = abs(dx), abs(dy)
	x, y, eps := x1, y1, 0
	if dx > dy {
		for ; x != x2; x += ux {
			p.SetPixel(x, y, mode)
			eps += dy
			if eps<<1 >= dx {
				y += uy
				eps -= dx
			}
		}
	} else {
		for ; y != y2; y += uy {
			p.SetPixel(x, y, mode)
			eps += dx
			if eps<<1 >= dy {
				x += ux
				eps -= dy
			}
		}
	}
	// The error term lands exactly on (x2, y2).
	p.SetPixel(x, y, mode)
}

// Rect draws the outline of a rectangle from (x, y) to (x+w, y+h). Both extents are inclusive:
// the border covers (w+1)×(h+1) pixels.
func Rect(p Plotter, x, y, w, h int, mode image1bit.Mode) {
	Line(p, x, y, x+w, y, mode)
	Line(p, x, y+h, x+w, y+h, mode)
	Line(p, x, y, x, y+h, mode)
	Line(p, x+w, y, x+w, y+h, mode)
}

// FilledRect fills w×h pixels with the top-left corner at (x, y). Unlike Rect, the extents are
// exclusive. Empty or negative sizes draw nothing.
func FilledRect(p Plotter, x, y, w, h int, mode image1bit.Mode) {
	if w <= 0 || h <= 0 {
		return
	}
	for i := 0; i < h; i++ {
		Line(p, x, y+i, x+w-1, y+i, mode)
	}
}

// Triangle draws the outline connecting the three vertices in order.
func Triangle(p Plotter, x1, y1, x2, y2, x3, y3 int, mode image1bit.Mode) {
	Line(p, x1, y1, x2, y2, mode)
	Line(p, x2, y2, x3, y3, mode)
	Line(p, x3, y3, x1, y1, mode)
}

// FilledTriangle fills a triangle with horizontal spans. The vertices are ordered by y; rows
// down to the middle vertex join the long edge with the upper short edge, rows below it join
// the long edge with the lower short edge. Flat and collinear triangles are filled too.
func FilledTriangle(p Plotter, x1, y1, x2, y2, x3, y3 int, mode image1bit.Mode) {
	v := [3]image.Point{{x1, y1}, {x2, y2}, {x3, y3}}
	// Stable three element sort on y.
	if v[1].Y < v[0].Y {
		v[0], v[1] = v[1], v[0]
	}
	if v[2].Y < v[1].Y {
		v[1], v[2] = v[2], v[1]
		if v[1].Y < v[0].Y {
			v[0], v[1] = v[1], v[0]
		}
	}
	top, mid, bottom := v[0], v[1], v[2]
	if top.Y == bottom.Y {
		hline(p, min(x1, x2, x3), max(x1, x2, x3), top.Y, mode)
		return
	}
	for y := top.Y; y <= bottom.Y; y++ {
		xa := edgeX(top.X, top.Y, bottom.X, bottom.Y, y)
		var xb int
		switch {
		case y <= mid.Y && top.Y != mid.Y:
			xb = edgeX(top.X, top.Y, mid.X, mid.Y, y)
		case y >= mid.Y && mid.Y != bottom.Y:
			xb = edgeX(bottom.X, bottom.Y, mid.X, mid.Y, y)
		default:
			xb = mid.X
		}
		hline(p, xa, xb, y, mode)
	}
}

// edgeX interpolates the x of the edge (x0, y0)-(x1, y1) at row y using truncating integer
// division anchored at (x0, y0). A flat edge yields x0.
func edgeX(x0, y0, x1, y1, y int) int {
	if y1 == y0 {
		return x0
	}
	return x0 + (y-y0)*(x1-x0)/(y1-y0)
}

// Circle draws a circle outline of radius r centred on (x, y) with the integer midpoint
// algorithm, plotting the eight symmetric points of each octant step.
func Circle(p Plotter, x, y, r int, mode image1bit.Mode) {
	if r < 0 {
		return
	}
	a, b, d := 0, r, 3-2*r
	for a <= b {
		p.SetPixel(x+a, y+b, mode)
		p.SetPixel(x-a, y+b, mode)
		p.SetPixel(x+a, y-b, mode)
		p.SetPixel(x-a, y-b, mode)
		p.SetPixel(x+b, y+a, mode)
		p.SetPixel(x-b, y+a, mode)
		p.SetPixel(x+b, y-a, mode)
		p.SetPixel(x-b, y-a, mode)
		a, b, d = circleStep(a, b, d)
	}
}

// FilledCircle fills the disk of radius r centred on (x, y). Each step of the midpoint walk
// draws the four spans mirrored about the centre.
func FilledCircle(p Plotter, x, y, r int, mode image1bit.Mode) {
	if r < 0 {
		return
	}
	a, b, d := 0, r, 3-2*r
	for a <= b {
		hline(p, x-b, x+b, y+a, mode)
		hline(p, x-b, x+b, y-a, mode)
		hline(p, x-a, x+a, y+b, mode)
		hline(p, x-a, x+a, y-b, mode)
		a, b, d = circleStep(a, b, d)
	}
}

// circleStep advances the octant walk by one column, moving b inward once the decision
// variable turns non-negative.
func circleStep(a, b, d int) (int, int, int) {
	if d < 0 {
		d += 4*a + 6
	} else {
		d += 4*(a-b) + 10
		b--
	}
	return a + 1, b, d
}

// Ellipse draws an ellipse outline centred on (x, y) with horizontal semi-axis a and vertical
// semi-axis b, using the two-region midpoint algorithm.
//
// The decision variable is an int seeded from floating point expressions at the start of each
// region; the truncation is part of the output and must not be rounded differently. The walk
// stops before the row of the centre, so the two points at (x±a, y) are left unset.
func Ellipse(p Plotter, x, y, a, b int, mode image1bit.Mode) {
	xpos, ypos := 0, b
	a2, b2 := a*a, b*b
	d := int(float64(b2) + float64(a2)*(0.25-float64(b)))
	for a2*ypos > b2*xpos {
		plot4(p, x, y, xpos, ypos, mode)
		if d < 0 {
			d += b2 * (xpos<<1 + 3)
			xpos++
		} else {
			d += b2*(xpos<<1+3) + a2*(-(ypos<<1)+2)
			xpos++
			ypos--
		}
	}
	fx := float64(xpos) + 0.5
	d = int(float64(b2)*fx*fx + float64(a2*(ypos-1)*(ypos-1)) - float64(a2*b2))
	for ypos > 0 {
		plot4(p, x, y, xpos, ypos, mode)
		if d < 0 {
			d += b2*(xpos<<1+2) + a2*(-(ypos<<1)+3)
			xpos++
			ypos--
		} else {
			d += a2 * (-(ypos << 1) + 3)
			ypos--
		}
	}
}

func plot4(p Plotter, x, y, dx, dy int, mode image1bit.Mode) {
	p.SetPixel(x+dx, y+dy, mode)
	p.SetPixel(x-dx, y+dy, mode)
	p.SetPixel(x+dx, y-dy, mode)
	p.SetPixel(x-dx, y-dy, mode)
}

// hline sets every pixel of row y between x1 and x2 inclusive, in either order.
func hline(p Plotter, x1, x2, y int, mode image1bit.Mode) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		p.SetPixel(x, y, mode)
	}
}

func step(v int) int {
	if v > 0 {
		return 1
	}
	return -1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
