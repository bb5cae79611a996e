/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

import "fmt"

// M (move-to), L (line-to), C/V/Y (Bezier curves), Re (rectangle), H
// (close path) — path-construction operators, spec.md §4.3.

// Mv adds `x y m`: begin a new subpath at (x, y).
func (d *DrawContext) Mv(x, y float64) {
	d.cs.Append(fmt.Sprintf("%s %s m", fnum(x), fnum(y)))
}

// Ln adds `x y l`: append a straight line segment.
func (d *DrawContext) Ln(x, y float64) {
	d.cs.Append(fmt.Sprintf("%s %s l", fnum(x), fnum(y)))
}

// CurveTo adds `x1 y1 x2 y2 x3 y3 c`: a full cubic Bezier segment.
func (d *DrawContext) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	d.cs.Append(fmt.Sprintf("%s %s %s %s %s %s c", fnum(x1), fnum(y1), fnum(x2), fnum(y2), fnum(x3), fnum(y3)))
}

// CurveToV adds `x2 y2 x3 y3 v`: current point is the first control point.
func (d *DrawContext) CurveToV(x2, y2, x3, y3 float64) {
	d.cs.Append(fmt.Sprintf("%s %s %s %s v", fnum(x2), fnum(y2), fnum(x3), fnum(y3)))
}

// CurveToY adds `x1 y1 x3 y3 y`: final point is also the second control
// point.
func (d *DrawContext) CurveToY(x1, y1, x3, y3 float64) {
	d.cs.Append(fmt.Sprintf("%s %s %s %s y", fnum(x1), fnum(y1), fnum(x3), fnum(y3)))
}

// Rect adds `x y w h re`: append a rectangle subpath.
func (d *DrawContext) Rect(x, y, w, h float64) {
	d.cs.Append(fmt.Sprintf("%s %s %s %s re", fnum(x), fnum(y), fnum(w), fnum(h)))
}

// ClosePath adds `h`: close the current subpath with a straight line.
func (d *DrawContext) ClosePath() {
	d.cs.Append("h")
}

// Transform adds `a b c d e f cm`: concatenate a matrix onto the CTM.
func (d *DrawContext) Transform(a, b, c, dd, e, f float64) {
	d.cs.Append(fmt.Sprintf("%s %s %s %s %s %s cm", fnum(a), fnum(b), fnum(c), fnum(dd), fnum(e), fnum(f)))
}

// Translate emits a `cm` that translates by (tx, ty).
func (d *DrawContext) Translate(tx, ty float64) {
	d.Transform(1, 0, 0, 1, tx, ty)
}

// ScaleXY emits a `cm` that scales by (sx, sy).
func (d *DrawContext) ScaleXY(sx, sy float64) {
	d.Transform(sx, 0, 0, sy, 0, 0)
}

// Rotate emits a `cm` that rotates by angleRad radians counter-clockwise.
func (d *DrawContext) Rotate(angleRad float64) {
	// math import kept local to avoid polluting this file's otherwise
	// string-formatting-only import list.
	cos, sin := cosSin(angleRad)
	d.Transform(cos, sin, -sin, cos, 0, 0)
}
