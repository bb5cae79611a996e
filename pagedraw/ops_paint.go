/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

// Painting operators (spec.md §4.3): stroke, fill (nonzero/even-odd),
// fill+stroke combinations, and the no-op path painter `n` (used after
// `W`/`W*` to apply a clip without painting).

// Stroke adds `S`.
func (d *DrawContext) Stroke() { d.cs.Append("S") }

// CloseStroke adds `s`: close the path, then stroke.
func (d *DrawContext) CloseStroke() { d.cs.Append("s") }

// Fill adds `f`: fill using the nonzero winding rule.
func (d *DrawContext) Fill() { d.cs.Append("f") }

// FillEvenOdd adds `f*`: fill using the even-odd rule.
func (d *DrawContext) FillEvenOdd() { d.cs.Append("f*") }

// FillStroke adds `B`: fill then stroke, nonzero winding rule.
func (d *DrawContext) FillStroke() { d.cs.Append("B") }

// FillStrokeEvenOdd adds `B*`: fill then stroke, even-odd rule.
func (d *DrawContext) FillStrokeEvenOdd() { d.cs.Append("B*") }

// CloseFillStroke adds `b`: close, fill, then stroke, nonzero winding rule.
func (d *DrawContext) CloseFillStroke() { d.cs.Append("b") }

// CloseFillStrokeEvenOdd adds `b*`: close, fill, then stroke, even-odd rule.
func (d *DrawContext) CloseFillStrokeEvenOdd() { d.cs.Append("b*") }

// NoPaint adds `n`: end the path without filling or stroking it (the usual
// way to apply a pending clip).
func (d *DrawContext) NoPaint() { d.cs.Append("n") }

// ClipNonzero adds `W`: intersect the clipping path using the nonzero
// winding rule. Takes effect only after the next path-painting operator.
func (d *DrawContext) ClipNonzero() { d.cs.Append("W") }

// ClipEvenOdd adds `W*`: intersect the clipping path using the even-odd
// rule.
func (d *DrawContext) ClipEvenOdd() { d.cs.Append("W*") }
