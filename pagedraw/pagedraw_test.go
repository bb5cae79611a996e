/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/handles"
	"github.com/quillpdf/quill/pcolor"
	"github.com/quillpdf/quill/perr"
)

type fakeCaps struct{ cmyk bool }

func (c fakeCaps) HasCMYKProfile() bool { return c.cmyk }

type fakeFeeder struct{ next uint16 }

func (f *fakeFeeder) Feed(handles.FontId, rune) (uint16, error) {
	f.next++
	return f.next, nil
}

func (f *fakeFeeder) FeedGlyph(handles.FontId, uint16, rune) (uint16, error) {
	f.next++
	return f.next, nil
}

func (f *fakeFeeder) FeedLigature(handles.FontId, uint16, string) (uint16, error) {
	f.next++
	return f.next, nil
}

func TestSimpleTextLine(t *testing.T) {
	feeder := &fakeFeeder{}
	d := New(KindPage, fakeCaps{}, feeder)
	require.NoError(t, d.Text(func(tb *TextBuilder) error {
		require.NoError(t, tb.SetFont(handles.FontId(1), 12))
		tb.MoveLine(10, 10)
		tb.ShowText("Hi")
		return nil
	}))
	ser, err := d.Serialize()
	require.NoError(t, err)
	out := string(ser.Content)
	require.Contains(t, out, "BT")
	require.Contains(t, out, "ET")
	require.Contains(t, out, "/F1 12.000 Tf")
	require.Contains(t, out, "<00010002> Tj")
}

func TestPathAndPaintOperators(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	d.Mv(0, 0)
	d.Ln(10, 0)
	d.Ln(10, 10)
	d.ClosePath()
	d.Fill()
	ser, err := d.Serialize()
	require.NoError(t, err)
	out := string(ser.Content)
	require.Contains(t, out, "0.000 0.000 m")
	require.Contains(t, out, "h")
	require.Contains(t, out, "f")
}

func TestNegativeLineWidthRejected(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	err := d.LineWidth(-1)
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.BadEnum))
}

func TestFlatnessRangeEnforced(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	require.Error(t, d.Flatness(-0.1))
	require.Error(t, d.Flatness(100.1))
	require.NoError(t, d.Flatness(50))
}

func TestCMYKRequiresProfile(t *testing.T) {
	d := New(KindPage, fakeCaps{cmyk: false}, nil)
	err := d.FillCMYK(0, 0, 0, 1)
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.NoCmykProfile))

	d2 := New(KindPage, fakeCaps{cmyk: true}, nil)
	require.NoError(t, d2.FillCMYK(0, 0, 0, 1))
}

func TestColorClampedToUnitRange(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	d.FillRGB(2, -1, 0.5)
	ser, err := d.Serialize()
	require.NoError(t, err)
	require.Contains(t, string(ser.Content), "1.000 0.000 0.500 rg")
}

func TestHighLevelColorDispatch(t *testing.T) {
	d := New(KindPage, fakeCaps{cmyk: true}, nil)
	require.NoError(t, d.FillColor(pcolor.RGB(1, 0, 0)))
	require.NoError(t, d.StrokeColor(pcolor.CMYK(0, 1, 0, 0)))
	ser, err := d.Serialize()
	require.NoError(t, err)
	out := string(ser.Content)
	require.Contains(t, out, "rg")
	require.Contains(t, out, "K")
}

func TestXObjectUsageRecorded(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	require.NoError(t, d.DrawXObject(handles.ImageRef(handles.ImageId(3))))
	ser, err := d.Serialize()
	require.NoError(t, err)
	require.Len(t, ser.Usage.XObjects, 1)
	require.Contains(t, string(ser.Content), "/Im3 Do")
}

func TestAnnotationReuseRejected(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	require.NoError(t, d.Annotate(handles.AnnotationId(1)))
	err := d.Annotate(handles.AnnotationId(1))
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.AnnotationReuse))
}

func TestSerializeTwiceFails(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	_, err := d.Serialize()
	require.NoError(t, err)
	_, err = d.Serialize()
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.WritingTwice))
}

func TestSerializeRefusesUnclosedState(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	d.Save()
	_, err := d.Serialize()
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.UnclosedMarkedContent))
}

func TestUnbalancedActualTextRejected(t *testing.T) {
	d := New(KindPage, fakeCaps{}, &fakeFeeder{})
	err := d.Text(func(tb *TextBuilder) error {
		require.NoError(t, tb.SetFont(handles.FontId(1), 10))
		tb.ShowTextAtoms([]TJAtom{
			{Kind: AtomActualText, ActualTextOpen: true},
			{Kind: AtomCodepoint, Codepoint: 'x'},
		})
		return nil
	})
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.DrawStateEndMismatch))
}

func TestBalancedActualTextAccepted(t *testing.T) {
	d := New(KindPage, fakeCaps{}, &fakeFeeder{})
	err := d.Text(func(tb *TextBuilder) error {
		require.NoError(t, tb.SetFont(handles.FontId(1), 10))
		tb.ShowTextAtoms([]TJAtom{
			{Kind: AtomActualText, ActualTextOpen: true},
			{Kind: AtomCodepoint, Codepoint: 'x'},
			{Kind: AtomActualText, ActualTextOpen: false},
		})
		return nil
	})
	require.NoError(t, err)
}

func TestDashArrayRejectsNegativeEntries(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	err := d.DashPattern([]float64{1, -2}, 0)
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.BadEnum))
	require.NoError(t, d.DashPattern([]float64{}, 0))
}

func TestGraphicsStateSaveRestoreBalance(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	d.Save()
	require.NoError(t, d.Restore())
	err := d.Restore()
	require.Error(t, err)
	require.True(t, perr.Is(err, perr.DrawStateEndMismatch))
}

func TestFormXObjectBBox(t *testing.T) {
	d := New(KindFormXObject, fakeCaps{}, nil)
	d.SetBBox(0, 0, 100, 200)
	ser, err := d.Serialize()
	require.NoError(t, err)
	require.Equal(t, KindFormXObject, ser.Kind)
	require.Equal(t, [4]float64{0, 0, 100, 200}, ser.BBox)
}

func TestPatternColorWithUnderlying(t *testing.T) {
	d := New(KindPage, fakeCaps{}, nil)
	underlying := pcolor.RGB(0.2, 0.4, 0.6)
	require.NoError(t, d.FillColor(pcolor.PatternColor(handles.PatternId(2), &underlying)))
	ser, err := d.Serialize()
	require.NoError(t, err)
	require.Len(t, ser.Usage.Patterns, 1)
	require.True(t, strings.Contains(string(ser.Content), "/P2 scn"))
}
