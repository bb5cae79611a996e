/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/iccolor"
)

func newTestDocument() *Document {
	color := iccolor.NewPipeline(nil, nil, nil)
	return New(Properties{Version: Version17}, color)
}

func TestObjectNumberingStartsAtOneAndIsDense(t *testing.T) {
	d := newTestDocument()
	first := d.addFull(core.MakeDict())
	second := d.addFull(core.MakeDict())
	require.Equal(t, core.ObjectID(1), first)
	require.Equal(t, core.ObjectID(2), second)
}

func TestReserveThenSetDeferredResolves(t *testing.T) {
	d := newTestDocument()
	id := d.reserve()
	d.setDeferred(id, func(doc *Document) (core.PdfObject, error) {
		return core.MakeName("Resolved"), nil
	})
	entries, err := d.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, id, entries[0].ID)
	require.Equal(t, "/Resolved", entries[0].Object.WriteString())
}

func TestEntriesAbsorbsObjectsAppendedDuringResolution(t *testing.T) {
	d := newTestDocument()
	id := d.reserve()
	d.setDeferred(id, func(doc *Document) (core.PdfObject, error) {
		child := doc.addFull(core.MakeName("Child"))
		dict := core.MakeDict()
		dict.Set("Kid", core.MakeRef(child))
		return dict, nil
	})
	entries, err := d.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "/Child", entries[1].Object.WriteString())
}

func TestAddGraphicsStateDoesNotDedup(t *testing.T) {
	d := newTestDocument()
	alpha := 0.5
	id1 := d.AddGraphicsState(GraphicsStateParams{FillAlpha: &alpha})
	id2 := d.AddGraphicsState(GraphicsStateParams{FillAlpha: &alpha})
	require.NotEqual(t, id1, id2)
	require.Len(t, d.gstates, 2)
}

func TestAddFunctionType2(t *testing.T) {
	d := newTestDocument()
	id := d.AddFunction(FunctionSpec{
		Domain:  []float64{0, 1},
		IsType2: true,
		C0:      []float64{0, 0, 0},
		C1:      []float64{1, 1, 1},
		N:       1,
	})
	require.True(t, id.Valid())
	entries, err := d.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Contains(t, entries[0].Object.WriteString(), "/FunctionType 2")
}

func TestAddPageBuildsMinimalResources(t *testing.T) {
	d := newTestDocument()
	gs := d.AddGraphicsState(GraphicsStateParams{})

	ctx := d.NewPageContext()
	require.NoError(t, ctx.ApplyGraphicsState(gs))

	pageID, err := d.AddPage(ctx, PageExtra{MediaBox: [4]float64{0, 0, 612, 792}})
	require.NoError(t, err)
	require.NotZero(t, pageID)

	require.NoError(t, d.Finalize(Info{}))
	entries, err := d.Entries()
	require.NoError(t, err)

	var page core.PdfObject
	for _, e := range entries {
		if e.ID == pageID {
			page = e.Object
		}
	}
	require.NotNil(t, page)
	out := page.WriteString()
	require.Contains(t, out, "/Type /Page")
	require.Contains(t, out, "/ExtGState")
	require.NotContains(t, out, "/Font")
	require.NotContains(t, out, "/XObject")
}

func TestOutlinePrevNextFirstLastCount(t *testing.T) {
	d := newTestDocument()
	root := d.AddOutline("Root", 0, 1)
	child1 := d.AddOutline("Child 1", root, 1)
	child2 := d.AddOutline("Child 2", root, 1)

	entries, err := d.Entries()
	require.NoError(t, err)

	byHandle := map[core.ObjectID]core.PdfObject{}
	for _, e := range entries {
		byHandle[e.ID] = e.Object
	}

	rootNode := d.outlines[root]
	rootOut := byHandle[rootNode.objID].WriteString()
	require.Contains(t, rootOut, "/Count 2")

	c1 := byHandle[d.outlines[child1].objID].WriteString()
	require.NotContains(t, c1, "/Prev")
	require.Contains(t, c1, "/Next")

	c2 := byHandle[d.outlines[child2].objID].WriteString()
	require.Contains(t, c2, "/Prev")
	require.NotContains(t, c2, "/Next")
}

func TestStructureTreeParentChildLinkage(t *testing.T) {
	d := newTestDocument()
	root := d.AddStructureItem("Document", 0)
	child := d.AddStructureItem("P", root)

	entries, err := d.Entries()
	require.NoError(t, err)
	byHandle := map[core.ObjectID]core.PdfObject{}
	for _, e := range entries {
		byHandle[e.ID] = e.Object
	}

	rootOut := byHandle[d.structure[root].objID].WriteString()
	require.Contains(t, rootOut, "/K")

	childOut := byHandle[d.structure[child].objID].WriteString()
	require.Contains(t, childOut, "/P")
	require.Contains(t, childOut, "/S /P")
}

func TestRolemapAppliesToStructureRole(t *testing.T) {
	d := newTestDocument()
	d.AddRolemapEntry("CustomHeading", "H1")
	item := d.AddStructureItem("CustomHeading", 0)

	entries, err := d.Entries()
	require.NoError(t, err)
	for _, e := range entries {
		if e.ID == d.structure[item].objID {
			require.Contains(t, e.Object.WriteString(), "/S /H1")
		}
	}
}

func TestFinalizeBuildsCatalogAndInfo(t *testing.T) {
	d := newTestDocument()
	ctx := d.NewPageContext()
	_, err := d.AddPage(ctx, PageExtra{MediaBox: [4]float64{0, 0, 100, 100}})
	require.NoError(t, err)

	require.NoError(t, d.Finalize(Info{Title: "Test Doc"}))
	entries, err := d.Entries()
	require.NoError(t, err)

	var catalog, info core.PdfObject
	for _, e := range entries {
		if e.ID == d.RootID() {
			catalog = e.Object
		}
		if e.ID == d.InfoID() {
			info = e.Object
		}
	}
	require.NotNil(t, catalog)
	require.Contains(t, catalog.WriteString(), "/Type /Catalog")
	require.NotNil(t, info)
	require.True(t, strings.Contains(info.WriteString(), "Test Doc"))
}

func TestMarkWrittenRejectsSecondCall(t *testing.T) {
	d := newTestDocument()
	require.NoError(t, d.Finalize(Info{}))
	// A second Finalize is not part of the documented contract (pdfwrite
	// only ever calls it once), but MarkWritten is the operation that
	// actually enforces the single-write invariant; see writer tests.
	require.NoError(t, d.MarkWritten())
	require.Error(t, d.MarkWritten())
}
