/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pdfdoc

import (
	"github.com/quillpdf/quill/core"
	"github.com/quillpdf/quill/handles"
)

// outlineNode is one bookmark in the document outline tree; /First, /Last,
// /Count, /Prev, /Next are computed by the writer from parent/children
// links rather than tracked incrementally (spec.md §4.7's add_outline).
type outlineNode struct {
	id       handles.OutlineId
	objID    core.ObjectID
	title    string
	parent   handles.OutlineId
	children []handles.OutlineId
	pageRef  core.ObjectID
}

// AddOutline implements spec.md §4.7's add_outline: registers a bookmark
// under parent (0 for a top-level entry), pointing at targetPage.
func (d *Document) AddOutline(title string, parent handles.OutlineId, targetPage core.ObjectID) handles.OutlineId {
	id := handles.OutlineId(len(d.outlines) + 1)
	objID := d.reserve()
	node := &outlineNode{id: id, objID: objID, title: title, parent: parent, pageRef: targetPage}
	d.outlines[id] = node
	if parent.Valid() {
		if p, ok := d.outlines[parent]; ok {
			p.children = append(p.children, id)
		}
	}
	d.setDeferred(objID, func(doc *Document) (core.PdfObject, error) {
		return doc.buildOutlineDict(id)
	})
	return id
}

func (d *Document) buildOutlineDict(id handles.OutlineId) (core.PdfObject, error) {
	n := d.outlines[id]
	dict := core.MakeDict()
	dict.Set("Title", core.MakeString(n.title))
	if n.pageRef != 0 {
		dest := core.MakeArray(core.MakeRef(n.pageRef), core.MakeName("Fit"))
		dict.Set("Dest", dest)
	}
	if n.parent.Valid() {
		if p, ok := d.outlines[n.parent]; ok {
			dict.Set("Parent", core.MakeRef(p.objID))
		}
	}
	if len(n.children) > 0 {
		first := d.outlines[n.children[0]]
		last := d.outlines[n.children[len(n.children)-1]]
		dict.Set("First", core.MakeRef(first.objID))
		dict.Set("Last", core.MakeRef(last.objID))
		dict.Set("Count", core.MakeInteger(int64(len(n.children))))
	}
	siblings := siblingsOf(d, n)
	for i, sib := range siblings {
		if sib != n.id {
			continue
		}
		if i > 0 {
			dict.Set("Prev", core.MakeRef(d.outlines[siblings[i-1]].objID))
		}
		if i < len(siblings)-1 {
			dict.Set("Next", core.MakeRef(d.outlines[siblings[i+1]].objID))
		}
		break
	}
	return dict, nil
}

func siblingsOf(d *Document, n *outlineNode) []handles.OutlineId {
	if !n.parent.Valid() {
		var top []handles.OutlineId
		for _, other := range d.outlines {
			if !other.parent.Valid() {
				top = append(top, other.id)
			}
		}
		return orderByID(top)
	}
	p, ok := d.outlines[n.parent]
	if !ok {
		return nil
	}
	return p.children
}

func orderByID(ids []handles.OutlineId) []handles.OutlineId {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

// structureNode is one node in the logical structure (tagged PDF) tree.
type structureNode struct {
	id       handles.StructureItemId
	objID    core.ObjectID
	typeName string
	parent   handles.StructureItemId
	children []handles.StructureItemId
}

// AddStructureItem implements spec.md §4.7's add_structure_item: registers
// a node under parent (0 for the structure tree root's direct child), with
// parent/child links tracked so the tree can be emitted once every item has
// been added.
func (d *Document) AddStructureItem(typeOrRole string, parent handles.StructureItemId) handles.StructureItemId {
	id := handles.StructureItemId(len(d.structure) + 1)
	objID := d.reserve()
	node := &structureNode{id: id, objID: objID, typeName: typeOrRole, parent: parent}
	d.structure[id] = node
	if parent.Valid() {
		if p, ok := d.structure[parent]; ok {
			p.children = append(p.children, id)
		}
	}
	d.setDeferred(objID, func(doc *Document) (core.PdfObject, error) {
		return doc.buildStructureDict(id)
	})
	return id
}

func (d *Document) buildStructureDict(id handles.StructureItemId) (core.PdfObject, error) {
	n := d.structure[id]
	dict := core.MakeDict()
	dict.Set("Type", core.MakeName("StructElem"))
	dict.Set("S", core.MakeName(resolveRole(d.rolemap, n.typeName)))
	if n.parent.Valid() {
		if p, ok := d.structure[n.parent]; ok {
			dict.Set("P", core.MakeRef(p.objID))
		}
	}
	if len(n.children) > 0 {
		kids := core.MakeArray()
		for _, c := range n.children {
			kids.Append(core.MakeRef(d.structure[c].objID))
		}
		dict.Set("K", kids)
	}
	return dict, nil
}

func resolveRole(rolemap map[string]string, typeName string) string {
	if mapped, ok := rolemap[typeName]; ok {
		return mapped
	}
	return typeName
}
