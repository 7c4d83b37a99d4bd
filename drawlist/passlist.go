package drawlist

// maxPassNameLen mirrors the render graph's fixed-capacity name fields.
const maxPassNameLen = 63

// PassDrawList is a filtered, per-pass view over a DrawList: an index
// array plus the pass name used to re-run the predicate (§4.4).
type PassDrawList struct {
	list    *DrawList
	name    string
	indices []int
}

// NewPassDrawList creates a PassDrawList bound to list and name. name is
// truncated to 63 characters.
func NewPassDrawList(list *DrawList, name string) *PassDrawList {
	if len(name) > maxPassNameLen {
		name = name[:maxPassNameLen]
	}
	return &PassDrawList{list: list, name: name}
}

// Name returns the pass name this view was built for.
func (p *PassDrawList) Name() string { return p.name }

// BuildForPass re-scans the bound DrawList and keeps the indices where
// predicate(materialID, passName) returns true, in list order — which is
// sorted order if the caller sorted the list first.
func (p *PassDrawList) BuildForPass(predicate MaterialPassPredicate) {
	p.indices = p.list.FilterBy(p.name, predicate)
}

// Len returns the number of draw calls kept by the last BuildForPass.
func (p *PassDrawList) Len() int {
	return len(p.indices)
}

// At returns the i'th kept draw call, iterating in filtered order.
func (p *PassDrawList) At(i int) (DrawCall, bool) {
	if i < 0 || i >= len(p.indices) {
		return DrawCall{}, false
	}
	return p.list.calls[p.indices[i]], true
}
