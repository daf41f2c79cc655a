package tally

// Names of the tritium breeding tallies.
const (
	TBR     = "TBR"
	MeshTBR = "UM_TBR"
)

// TritiumScore counts tritium production from any reaction.
const TritiumScore = "(n,Xt)"

// Breeding returns the TBR tally on the salt cell, split by lithium isotope,
// and, when mesh is non-nil, the same score over the salt cell and mesh.
func Breeding(saltCell string, nuclides []string, mesh *UnstructuredMesh) []*Tally {
	ts := []*Tally{{
		Name:     TBR,
		Scores:   []string{TritiumScore},
		Filters:  []Filter{CellFilter{Cells: []string{saltCell}}},
		Nuclides: append([]string(nil), nuclides...),
	}}
	if mesh != nil {
		ts = append(ts, &Tally{
			Name:    MeshTBR,
			Scores:  []string{TritiumScore},
			Filters: []Filter{CellFilter{Cells: []string{saltCell}}, MeshFilter{Mesh: mesh}},
		})
	}
	return ts
}
