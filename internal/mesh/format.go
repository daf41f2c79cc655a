package mesh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var ErrFormat = errors.New("mesh: malformed file")

func coord(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// WriteMsh writes m in Gmsh 2.2 ASCII format. Triangles carry their patch
// as physical and elementary tag; tetrahedra use tag 1.
func WriteMsh(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "$MeshFormat")
	fmt.Fprintln(bw, "2.2 0 8")
	fmt.Fprintln(bw, "$EndMeshFormat")

	fmt.Fprintln(bw, "$Nodes")
	fmt.Fprintln(bw, len(m.Nodes))
	for i, p := range m.Nodes {
		fmt.Fprintf(bw, "%d %s %s %s\n", i+1, coord(p.X), coord(p.Y), coord(p.Z))
	}
	fmt.Fprintln(bw, "$EndNodes")

	fmt.Fprintln(bw, "$Elements")
	fmt.Fprintln(bw, len(m.Triangles)+len(m.Tets))
	id := 1
	for _, t := range m.Triangles {
		tag := int(t.Surface)
		fmt.Fprintf(bw, "%d %d 2 %d %d %d %d %d\n", id, GmshTriangle, tag, tag,
			t.Nodes[0]+1, t.Nodes[1]+1, t.Nodes[2]+1)
		id++
	}
	for _, t := range m.Tets {
		fmt.Fprintf(bw, "%d %d 2 1 1 %d %d %d %d\n", id, GmshTetrahedron,
			t[0]+1, t[1]+1, t[2]+1, t[3]+1)
		id++
	}
	fmt.Fprintln(bw, "$EndElements")
	return bw.Flush()
}

// WriteVTK writes the tetrahedra of m as a legacy ASCII unstructured grid.
func WriteVTK(w io.Writer, m *Mesh, title string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# vtk DataFile Version 2.0")
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET UNSTRUCTURED_GRID")

	fmt.Fprintf(bw, "POINTS %d double\n", len(m.Nodes))
	for _, p := range m.Nodes {
		fmt.Fprintf(bw, "%s %s %s\n", coord(p.X), coord(p.Y), coord(p.Z))
	}

	fmt.Fprintf(bw, "\nCELLS %d %d\n", len(m.Tets), 5*len(m.Tets))
	for _, t := range m.Tets {
		fmt.Fprintf(bw, "4 %d %d %d %d\n", t[0], t[1], t[2], t[3])
	}

	fmt.Fprintf(bw, "\nCELL_TYPES %d\n", len(m.Tets))
	for range m.Tets {
		fmt.Fprintln(bw, VTKTetrahedron)
	}
	return bw.Flush()
}

// maxPrealloc bounds allocations sized from header counts.
const maxPrealloc = 1 << 16

type tokens struct {
	sc *bufio.Scanner
}

func (t *tokens) next() (string, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: unexpected end of file", ErrFormat)
	}
	return t.sc.Text(), nil
}

func (t *tokens) nextInt() (int, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrFormat, s)
	}
	return v, nil
}

func (t *tokens) nextFloat() (float64, error) {
	s, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrFormat, s)
	}
	return v, nil
}

// ReadVTK reads a legacy ASCII unstructured grid. Tetrahedra and triangles
// are kept; other cell types are rejected.
func ReadVTK(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil || !strings.HasPrefix(header, "# vtk DataFile") {
		return nil, fmt.Errorf("%w: missing vtk header", ErrFormat)
	}
	if _, err := br.ReadString('\n'); err != nil {
		return nil, fmt.Errorf("%w: missing title", ErrFormat)
	}

	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	tk := &tokens{sc: sc}

	m := &Mesh{}
	var cells [][]int
	for {
		word, err := tk.next()
		if err != nil {
			if errors.Is(err, ErrFormat) {
				break
			}
			return nil, err
		}
		switch strings.ToUpper(word) {
		case "ASCII":
		case "BINARY":
			return nil, fmt.Errorf("%w: binary vtk is not supported", ErrFormat)
		case "DATASET":
			kind, err := tk.next()
			if err != nil {
				return nil, err
			}
			if kind != "UNSTRUCTURED_GRID" {
				return nil, fmt.Errorf("%w: dataset %s", ErrFormat, kind)
			}
		case "POINTS":
			n, err := tk.nextInt()
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, fmt.Errorf("%w: negative point count %d", ErrFormat, n)
			}
			if _, err := tk.next(); err != nil {
				return nil, err
			}
			m.Nodes = make([]r3.Vec, 0, min(n, maxPrealloc))
			for i := 0; i < n; i++ {
				var xyz [3]float64
				for c := range xyz {
					if xyz[c], err = tk.nextFloat(); err != nil {
						return nil, err
					}
				}
				m.Nodes = append(m.Nodes, r3.Vec{X: xyz[0], Y: xyz[1], Z: xyz[2]})
			}
		case "CELLS":
			n, err := tk.nextInt()
			if err != nil {
				return nil, err
			}
			size, err := tk.nextInt()
			if err != nil {
				return nil, err
			}
			// every cell takes its node count plus one entry of the size
			if n < 0 || size < 2*n {
				return nil, fmt.Errorf("%w: CELLS %d %d", ErrFormat, n, size)
			}
			cells = make([][]int, 0, min(n, maxPrealloc))
			left := size
			for i := 0; i < n; i++ {
				k, err := tk.nextInt()
				if err != nil {
					return nil, err
				}
				if k < 1 || k+1 > left-2*(n-1-i) {
					return nil, fmt.Errorf("%w: cell %d has %d nodes", ErrFormat, i, k)
				}
				left -= k + 1
				c := make([]int, k)
				for j := range c {
					if c[j], err = tk.nextInt(); err != nil {
						return nil, err
					}
					if c[j] < 0 || c[j] >= len(m.Nodes) {
						return nil, fmt.Errorf("%w: cell %d references node %d", ErrFormat, i, c[j])
					}
				}
				cells = append(cells, c)
			}
		case "CELL_TYPES":
			n, err := tk.nextInt()
			if err != nil {
				return nil, err
			}
			if n != len(cells) {
				return nil, fmt.Errorf("%w: %d cell types for %d cells", ErrFormat, n, len(cells))
			}
			for i := 0; i < n; i++ {
				typ, err := tk.nextInt()
				if err != nil {
					return nil, err
				}
				c := cells[i]
				switch {
				case typ == VTKTetrahedron && len(c) == 4:
					m.Tets = append(m.Tets, [4]int{c[0], c[1], c[2], c[3]})
				case typ == VTKTriangle && len(c) == 3:
					m.Triangles = append(m.Triangles, Triangle{Nodes: [3]int{c[0], c[1], c[2]}})
				default:
					return nil, fmt.Errorf("%w: cell %d has type %d with %d nodes", ErrFormat, i, typ, len(c))
				}
			}
		default:
			return nil, fmt.Errorf("%w: unexpected %q", ErrFormat, word)
		}
	}
	if len(m.Nodes) == 0 {
		return nil, fmt.Errorf("%w: no points", ErrFormat)
	}
	return m, nil
}
