package geometry

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Layer is one slab of the axial stack.
type Layer struct {
	Name      string
	Thickness decimal.Decimal
}

// L builds a layer whose thickness is the sum of the given decimal strings.
func L(name string, parts ...string) Layer {
	t := decimal.Zero
	for _, p := range parts {
		t = t.Add(decimal.RequireFromString(p))
	}
	return Layer{Name: name, Thickness: t}
}

// Span is a folded layer with absolute bounds.
type Span struct {
	Name      string
	Bottom    float64
	Top       float64
	Thickness float64
}

// Stack folds an ordered list of layers into cumulative axial offsets above
// an origin. Sums are exact; conversion to float happens once per offset.
type Stack struct {
	origin decimal.Decimal
	layers []Layer
	tops   []decimal.Decimal
	index  map[string]int
}

func NewStack(origin float64, layers ...Layer) (*Stack, error) {
	s := &Stack{
		origin: decimal.NewFromFloat(origin),
		layers: append([]Layer(nil), layers...),
		tops:   make([]decimal.Decimal, len(layers)),
		index:  make(map[string]int, len(layers)),
	}
	acc := s.origin
	for i, l := range layers {
		if !l.Thickness.IsPositive() {
			return nil, fmt.Errorf("%w: layer %q thickness %s", ErrInvalidLayer, l.Name, l.Thickness)
		}
		if _, dup := s.index[l.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate layer %q", ErrInvalidLayer, l.Name)
		}
		acc = acc.Add(l.Thickness)
		s.tops[i] = acc
		s.index[l.Name] = i
	}
	return s, nil
}

func (s *Stack) Origin() float64 { return s.origin.InexactFloat64() }

func (s *Stack) topDecimal(name string) (decimal.Decimal, error) {
	i, ok := s.index[name]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	return s.tops[i], nil
}

// Top is the absolute offset of the upper face of the named layer.
func (s *Stack) Top(name string) (float64, error) {
	d, err := s.topDecimal(name)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// Bottom is the absolute offset of the lower face of the named layer.
func (s *Stack) Bottom(name string) (float64, error) {
	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
	}
	if i == 0 {
		return s.Origin(), nil
	}
	return s.tops[i-1].InexactFloat64(), nil
}

// Above is the offset reached by stacking extra on top of the named layer.
func (s *Stack) Above(name string, extra decimal.Decimal) (float64, error) {
	d, err := s.topDecimal(name)
	if err != nil {
		return 0, err
	}
	return d.Add(extra).InexactFloat64(), nil
}

// Planes returns the origin followed by every layer top, strictly increasing.
func (s *Stack) Planes() []float64 {
	out := make([]float64, 0, len(s.tops)+1)
	out = append(out, s.Origin())
	for _, t := range s.tops {
		out = append(out, t.InexactFloat64())
	}
	return out
}

// Spans lists every layer with its absolute bounds.
func (s *Stack) Spans() []Span {
	out := make([]Span, len(s.layers))
	prev := s.origin
	for i, l := range s.layers {
		out[i] = Span{
			Name:      l.Name,
			Bottom:    prev.InexactFloat64(),
			Top:       s.tops[i].InexactFloat64(),
			Thickness: l.Thickness.InexactFloat64(),
		}
		prev = s.tops[i]
	}
	return out
}
