package material

import (
	"errors"
	"math"
	"testing"
)

func TestCatalogFractionSums(t *testing.T) {
	cat := NewBABYCatalog().With(Entry{Key: Concrete, Material: ConcreteMaterial()})

	for _, m := range cat.Materials() {
		for kind, sum := range m.FractionSums() {
			if math.Abs(sum-1) > 1e-6 {
				t.Errorf("%s: %s fractions sum to %.9f", m.Name, kind, sum)
			}
		}
	}

	if err := cat.Validate(1e-6); err != nil {
		t.Errorf("expected valid catalog, got %v", err)
	}
}

func TestHeliumDensity(t *testing.T) {
	got := IdealGasDensity(34473.8, 300, 2077)
	expected := 34473.8 / (2077 * 300) / 1000
	if math.Abs(got-expected) > 1e-8 {
		t.Errorf("expected %g, got %g", expected, got)
	}
	if math.Abs(got-5.5327e-5) > 1e-8 {
		t.Errorf("expected about 5.5327e-5 g/cm3, got %g", got)
	}

	he, err := NewBABYCatalog().Get(Helium)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if he.Density != got {
		t.Errorf("catalog helium density %g differs from ideal gas %g", he.Density, got)
	}
}

func TestSaltDensity(t *testing.T) {
	rho := SaltDensity(SaltTemperature, SaltLiClFraction)
	if rho < 1.5 || rho > 1.6 {
		t.Errorf("expected salt density near 1.55 g/cm3, got %f", rho)
	}
	if SaltDensity(700, SaltLiClFraction) >= rho {
		t.Error("salt density should fall with temperature")
	}
	if SaltDensity(650, SaltLiClFraction) != rho {
		t.Error("salt density should be deterministic")
	}
}

func TestCatalogOrderAndLookup(t *testing.T) {
	cat := NewBABYCatalog()
	keys := cat.Keys()
	if len(keys) != 14 {
		t.Fatalf("expected 14 materials, got %d", len(keys))
	}
	if keys[0] != Inconel625 || keys[len(keys)-1] != Niobium {
		t.Errorf("unexpected key order %v", keys)
	}

	if _, err := cat.Get("unobtainium"); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("expected ErrUnknownMaterial, got %v", err)
	}

	a, _ := cat.Get(Lead)
	b, _ := cat.Get(Lead)
	if a != b {
		t.Error("catalog should hand out shared references")
	}
}

func TestCatalogDuplicate(t *testing.T) {
	m := New("x").Element("C", 1, AtomFraction).Density(1).Build()
	_, err := NewCatalog(Entry{Key: "a", Material: m}, Entry{Key: "a", Material: m})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestCatalogWithKeepsExisting(t *testing.T) {
	cat := NewBABYCatalog()
	air, _ := cat.Get(Air)
	ext := cat.With(Entry{Key: Air, Material: AirMaterial()}, Entry{Key: Concrete, Material: ConcreteMaterial()})

	if ext.Len() != cat.Len()+1 {
		t.Errorf("expected %d materials, got %d", cat.Len()+1, ext.Len())
	}
	got, _ := ext.Get(Air)
	if got != air {
		t.Error("existing entries should not be replaced")
	}
	if cat.Len() != 14 {
		t.Error("original catalog should not change")
	}
}

func TestExpandAtomFractions(t *testing.T) {
	m := New("alumina").
		Element("O", 0.6, AtomFraction).
		Element("Al", 0.4, AtomFraction).
		Density(3.98).
		Build()

	nucs, kind, err := m.Expand()
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if kind != AtomFraction {
		t.Errorf("expected ao, got %s", kind)
	}
	if len(nucs) != 4 {
		t.Fatalf("expected 4 nuclides, got %d", len(nucs))
	}

	var sum float64
	for _, n := range nucs {
		sum += n.Fraction
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("expected expanded sum 1, got %f", sum)
	}
	if nucs[0].Name != "O16" || math.Abs(nucs[0].Fraction-0.6*0.99757) > 1e-12 {
		t.Errorf("unexpected first nuclide %+v", nucs[0])
	}
}

func TestExpandWeightFractions(t *testing.T) {
	m := New("li").Element("Li", 1, WeightFraction).Density(0.5).Build()
	nucs, _, err := m.Expand()
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	li6 := 0.0759 * 6.0151228874
	li7 := 0.9241 * 7.0160034366
	expected := li6 / (li6 + li7)
	if math.Abs(nucs[0].Fraction-expected) > 1e-12 {
		t.Errorf("expected Li6 wo %f, got %f", expected, nucs[0].Fraction)
	}
}

func TestExpandErrors(t *testing.T) {
	mixed := New("mixed").Element("C", 0.5, AtomFraction).Element("H", 0.5, WeightFraction).Density(1).Build()
	if _, _, err := mixed.Expand(); !errors.Is(err, ErrMixedFractions) {
		t.Errorf("expected ErrMixedFractions, got %v", err)
	}

	unknown := New("u").Element("Xx", 1, AtomFraction).Density(1).Build()
	if _, _, err := unknown.Expand(); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("expected ErrUnknownElement, got %v", err)
	}
}

func TestAbundanceTable(t *testing.T) {
	for el, isos := range naturalAbundance {
		var sum float64
		for _, i := range isos {
			sum += i.Abundance
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("%s: abundances sum to %f", el, sum)
		}
	}

	for _, el := range NewBABYCatalog().With(Entry{Key: Concrete, Material: ConcreteMaterial()}).Elements() {
		if _, ok := NaturalIsotopes(el); !ok {
			t.Errorf("missing abundance data for %s", el)
		}
	}
}

func TestValidateRejectsBadMaterial(t *testing.T) {
	m := New("bad").Element("C", 0.5, AtomFraction).Density(1).Build()
	if err := m.Validate(1e-6); err == nil {
		t.Error("expected error for fractions summing to 0.5")
	}

	m = New("bad").Element("C", 1, AtomFraction).Build()
	if err := m.Validate(1e-6); err == nil {
		t.Error("expected error for zero density")
	}
}
