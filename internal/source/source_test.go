package source

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func TestEjectileEnergy(t *testing.T) {
	tests := []struct {
		theta    float64
		expected float64
	}{
		{0, 14.780},
		{math.Pi / 2, 14.088},
		{math.Pi, 13.429},
	}

	for _, tt := range tests {
		got, err := DT.EjectileEnergy(0.1, tt.theta)
		if err != nil {
			t.Fatalf("theta %f: %v", tt.theta, err)
		}
		if math.Abs(got-tt.expected) > 0.01 {
			t.Errorf("theta %f: expected %.3f MeV, got %.3f", tt.theta, tt.expected, got)
		}
	}
}

func TestEnergyAtRest(t *testing.T) {
	got, err := DT.EjectileEnergy(0, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	expected := QValueDT * MassAlpha / (MassAlpha + MassNeutron)
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("expected isotropic %.4f MeV, got %.4f", expected, got)
	}
}

func TestA325Bins(t *testing.T) {
	pos := r3.Vec{X: 587, Y: 60, Z: 94.365}
	srcs, err := A325Generator(pos, r3.Vec{X: 2})
	if err != nil {
		t.Fatalf("generator failed: %v", err)
	}
	if len(srcs) != 18 {
		t.Fatalf("expected 18 bins, got %d", len(srcs))
	}
	if s := TotalStrength(srcs); math.Abs(s-1) > 1e-12 {
		t.Errorf("expected unit strength, got %f", s)
	}

	if srcs[0].MuMax != 1 || srcs[len(srcs)-1].MuMin != -1 {
		t.Error("bins should cover mu in [-1, 1]")
	}
	for i, s := range srcs {
		if s.Position != pos {
			t.Errorf("bin %d: unexpected position %+v", i, s.Position)
		}
		if s.Reference != (r3.Vec{X: 1}) {
			t.Errorf("bin %d: reference not normalised: %+v", i, s.Reference)
		}
		if s.Energy.KT != 20_000 {
			t.Errorf("bin %d: expected kT 20 keV, got %f eV", i, s.Energy.KT)
		}
		if i == 0 {
			continue
		}
		if math.Abs(s.MuMax-srcs[i-1].MuMin) > 1e-12 {
			t.Errorf("bin %d: mu ranges do not tile", i)
		}
		if s.Energy.E0 >= srcs[i-1].Energy.E0 {
			t.Errorf("bin %d: energy should fall with angle", i)
		}
	}
}

func TestA325Options(t *testing.T) {
	srcs, err := A325Generator(r3.Vec{}, r3.Vec{Z: 1}, WithBins(4), WithDeuteronEnergy(0.2), WithIonTemperature(10))
	if err != nil {
		t.Fatal(err)
	}
	if len(srcs) != 4 || srcs[0].Energy.KT != 10_000 {
		t.Errorf("options not applied: %d bins, kT %f", len(srcs), srcs[0].Energy.KT)
	}

	if _, err := A325Generator(r3.Vec{}, r3.Vec{}); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("expected ErrInvalidSource for zero direction, got %v", err)
	}
	if _, err := A325Generator(r3.Vec{}, r3.Vec{X: 1}, WithBins(0)); !errors.Is(err, ErrInvalidSource) {
		t.Errorf("expected ErrInvalidSource for zero bins, got %v", err)
	}
}
