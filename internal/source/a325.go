// Package source describes the A325 D-T neutron generator as a set of
// angular bins, each a point emitter with its own Muir energy spectrum.
package source

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var ErrInvalidSource = errors.New("source: invalid parameters")

// Muir is a Gaussian fusion spectrum. E0 and KT are in eV.
type Muir struct {
	E0        float64
	MassRatio float64
	KT        float64
}

// Source is one point emitter. Directions are sampled with mu uniform in
// [MuMin, MuMax] about Reference and phi uniform in [0, 2pi).
type Source struct {
	Particle  string
	Strength  float64
	Position  r3.Vec
	Reference r3.Vec
	MuMin     float64
	MuMax     float64
	Energy    Muir
}

type options struct {
	deuteronEnergy float64
	bins           int
	kT             float64
	reaction       Reaction
}

type Option func(*options)

// WithDeuteronEnergy sets the beam energy in MeV.
func WithDeuteronEnergy(mev float64) Option {
	return func(o *options) { o.deuteronEnergy = mev }
}

// WithBins sets the number of polar bins.
func WithBins(n int) Option {
	return func(o *options) { o.bins = n }
}

// WithIonTemperature sets the Muir kT in keV.
func WithIonTemperature(kev float64) Option {
	return func(o *options) { o.kT = kev }
}

// A325Generator builds the sources of an A325 generator at position whose
// beam points along direction. Bins are equal in polar angle; each bin's
// strength is its solid-angle fraction and its mean energy follows the D-T
// kinematics at the bin centre.
func A325Generator(position, direction r3.Vec, opts ...Option) ([]Source, error) {
	o := options{deuteronEnergy: 0.1, bins: 18, kT: 20, reaction: DT}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bins <= 0 || o.deuteronEnergy <= 0 || o.kT <= 0 {
		return nil, fmt.Errorf("%w: bins=%d ed=%g kT=%g", ErrInvalidSource, o.bins, o.deuteronEnergy, o.kT)
	}
	norm := r3.Norm(direction)
	if norm == 0 {
		return nil, fmt.Errorf("%w: zero direction", ErrInvalidSource)
	}
	ref := r3.Scale(1/norm, direction)

	sources := make([]Source, 0, o.bins)
	width := math.Pi / float64(o.bins)
	for i := 0; i < o.bins; i++ {
		lo, hi := float64(i)*width, float64(i+1)*width
		muMax, muMin := math.Cos(lo), math.Cos(hi)
		if i == 0 {
			muMax = 1
		}
		if i == o.bins-1 {
			muMin = -1
		}

		en, err := o.reaction.EjectileEnergy(o.deuteronEnergy, (lo+hi)/2)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{
			Particle:  "neutron",
			Strength:  (muMax - muMin) / 2,
			Position:  position,
			Reference: ref,
			MuMin:     muMin,
			MuMax:     muMax,
			Energy: Muir{
				E0:        en * 1e6,
				MassRatio: o.reaction.MassRatio(),
				KT:        o.kT * 1e3,
			},
		})
	}
	return sources, nil
}

// TotalStrength sums the bin strengths.
func TotalStrength(sources []Source) float64 {
	var s float64
	for _, src := range sources {
		s += src.Strength
	}
	return s
}
