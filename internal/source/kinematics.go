package source

import (
	"fmt"
	"math"
)

// Masses in amu and the D-T Q value in MeV.
const (
	MassDeuteron = 2.01410
	MassTriton   = 3.01605
	MassNeutron  = 1.00866
	MassAlpha    = 4.00260

	QValueDT = 17.589
)

// Reaction is a two-body reaction a + A -> b + B with A at rest.
type Reaction struct {
	Projectile float64 // m_a
	Target     float64 // m_A
	Ejectile   float64 // m_b
	Residual   float64 // m_B
	Q          float64
}

// DT is the deuterium-tritium fusion reaction emitting a neutron.
var DT = Reaction{
	Projectile: MassDeuteron,
	Target:     MassTriton,
	Ejectile:   MassNeutron,
	Residual:   MassAlpha,
	Q:          QValueDT,
}

// EjectileEnergy returns the lab-frame energy in MeV of the ejectile emitted
// at angle theta (radians) from the projectile direction, for projectile
// energy ea in MeV.
func (r Reaction) EjectileEnergy(ea, theta float64) (float64, error) {
	ma, mb, mB := r.Projectile, r.Ejectile, r.Residual
	cos := math.Cos(theta)
	a := math.Sqrt(ma*mb*ea) * cos
	disc := ma*mb*ea*cos*cos + (mB+mb)*(mB*r.Q+(mB-ma)*ea)
	if disc < 0 {
		return 0, fmt.Errorf("source: no real solution at theta=%g, ea=%g", theta, ea)
	}
	s := (a + math.Sqrt(disc)) / (mB + mb)
	return s * s, nil
}

// MassRatio is the summed reactant mass in amu, the Muir spectrum m_rat.
func (r Reaction) MassRatio() float64 { return r.Projectile + r.Target }
