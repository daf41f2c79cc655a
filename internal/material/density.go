package material

// Helium cover gas at about 5 psig.
const (
	HeliumPressure    = 34473.8 // Pa
	HeliumTemperature = 300.0   // K
	HeliumGasConstant = 2077.0  // J/(kg K)
)

// Salt operating point: 69.5 at.% LiCl at 650 C.
const (
	SaltLiClFraction = 0.695
	SaltTemperature  = 650.0 // C
)

// IdealGasDensity returns the density in g/cm3 of a gas with the given
// specific gas constant. kg/m3 is converted with the factor 1/1000.
func IdealGasDensity(pressure, temperature, gasConstant float64) float64 {
	return pressure / (gasConstant * temperature) / 1000
}

// Janz linear correlations rho = a - b*T(K) for the pure molten salts.
var (
	liclDensity = [2]float64{1.8842, 4.328e-4}
	lifDensity  = [2]float64{2.3581, 4.902e-4}
)

// SaltDensity returns the density in g/cm3 of molten LiCl-LiF with the given
// LiCl mole fraction at tempC, assuming ideal mixing of molar volumes.
func SaltDensity(tempC, liclFraction float64) float64 {
	tk := tempC + 273.15

	li, _ := AtomicMass("Li")
	cl, _ := AtomicMass("Cl")
	f, _ := AtomicMass("F")

	mLiCl, mLiF := li+cl, li+f
	vLiCl := mLiCl / (liclDensity[0] - liclDensity[1]*tk)
	vLiF := mLiF / (lifDensity[0] - lifDensity[1]*tk)

	x := liclFraction
	mass := x*mLiCl + (1-x)*mLiF
	volume := x*vLiCl + (1-x)*vLiF
	return mass / volume
}
