package material

// Catalog keys of the BABY materials.
const (
	Inconel625 = "inconel625"
	ClLiF      = "cllif_nat"
	SS304      = "ss304"
	Heater     = "heater"
	Firebrick  = "firebrick"
	Alumina    = "alumina"
	Air        = "air"
	Epoxy      = "epoxy"
	Helium     = "helium"
	Lead       = "lead"
	HDPE       = "hdpe"
	Diamond    = "diamond"
	Zirconium  = "zirconium"
	Niobium    = "niobium"
	Concrete   = "concrete"
)

// inconelElements is the PNNL-15870 Rev. 2 composition shared by the
// crucible alloy and the heater sheath.
var inconelElements = []Component{
	{Name: "C", Fraction: 0.000990},
	{Name: "Al", Fraction: 0.003960},
	{Name: "Si", Fraction: 0.004950},
	{Name: "P", Fraction: 0.000148},
	{Name: "S", Fraction: 0.000148},
	{Name: "Ti", Fraction: 0.003960},
	{Name: "Cr", Fraction: 0.215000},
	{Name: "Mn", Fraction: 0.004950},
	{Name: "Fe", Fraction: 0.049495},
	{Name: "Co", Fraction: 0.009899},
	{Name: "Ni", Fraction: 0.580000},
	{Name: "Nb", Fraction: 0.036500},
	{Name: "Mo", Fraction: 0.090000},
}

func inconel(name string, density float64) *Material {
	b := New(name)
	for _, c := range inconelElements {
		b.Element(c.Name, c.Fraction, WeightFraction)
	}
	return b.Density(density).Build()
}

func salt(liclFrac, tempC float64) *Material {
	return New("ClLiF natural").
		Element("F", 0.5*(1-liclFrac), AtomFraction).
		Element("Li", 0.5*(1-liclFrac)+0.5*liclFrac, AtomFraction).
		Element("Cl", 0.5*liclFrac, AtomFraction).
		Density(SaltDensity(tempC, liclFrac)).
		Build()
}

// ConcreteMaterial is PNNL ordinary concrete, used by the vault walls.
func ConcreteMaterial() *Material {
	return New("Concrete").
		Element("H", 0.010000, WeightFraction).
		Element("C", 0.001000, WeightFraction).
		Element("O", 0.529107, WeightFraction).
		Element("Na", 0.016000, WeightFraction).
		Element("Mg", 0.002000, WeightFraction).
		Element("Al", 0.033872, WeightFraction).
		Element("Si", 0.337021, WeightFraction).
		Element("K", 0.013000, WeightFraction).
		Element("Ca", 0.044000, WeightFraction).
		Element("Fe", 0.014000, WeightFraction).
		Density(2.3).
		Build()
}

// AirMaterial is dry air near sea level.
func AirMaterial() *Material {
	return New("Air").
		Element("C", 0.00012399, WeightFraction).
		Element("N", 0.75527, WeightFraction).
		Element("O", 0.23178, WeightFraction).
		Element("Ar", 0.012827, WeightFraction).
		Density(0.0012).
		Build()
}

// NewBABYCatalog builds the materials of the BABY assembly and the nearby
// secondary experiment. Compositions follow PNNL-15870 Rev. 2 where available.
func NewBABYCatalog() *Catalog {
	ss304 := New("Stainless Steel 304").
		Element("C", 0.000800, WeightFraction).
		Element("Mn", 0.020000, WeightFraction).
		Element("P", 0.000450, WeightFraction).
		Element("S", 0.000300, WeightFraction).
		Element("Si", 0.010000, WeightFraction).
		Element("Cr", 0.190000, WeightFraction).
		Element("Ni", 0.095000, WeightFraction).
		Element("Fe", 0.683450, WeightFraction).
		Density(8.00).
		Build()

	// Microtherm: 1 at.% Al2O3, 27 at.% ZrO2, 72 at.% SiO2.
	firebrick := New("Firebrick").
		Element("Al", 0.004, AtomFraction).
		Element("O", 0.666, AtomFraction).
		Element("Si", 0.240, AtomFraction).
		Element("Zr", 0.090, AtomFraction).
		Density(0.30).
		Build()

	alumina := New("Alumina insulation").
		Element("O", 0.6, AtomFraction).
		Element("Al", 0.4, AtomFraction).
		Density(3.98).
		Build()

	epoxy := New("Epoxy").
		Element("C", 0.70, WeightFraction).
		Element("H", 0.08, WeightFraction).
		Element("O", 0.15, WeightFraction).
		Element("N", 0.07, WeightFraction).
		Density(1.2).
		Build()

	helium := New("Helium").
		Element("He", 1.0, AtomFraction).
		Density(IdealGasDensity(HeliumPressure, HeliumTemperature, HeliumGasConstant)).
		Build()

	lead := New("Lead").
		Nuclide("Pb204", 0.014, AtomFraction).
		Nuclide("Pb206", 0.241, AtomFraction).
		Nuclide("Pb207", 0.221, AtomFraction).
		Nuclide("Pb208", 0.524, AtomFraction).
		Density(11.34).
		Build()

	hdpe := New("HDPE").
		Element("H", 0.143724, WeightFraction).
		Element("C", 0.856276, WeightFraction).
		Density(0.95).
		Build()

	diamond := New("Diamond").
		Element("C", 1.0, AtomFraction).
		Density(3.51).
		Build()

	// Zr90(n,2n)Zr89 foil.
	zr := New("Zirconium").
		Nuclide("Zr90", 0.5145, AtomFraction).
		Nuclide("Zr91", 0.1122, AtomFraction).
		Nuclide("Zr92", 0.1715, AtomFraction).
		Nuclide("Zr94", 0.1738, AtomFraction).
		Nuclide("Zr96", 0.028, AtomFraction).
		Density(6.5).
		Build()

	// Nb93(n,2n)Nb92m foil.
	nb := New("Niobium").
		Nuclide("Nb93", 1.0, AtomFraction).
		Density(8.4).
		Build()

	cat, err := NewCatalog(
		Entry{Inconel625, inconel("Inconel 625", 8.44)},
		Entry{ClLiF, salt(SaltLiClFraction, SaltTemperature)},
		Entry{SS304, ss304},
		Entry{Heater, inconel("heater", 2.44)},
		Entry{Firebrick, firebrick},
		Entry{Alumina, alumina},
		Entry{Lead, lead},
		Entry{Air, AirMaterial()},
		Entry{Epoxy, epoxy},
		Entry{Helium, helium},
		Entry{HDPE, hdpe},
		Entry{Diamond, diamond},
		Entry{Zirconium, zr},
		Entry{Niobium, nb},
	)
	if err != nil {
		// keys above are distinct constants
		panic(err)
	}
	return cat
}
