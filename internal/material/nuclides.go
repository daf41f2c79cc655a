package material

// Isotope is a naturally occurring nuclide with its atom abundance and atomic
// mass in amu.
type Isotope struct {
	Name      string
	Abundance float64
	Mass      float64
}

// IUPAC representative isotopic compositions, AME atomic masses.
var naturalAbundance = map[string][]Isotope{
	"H":  {{"H1", 0.999885, 1.00782503223}, {"H2", 0.000115, 2.01410177812}},
	"He": {{"He3", 1.34e-6, 3.0160293201}, {"He4", 0.99999866, 4.00260325413}},
	"Li": {{"Li6", 0.0759, 6.0151228874}, {"Li7", 0.9241, 7.0160034366}},
	"C":  {{"C12", 0.9893, 12.0}, {"C13", 0.0107, 13.00335483507}},
	"N":  {{"N14", 0.99636, 14.00307400443}, {"N15", 0.00364, 15.00010889888}},
	"O":  {{"O16", 0.99757, 15.99491461957}, {"O17", 0.00038, 16.99913175650}, {"O18", 0.00205, 17.99915961286}},
	"F":  {{"F19", 1.0, 18.99840316273}},
	"Na": {{"Na23", 1.0, 22.9897692820}},
	"Mg": {{"Mg24", 0.7899, 23.985041697}, {"Mg25", 0.1000, 24.985836976}, {"Mg26", 0.1101, 25.982592968}},
	"Al": {{"Al27", 1.0, 26.98153853}},
	"Si": {{"Si28", 0.92223, 27.97692653465}, {"Si29", 0.04685, 28.97649466490}, {"Si30", 0.03092, 29.973770136}},
	"P":  {{"P31", 1.0, 30.97376199842}},
	"S": {
		{"S32", 0.9499, 31.9720711744}, {"S33", 0.0075, 32.9714589098},
		{"S34", 0.0425, 33.967867004}, {"S36", 0.0001, 35.96708071},
	},
	"Cl": {{"Cl35", 0.7576, 34.968852682}, {"Cl37", 0.2424, 36.965902602}},
	"Ar": {{"Ar36", 0.003336, 35.967545105}, {"Ar38", 0.000629, 37.96273211}, {"Ar40", 0.996035, 39.9623831237}},
	"K":  {{"K39", 0.932581, 38.9637064864}, {"K40", 0.000117, 39.963998166}, {"K41", 0.067302, 40.9618252579}},
	"Ca": {
		{"Ca40", 0.96941, 39.962590863}, {"Ca42", 0.00647, 41.95861783}, {"Ca43", 0.00135, 42.95876644},
		{"Ca44", 0.02086, 43.95548156}, {"Ca46", 0.00004, 45.9536890}, {"Ca48", 0.00187, 47.95252276},
	},
	"Ti": {
		{"Ti46", 0.0825, 45.95262772}, {"Ti47", 0.0744, 46.95175879}, {"Ti48", 0.7372, 47.94794198},
		{"Ti49", 0.0541, 48.94786568}, {"Ti50", 0.0518, 49.94478689},
	},
	"Cr": {
		{"Cr50", 0.04345, 49.94604183}, {"Cr52", 0.83789, 51.94050623},
		{"Cr53", 0.09501, 52.94064815}, {"Cr54", 0.02365, 53.93887916},
	},
	"Mn": {{"Mn55", 1.0, 54.93804391}},
	"Fe": {
		{"Fe54", 0.05845, 53.93960899}, {"Fe56", 0.91754, 55.93493633},
		{"Fe57", 0.02119, 56.93539284}, {"Fe58", 0.00282, 57.93327443},
	},
	"Co": {{"Co59", 1.0, 58.93319429}},
	"Ni": {
		{"Ni58", 0.68077, 57.93534241}, {"Ni60", 0.26223, 59.93078588}, {"Ni61", 0.011399, 60.93105557},
		{"Ni62", 0.036346, 61.92834537}, {"Ni64", 0.009255, 63.92796682},
	},
	"Zr": {
		{"Zr90", 0.5145, 89.9046977}, {"Zr91", 0.1122, 90.9056396}, {"Zr92", 0.1715, 91.9050347},
		{"Zr94", 0.1738, 93.9063108}, {"Zr96", 0.0280, 95.9082714},
	},
	"Nb": {{"Nb93", 1.0, 92.9063730}},
	"Mo": {
		{"Mo92", 0.1453, 91.90680796}, {"Mo94", 0.0915, 93.90508490}, {"Mo95", 0.1584, 94.90583877},
		{"Mo96", 0.1667, 95.90467612}, {"Mo97", 0.0960, 96.90601812}, {"Mo98", 0.2439, 97.90540482},
		{"Mo100", 0.0982, 99.9074718},
	},
	"Pb": {
		{"Pb204", 0.014, 203.9730440}, {"Pb206", 0.241, 205.9744657},
		{"Pb207", 0.221, 206.9758973}, {"Pb208", 0.524, 207.9766525},
	},
}

// NaturalIsotopes returns the natural isotopes of an element.
func NaturalIsotopes(element string) ([]Isotope, bool) {
	iso, ok := naturalAbundance[element]
	if !ok {
		return nil, false
	}
	return append([]Isotope(nil), iso...), true
}

// AtomicMass is the abundance-weighted mass of an element in amu.
func AtomicMass(element string) (float64, bool) {
	iso, ok := naturalAbundance[element]
	if !ok {
		return 0, false
	}
	var m float64
	for _, i := range iso {
		m += i.Abundance * i.Mass
	}
	return m, true
}
