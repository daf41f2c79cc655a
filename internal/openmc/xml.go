package openmc

import "encoding/xml"

type materialsXML struct {
	XMLName   xml.Name      `xml:"materials"`
	Materials []materialXML `xml:"material"`
}

type materialXML struct {
	ID       int          `xml:"id,attr"`
	Name     string       `xml:"name,attr"`
	Density  densityXML   `xml:"density"`
	Nuclides []nuclideXML `xml:"nuclide"`
}

type densityXML struct {
	Units string `xml:"units,attr"`
	Value string `xml:"value,attr"`
}

type nuclideXML struct {
	Name string `xml:"name,attr"`
	AO   string `xml:"ao,attr,omitempty"`
	WO   string `xml:"wo,attr,omitempty"`
}

type geometryXML struct {
	XMLName  xml.Name     `xml:"geometry"`
	Cells    []cellXML    `xml:"cell"`
	Surfaces []surfaceXML `xml:"surface"`
}

type cellXML struct {
	ID       int    `xml:"id,attr"`
	Name     string `xml:"name,attr"`
	Material string `xml:"material,attr"`
	Region   string `xml:"region,attr"`
	Universe int    `xml:"universe,attr"`
}

type surfaceXML struct {
	ID       int    `xml:"id,attr"`
	Type     string `xml:"type,attr"`
	Coeffs   string `xml:"coeffs,attr"`
	Boundary string `xml:"boundary,attr,omitempty"`
}

type settingsXML struct {
	XMLName         xml.Name    `xml:"settings"`
	RunMode         string      `xml:"run_mode"`
	Particles       int         `xml:"particles"`
	Batches         int         `xml:"batches"`
	Inactive        int         `xml:"inactive"`
	Seed            uint64      `xml:"seed,omitempty"`
	PhotonTransport bool        `xml:"photon_transport"`
	Output          outputXML   `xml:"output"`
	Sources         []sourceXML `xml:"source"`
}

type outputXML struct {
	Tallies bool `xml:"tallies"`
}

type sourceXML struct {
	Particle string   `xml:"particle,attr"`
	Strength string   `xml:"strength,attr"`
	Space    distXML  `xml:"space"`
	Angle    angleXML `xml:"angle"`
	Energy   distXML  `xml:"energy"`
}

type distXML struct {
	Type       string `xml:"type,attr"`
	Parameters string `xml:"parameters,attr"`
}

type angleXML struct {
	Type      string  `xml:"type,attr"`
	Reference string  `xml:"reference_uvw,attr"`
	Mu        distXML `xml:"mu"`
	Phi       distXML `xml:"phi"`
}

type talliesXML struct {
	XMLName xml.Name    `xml:"tallies"`
	Meshes  []meshXML   `xml:"mesh"`
	Filters []filterXML `xml:"filter"`
	Tallies []tallyXML  `xml:"tally"`
}

type meshXML struct {
	ID       int    `xml:"id,attr"`
	Type     string `xml:"type,attr"`
	Library  string `xml:"library,attr"`
	Filename string `xml:"filename"`
}

type filterXML struct {
	ID   int    `xml:"id,attr"`
	Type string `xml:"type,attr"`
	Bins string `xml:"bins"`
}

type tallyXML struct {
	ID       int    `xml:"id,attr"`
	Name     string `xml:"name,attr"`
	Filters  string `xml:"filters,omitempty"`
	Nuclides string `xml:"nuclides,omitempty"`
	Scores   string `xml:"scores"`
}
