package shaperel

// CrsHandler is the pluggable coordinate-reference-system reprojection
// contract. It is consumed by the external reprojection pipeline that
// sits in front of this core (shape parsing, field-mapper plumbing);
// nothing in package pqt or package stream calls it. It is declared here
// because it is one of the two external collaborator contracts §6 of
// the spec names alongside Oracle, and a caller wiring the whole
// pipeline together needs a single place to satisfy both.
type CrsHandler interface {
	// Reproject transforms (x, y) under the CRS-specific transform
	// value (an opaque handle the implementation defines, e.g. a PROJ
	// pipeline string or a cached transformer object).
	Reproject(x, y float64, transform any) (xPrime, yPrime float64, err error)
}
