// Package boltgroup distributes an in-plane load over a group of identical
// bolts.
//
// Three analyses are provided. DirectShear splits the force equally.
// ElasticShear adds the share of the moment about the centroid in proportion
// to each bolt's distance from it. SolveIC finds the instantaneous center of
// rotation with the nonlinear load-deformation law
//
//	R = Rult·(1 − e^(−10Δ))^0.55,  Δ = 0.34·d/dmax
//
// and iterates until the bolt reactions balance the applied force.
// Calculate routes a single load case through the requested analysis and
// adds capacity checks.
//
// Coordinates are in any consistent length unit and forces in any consistent
// force unit; the package does not convert units.
package boltgroup
