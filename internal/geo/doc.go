// Package geo holds the geographic value types shared by the rupture reader
// and the surface mesher.
//
// Location is an immutable (latitude, longitude, depth) triple in decimal
// degrees and kilometres. FaultTrace is an ordered run of locations whose
// order defines the direction of the trace. The spherical helpers (distance,
// azimuth, destination, interpolation) assume a spherical Earth of radius
// EarthRadiusKm, which is accurate enough for gridding fault planes at
// kilometre spacing.
package geo
