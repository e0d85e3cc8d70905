// Package geo converts between national grid coordinate systems and WGS84.
//
// Some upstream routing providers report positions in a national transverse
// Mercator grid rather than WGS84. The conversion runs the full cartographic
// pipeline: grid easting/northing -> geodetic coordinates on the grid's own
// ellipsoid (inverse Gauss-Kruger), then a seven-parameter Helmert datum
// shift to WGS84. The inverse direction reverses both steps, so projecting a
// point out and back reproduces it to well below coordinate precision.
package geo
