package geo

import "math"

const (
	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
	arcSec   = degToRad / 3600.0
)

// ProjectToWGS84 converts a grid easting/northing pair to WGS84 latitude and
// longitude in degrees. x is the easting (including the false easting), y the
// northing.
func ProjectToWGS84(g Grid, x, y float64) (lat, lon float64) {
	phi, lam := tmInverse(g, x, y)
	X, Y, Z := geodeticToECEF(g.Ellipsoid, phi, lam)
	X, Y, Z = applyHelmert(g.Shift, X, Y, Z, false)
	phi, lam = ecefToGeodetic(wgs84, X, Y, Z)
	return phi * radToDeg, lam * radToDeg
}

// ProjectFromWGS84 is the inverse of ProjectToWGS84: WGS84 degrees to grid
// easting/northing.
func ProjectFromWGS84(g Grid, lat, lon float64) (x, y float64) {
	X, Y, Z := geodeticToECEF(wgs84, lat*degToRad, lon*degToRad)
	X, Y, Z = applyHelmert(g.Shift, X, Y, Z, true)
	phi, lam := ecefToGeodetic(g.Ellipsoid, X, Y, Z)
	return tmForward(g, phi, lam)
}

// tmForward projects geodetic coordinates (radians, on the grid ellipsoid)
// to grid easting/northing using the Gauss-Kruger series.
func tmForward(g Grid, phi, lam float64) (x, y float64) {
	a := g.Ellipsoid.A
	e2 := eccSquared(g.Ellipsoid)
	ep2 := e2 / (1 - e2)

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	tanPhi := sinPhi / cosPhi

	n := a / math.Sqrt(1-e2*sinPhi*sinPhi)
	t := tanPhi * tanPhi
	c := ep2 * cosPhi * cosPhi
	al := (lam - g.CentralMeridian*degToRad) * cosPhi
	m := meridianArc(g.Ellipsoid, phi)

	k0 := g.Scale
	x = g.FalseEasting + k0*n*(al+
		(1-t+c)*al*al*al/6+
		(5-18*t+t*t+72*c-58*ep2)*math.Pow(al, 5)/120)
	y = g.FalseNorthing + k0*(m+n*tanPhi*(al*al/2+
		(5-t+9*c+4*c*c)*math.Pow(al, 4)/24+
		(61-58*t+t*t+600*c-330*ep2)*math.Pow(al, 6)/720))
	return x, y
}

// tmInverse converts grid easting/northing back to geodetic coordinates in
// radians on the grid ellipsoid.
func tmInverse(g Grid, x, y float64) (phi, lam float64) {
	a := g.Ellipsoid.A
	e2 := eccSquared(g.Ellipsoid)
	ep2 := e2 / (1 - e2)
	k0 := g.Scale

	// Footpoint latitude from the rectifying latitude series.
	m := (y - g.FalseNorthing) / k0
	c0 := 1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256
	mu := m / (a * c0)
	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))
	phi1 := mu +
		(3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
		(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
		(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

	sinPhi1, cosPhi1 := math.Sin(phi1), math.Cos(phi1)
	t1 := (sinPhi1 / cosPhi1) * (sinPhi1 / cosPhi1)
	c1 := ep2 * cosPhi1 * cosPhi1
	n1 := a / math.Sqrt(1-e2*sinPhi1*sinPhi1)
	r1 := a * (1 - e2) / math.Pow(1-e2*sinPhi1*sinPhi1, 1.5)
	d := (x - g.FalseEasting) / (n1 * k0)

	phi = phi1 - (n1 * sinPhi1 / cosPhi1 / r1) * (d*d/2 -
		(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24 +
		(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)
	lam = g.CentralMeridian*degToRad + (d-
		(1+2*t1+c1)*math.Pow(d, 3)/6+
		(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120)/cosPhi1
	return phi, lam
}

// meridianArc returns the meridian arc length from the equator to latitude
// phi (radians).
func meridianArc(e Ellipsoid, phi float64) float64 {
	e2 := eccSquared(e)
	return e.A * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*phi -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*phi) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*phi) -
		(35*e2*e2*e2/3072)*math.Sin(6*phi))
}

func eccSquared(e Ellipsoid) float64 {
	return e.F * (2 - e.F)
}

// geodeticToECEF converts geodetic coordinates (radians, zero height) to
// earth-centered cartesian coordinates on the given ellipsoid.
func geodeticToECEF(e Ellipsoid, phi, lam float64) (x, y, z float64) {
	e2 := eccSquared(e)
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	n := e.A / math.Sqrt(1-e2*sinPhi*sinPhi)
	x = n * cosPhi * math.Cos(lam)
	y = n * cosPhi * math.Sin(lam)
	z = n * (1 - e2) * sinPhi
	return x, y, z
}

// ecefToGeodetic converts earth-centered cartesian coordinates to geodetic
// latitude/longitude in radians, discarding ellipsoidal height.
func ecefToGeodetic(e Ellipsoid, x, y, z float64) (phi, lam float64) {
	e2 := eccSquared(e)
	p := math.Hypot(x, y)
	lam = math.Atan2(y, x)
	phi = math.Atan2(z, p*(1-e2))
	for i := 0; i < 8; i++ {
		sinPhi := math.Sin(phi)
		n := e.A / math.Sqrt(1-e2*sinPhi*sinPhi)
		h := p/math.Cos(phi) - n
		next := math.Atan2(z, p*(1-e2*n/(n+h)))
		if math.Abs(next-phi) < 1e-13 {
			phi = next
			break
		}
		phi = next
	}
	return phi, lam
}

// applyHelmert applies a seven-parameter datum shift in the position vector
// convention. With inverse set, the parameters are negated, which is exact
// to well below coordinate precision at these magnitudes.
func applyHelmert(h Helmert, x, y, z float64, inverse bool) (float64, float64, float64) {
	dx, dy, dz := h.DX, h.DY, h.DZ
	rx, ry, rz := h.RX*arcSec, h.RY*arcSec, h.RZ*arcSec
	s := 1 + h.S*1e-6
	if inverse {
		dx, dy, dz = -dx, -dy, -dz
		rx, ry, rz = -rx, -ry, -rz
		s = 1 - h.S*1e-6
	}
	x2 := dx + s*(x-rz*y+ry*z)
	y2 := dy + s*(rz*x+y-rx*z)
	z2 := dz + s*(-ry*x+rx*y+z)
	return x2, y2, z2
}
