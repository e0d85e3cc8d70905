package geo

// Ellipsoid is a reference ellipsoid given by its semi-major axis in meters
// and flattening.
type Ellipsoid struct {
	A float64
	F float64
}

var (
	international1924 = Ellipsoid{A: 6378388.0, F: 1 / 297.0}
	bessel1841        = Ellipsoid{A: 6377397.155, F: 1 / 299.1528128}
	wgs84             = Ellipsoid{A: 6378137.0, F: 1 / 298.257223563}
)

// Helmert holds a seven-parameter datum transformation from a grid's datum
// to WGS84. Translations in meters, rotations in arc seconds, scale in ppm.
type Helmert struct {
	DX, DY, DZ float64
	RX, RY, RZ float64
	S          float64
}

// Grid describes a national transverse Mercator grid: the projection
// parameters on the grid's own ellipsoid plus the datum shift to WGS84.
type Grid struct {
	Name            string
	Ellipsoid       Ellipsoid
	CentralMeridian float64 // degrees east
	Scale           float64
	FalseEasting    float64
	FalseNorthing   float64
	Shift           Helmert
}

// KKJ is the Finnish National Grid, zone 3 (the uniform coordinate system
// YKJ): Gauss-Kruger on the International 1924 ellipsoid, central meridian
// 27E, 3500 km false easting. EPSG:2393.
var KKJ = Grid{
	Name:            "kkj",
	Ellipsoid:       international1924,
	CentralMeridian: 27.0,
	Scale:           1.0,
	FalseEasting:    3500000.0,
	FalseNorthing:   0.0,
	Shift:           Helmert{DX: -96.062, DY: -82.428, DZ: -121.753, RX: -4.801, RY: -0.345, RZ: 1.376, S: 1.496},
}

// RT90 is the Swedish grid RT90 2.5 gon V: Gauss-Kruger on the Bessel 1841
// ellipsoid, central meridian 15 deg 48 min 29.8 sec east. EPSG:3021.
var RT90 = Grid{
	Name:            "rt90",
	Ellipsoid:       bessel1841,
	CentralMeridian: 15.0 + 48.0/60.0 + 29.8/3600.0,
	Scale:           1.0,
	FalseEasting:    1500000.0,
	FalseNorthing:   0.0,
	Shift:           Helmert{DX: 414.1, DY: 41.3, DZ: 603.1, RX: -0.855, RY: 2.141, RZ: -7.023, S: 0},
}
