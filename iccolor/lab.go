/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package iccolor

import "math"

// D50 reference white point, matching the PDF Lab color space's default
// white point convention (spec.md §4.6, §3's Lab color variant).
var whiteD50 = [3]float64{0.9642, 1.0000, 0.8249}

// LabToRGB converts a CIE L*a*b* triple (L in [0, 100]) to an approximate
// sRGB triple in [0, 1], via CIEXYZ under the D50 white point. Used when a
// caller wants to preview a Lab color or rasterize a Lab-space pattern
// tile without a full ICC transform.
func LabToRGB(l, a, b float64) (r, g, bl float64) {
	fy := (l + 16) / 116
	fx := fy + a/500
	fz := fy - b/200

	x := whiteD50[0] * labInv(fx)
	y := whiteD50[1] * labInv(fy)
	z := whiteD50[2] * labInv(fz)

	// XYZ (D50) -> linear sRGB, Bradford-adapted matrix.
	rl := 3.1338561*x - 1.6168667*y - 0.4906146*z
	gl := -0.9787684*x + 1.9161415*y + 0.0334540*z
	bl2 := 0.0719453*x - 0.2289914*y + 1.4052427*z

	return clamp01(gammaEncode(rl)), clamp01(gammaEncode(gl)), clamp01(gammaEncode(bl2))
}

func labInv(t float64) float64 {
	const delta = 6.0 / 29.0
	if t > delta {
		return t * t * t
	}
	return 3 * delta * delta * (t - 4.0/29.0)
}

func gammaEncode(linear float64) float64 {
	if linear <= 0.0031308 {
		return 12.92 * linear
	}
	return 1.055*math.Pow(linear, 1/2.4) - 0.055
}
