/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package pagedraw

import "math"

func cosSin(angleRad float64) (cos, sin float64) {
	return math.Cos(angleRad), math.Sin(angleRad)
}
