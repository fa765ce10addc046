// Package units provides the angle conversions used for jitter reporting.
package units

import "math"

// ArcsecPerRadian converts radians to arcseconds.
const ArcsecPerRadian = 180 * 3600 / math.Pi

// JitterScale is the factor applied to tip/tilt series in radians before
// their statistics are reported: 180 × 3600 × 1000 / π, the same scaling
// the reference simulation applies to its own output.
const JitterScale = ArcsecPerRadian * 1e3
