// Package cases enumerates the Baseline2020 wind-loading cases.
//
// A case ID encodes the CFD baseline, the telescope zenith angle, the
// azimuth angle relative to the wind, the enclosure configuration and the
// wind speed, e.g. "b2019_30z_135az_cd_12ms".
package cases

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Baseline is the CFD baseline every case belongs to.
const Baseline = "b2019"

// ErrInvalidID is returned by Parse for malformed case IDs.
var ErrInvalidID = errors.New("invalid case id")

// WindClass is the enclosure configuration of a case.
type WindClass string

const (
	// OpenStowed is the enclosure open with the wind screen stowed.
	OpenStowed WindClass = "os"
	// ClosedDeployed is the enclosure closed with the wind screen deployed.
	ClosedDeployed WindClass = "cd"
)

// Case is a decoded case ID.
type Case struct {
	Baseline   string
	ZenithDeg  int
	AzimuthDeg int
	Wind       WindClass
	SpeedMS    int
}

// String encodes the case back to its ID.
func (c Case) String() string {
	return fmt.Sprintf("%s_%dz_%daz_%s_%dms", c.Baseline, c.ZenithDeg, c.AzimuthDeg, c.Wind, c.SpeedMS)
}

type windCondition struct {
	class WindClass
	speed int
}

var (
	zeniths  = []int{0, 30, 60}
	azimuths = []int{0, 45, 90, 135, 180}
	winds    = []windCondition{
		{OpenStowed, 2},
		{OpenStowed, 7},
		{ClosedDeployed, 12},
		{ClosedDeployed, 17},
	}
)

// All returns the 60 case IDs in report order: zenith, then azimuth, then
// wind condition. A fresh slice is returned on every call.
func All() []string {
	out := make([]string, 0, len(zeniths)*len(azimuths)*len(winds))
	for _, z := range zeniths {
		for _, az := range azimuths {
			for _, w := range winds {
				c := Case{Baseline: Baseline, ZenithDeg: z, AzimuthDeg: az, Wind: w.class, SpeedMS: w.speed}
				out = append(out, c.String())
			}
		}
	}
	return out
}

// Parse decodes a case ID of the form <baseline>_<z>z_<az>az_<os|cd>_<v>ms.
func Parse(id string) (Case, error) {
	parts := strings.Split(id, "_")
	if len(parts) != 5 || parts[0] == "" {
		return Case{}, fmt.Errorf("%w %q: expected 5 underscore-separated fields", ErrInvalidID, id)
	}

	zenith, err := parseSuffixed(parts[1], "z")
	if err != nil {
		return Case{}, fmt.Errorf("%w %q: zenith: %v", ErrInvalidID, id, err)
	}
	azimuth, err := parseSuffixed(parts[2], "az")
	if err != nil {
		return Case{}, fmt.Errorf("%w %q: azimuth: %v", ErrInvalidID, id, err)
	}

	wind := WindClass(parts[3])
	if wind != OpenStowed && wind != ClosedDeployed {
		return Case{}, fmt.Errorf("%w %q: unknown wind class %q", ErrInvalidID, id, parts[3])
	}

	speed, err := parseSuffixed(parts[4], "ms")
	if err != nil {
		return Case{}, fmt.Errorf("%w %q: wind speed: %v", ErrInvalidID, id, err)
	}

	return Case{
		Baseline:   parts[0],
		ZenithDeg:  zenith,
		AzimuthDeg: azimuth,
		Wind:       wind,
		SpeedMS:    speed,
	}, nil
}

func parseSuffixed(s, suffix string) (int, error) {
	digits, ok := strings.CutSuffix(s, suffix)
	if !ok || digits == "" {
		return 0, fmt.Errorf("%q does not end in %q", s, suffix)
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", digits, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %d", v)
	}
	return v, nil
}
