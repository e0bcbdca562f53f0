package measurement

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Unit systems a profile can be entered in. Exactly one applies per user
// at a time; switching units overwrites the stored unit on the next save.
const (
	UnitMetric   = "metric"
	UnitImperial = "imperial"
)

// Domain errors
var (
	ErrInvalidUnit      = errors.New("unit of measurement must be metric or imperial")
	ErrInchesOutOfRange = errors.New("inches must be between 0 and 11")
	ErrNegativeFeet     = errors.New("feet must be >= 0")
)

// Profile holds one user's physical measurements. Nil fields have never
// been provided and must survive future partial updates untouched.
type Profile struct {
	UserID       string
	Height       *float64 // cm (metric) or total inches (imperial)
	Weight       *float64
	ApeIndex     *float64
	GripStrength *float64
	Unit         string
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Profile) Validate() error {
	if p.UserID == "" {
		return errors.New("measurements must belong to a user")
	}
	if p.Unit != "" && p.Unit != UnitMetric && p.Unit != UnitImperial {
		return ErrInvalidUnit
	}
	return nil
}

// Merge applies only the fields present in patch over existing, preserving
// everything the caller omitted. This is the upsert contract: omitted field
// means keep the stored value.
func Merge(existing, patch Profile) Profile {
	out := existing
	if patch.UserID != "" {
		out.UserID = patch.UserID
	}
	if patch.Height != nil {
		out.Height = patch.Height
	}
	if patch.Weight != nil {
		out.Weight = patch.Weight
	}
	if patch.ApeIndex != nil {
		out.ApeIndex = patch.ApeIndex
	}
	if patch.GripStrength != nil {
		out.GripStrength = patch.GripStrength
	}
	if patch.Unit != "" {
		out.Unit = patch.Unit
	}
	return out
}

// FeetInchesToTotalInches converts a feet/inches pair into total inches.
// Both nil means the height was omitted entirely and nil is returned. A
// missing half of the pair counts as zero.
func FeetInchesToTotalInches(feet, inches *int) (*float64, error) {
	if feet == nil && inches == nil {
		return nil, nil
	}
	var f, i int
	if feet != nil {
		f = *feet
	}
	if inches != nil {
		i = *inches
	}
	if i < 0 || i > 11 {
		return nil, ErrInchesOutOfRange
	}
	if f < 0 {
		return nil, ErrNegativeFeet
	}
	total := float64(f*12 + i)
	return &total, nil
}

// TotalInchesToFeetInches splits a stored total-inches height back into
// feet and inches for display.
func TotalInchesToFeetInches(total float64) (feet, inches int) {
	ti := int(math.Round(total))
	return ti / 12, ti % 12
}

// FormatValue renders a measurement with up to two decimals, trimming
// trailing zeros and a trailing decimal point, plus a unit suffix
// (72.50 -> "72.5 in").
func FormatValue(v float64, suffix string) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + " " + suffix
}

// Display is the human-readable rendering of a stored profile.
type Display struct {
	Unit         string
	Height       *float64
	HeightFeet   *int
	HeightInches *int

	HeightDisplay       string
	WeightDisplay       string
	ApeIndexDisplay     string
	GripStrengthDisplay string
}

// FormatForDisplay renders the stored values into unit-suffixed strings.
// Imperial heights come back as a feet'inches" pair; metric heights stay
// in centimetres. Unset fields render as empty strings.
func (p Profile) FormatForDisplay() Display {
	unit := p.Unit
	if unit == "" {
		unit = UnitMetric
	}

	d := Display{Unit: unit, Height: p.Height}

	if unit == UnitImperial {
		if p.Height != nil {
			ft, in := TotalInchesToFeetInches(*p.Height)
			d.HeightFeet = &ft
			d.HeightInches = &in
			d.HeightDisplay = strconv.Itoa(ft) + "'" + strconv.Itoa(in) + `"`
		}
		if p.Weight != nil {
			d.WeightDisplay = FormatValue(*p.Weight, "lb")
		}
		if p.ApeIndex != nil {
			d.ApeIndexDisplay = FormatValue(*p.ApeIndex, "in")
		}
		if p.GripStrength != nil {
			d.GripStrengthDisplay = FormatValue(*p.GripStrength, "lbf")
		}
		return d
	}

	if p.Height != nil {
		d.HeightDisplay = FormatValue(*p.Height, "cm")
	}
	if p.Weight != nil {
		d.WeightDisplay = FormatValue(*p.Weight, "kg")
	}
	if p.ApeIndex != nil {
		d.ApeIndexDisplay = FormatValue(*p.ApeIndex, "cm")
	}
	if p.GripStrength != nil {
		d.GripStrengthDisplay = FormatValue(*p.GripStrength, "kgf")
	}
	return d
}
