package flow

import "time"

// DefaultWeight is the fail-open weight used when either date is missing or
// unparseable
const DefaultWeight = 1.0

const dateLayout = "2006-01-02"

// WeightBand maps a days-to-expiration ceiling to a decay weight.
// Bands are checked in ascending MaxDTE order; the first band whose MaxDTE
// is >= the record's DTE applies.
type WeightBand struct {
	MaxDTE int     `yaml:"max_dte" json:"max_dte"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// DefaultWeightBands returns the standard DTE decay table. Near-dated flow
// counts full; weight steps down toward DefaultFarWeight for LEAPS.
func DefaultWeightBands() []WeightBand {
	return []WeightBand{
		{MaxDTE: 4, Weight: 1.00},
		{MaxDTE: 7, Weight: 0.95},
		{MaxDTE: 14, Weight: 0.90},
		{MaxDTE: 28, Weight: 0.85},
		{MaxDTE: 84, Weight: 0.80},
		{MaxDTE: 170, Weight: 0.75},
		{MaxDTE: 365, Weight: 0.70},
	}
}

// DefaultFarWeight applies beyond the last band (366+ DTE)
const DefaultFarWeight = 0.65

// Weigher computes expiry decay weights from a band table
type Weigher struct {
	bands     []WeightBand
	farWeight float64
}

// NewWeigher creates a weigher. Bands must be sorted by ascending MaxDTE;
// params validation enforces that before anything reaches here.
func NewWeigher(bands []WeightBand, farWeight float64) *Weigher {
	return &Weigher{bands: bands, farWeight: farWeight}
}

// DefaultWeigher returns a weigher over the standard table
func DefaultWeigher() *Weigher {
	return NewWeigher(DefaultWeightBands(), DefaultFarWeight)
}

// Weight computes the decay weight for an expiry/as-of date pair in
// YYYY-MM-DD form. Missing or unparseable dates fall open to DefaultWeight
// rather than failing the record.
func (w *Weigher) Weight(expiry, asOf string) float64 {
	if expiry == "" || asOf == "" {
		return DefaultWeight
	}

	exp, err := time.Parse(dateLayout, expiry)
	if err != nil {
		return DefaultWeight
	}
	ref, err := time.Parse(dateLayout, asOf)
	if err != nil {
		return DefaultWeight
	}

	return w.WeightDates(exp, ref)
}

// WeightDates computes the decay weight from structured dates
func (w *Weigher) WeightDates(expiry, asOf time.Time) float64 {
	dte := DaysToExpiry(expiry, asOf)

	// Negative DTE (already expired) lands in the first band.
	for _, b := range w.bands {
		if dte <= b.MaxDTE {
			return b.Weight
		}
	}
	return w.farWeight
}

// DaysToExpiry returns whole calendar days between the as-of date and the
// expiry date. Negative when the expiry is in the past.
func DaysToExpiry(expiry, asOf time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	a := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(a).Hours() / 24)
}
