package params

import (
	"github.com/wonny/flowrank/internal/flow"
	"github.com/wonny/flowrank/internal/universe"
)

// Params is the tunable analysis parameter set. A YAML file can override
// the defaults; the struct is the single source of truth for what can be
// tuned.
type Params struct {
	// TopN is the size of each ranked list
	TopN int `yaml:"top_n" json:"top_n"`

	// CapBuckets are the market cap bands, largest first
	CapBuckets []universe.Bucket `yaml:"cap_buckets" json:"cap_buckets"`

	// DTEWeights is the expiry decay table, ascending max_dte
	DTEWeights []flow.WeightBand `yaml:"dte_weights" json:"dte_weights"`

	// FarWeight applies beyond the last DTE band
	FarWeight float64 `yaml:"far_weight" json:"far_weight"`
}

// Defaults returns the compiled-in parameter set
func Defaults() *Params {
	return &Params{
		TopN:       20,
		CapBuckets: universe.DefaultBuckets(),
		DTEWeights: flow.DefaultWeightBands(),
		FarWeight:  flow.DefaultFarWeight,
	}
}
