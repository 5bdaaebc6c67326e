package params

import "fmt"

// ValidationError reports one invalid parameter field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks structural constraints on a parameter set
func Validate(p *Params) error {
	if p.TopN <= 0 {
		return ValidationError{"top_n", "must be > 0"}
	}

	if len(p.CapBuckets) == 0 {
		return ValidationError{"cap_buckets", "at least one bucket required"}
	}
	for i, b := range p.CapBuckets {
		field := fmt.Sprintf("cap_buckets[%d]", i)
		if b.Category == "" {
			return ValidationError{field + ".category", "required"}
		}
		if b.MinMarketCap < 0 {
			return ValidationError{field + ".min_market_cap", "must not be negative"}
		}
		if i > 0 && b.MinMarketCap >= p.CapBuckets[i-1].MinMarketCap {
			return ValidationError{field + ".min_market_cap", "buckets must be strictly descending"}
		}
	}

	if len(p.DTEWeights) == 0 {
		return ValidationError{"dte_weights", "at least one band required"}
	}
	for i, b := range p.DTEWeights {
		field := fmt.Sprintf("dte_weights[%d]", i)
		if b.Weight <= 0 || b.Weight > 1 {
			return ValidationError{field + ".weight", "must be in (0, 1]"}
		}
		if i > 0 {
			if b.MaxDTE <= p.DTEWeights[i-1].MaxDTE {
				return ValidationError{field + ".max_dte", "bands must be strictly ascending"}
			}
			if b.Weight > p.DTEWeights[i-1].Weight {
				return ValidationError{field + ".weight", "weights must be non-increasing"}
			}
		}
	}

	if p.FarWeight <= 0 || p.FarWeight > 1 {
		return ValidationError{"far_weight", "must be in (0, 1]"}
	}
	if p.FarWeight > p.DTEWeights[len(p.DTEWeights)-1].Weight {
		return ValidationError{"far_weight", "must not exceed the last band weight"}
	}

	return nil
}
