package assembly

import (
	"errors"
	"fmt"
	"sort"
)

// GeneralKnowledge is never difficulty-banded.
const GeneralKnowledge = "gk"

// MaxQuota bounds a single subject and MaxQuestions the whole composition.
// The lte in Quota's validate tag must match MaxQuota.
const (
	MaxQuota     = 500
	MaxQuestions = 1000
)

var ErrInvalidComposition = errors.New("invalid composition")

type Quota struct {
	Total int `json:"total" validate:"gte=0,lte=500"`
}

// Composition maps a subject key to the number of questions it contributes.
type Composition map[string]Quota

func (c Composition) Required() int {
	sum := 0
	for _, q := range c {
		sum += q.Total
	}
	return sum
}

// Validate rejects negative or oversized quotas and grand totals above
// MaxQuestions.
func (c Composition) Validate() error {
	total := 0
	for subject, q := range c {
		if q.Total < 0 || q.Total > MaxQuota {
			return fmt.Errorf("%w: quota %d for %s outside 0..%d", ErrInvalidComposition, q.Total, subject, MaxQuota)
		}
		total += q.Total
	}
	if total > MaxQuestions {
		return fmt.Errorf("%w: %d questions exceeds %d", ErrInvalidComposition, total, MaxQuestions)
	}
	return nil
}

// OrderedKeys lists the composition's subjects: first those named in order,
// then the rest alphabetically.
func (c Composition) OrderedKeys(order []string) []string {
	keys := make([]string, 0, len(c))
	seen := make(map[string]bool, len(c))
	for _, k := range order {
		if _, ok := c[k]; ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	var rest []string
	for k := range c {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
