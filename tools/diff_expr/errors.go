package diff_expr

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is matched by every StatisticalError.
var ErrInsufficientData = errors.New("insufficient data")

// StatisticalError reports a group with too few non-missing values for a
// t-test (at least 2 are needed).
type StatisticalError struct {
	Group string
	N     int
}

func (e *StatisticalError) Error() string {
	group := e.Group
	if group == "" {
		group = "a group"
	}
	return fmt.Sprintf("%s: %s has %d non-missing value(s), need at least %d", ErrInsufficientData, group, e.N, minGroupSize)
}

func (e *StatisticalError) Is(target error) bool { return target == ErrInsufficientData }
