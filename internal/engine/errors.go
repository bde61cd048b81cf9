package engine

import (
	"errors"
	"fmt"
)

// ErrInsufficientCredits matches any InsufficientCreditsError via errors.Is.
var ErrInsufficientCredits = errors.New("insufficient credits")

// InsufficientCreditsError is returned when a redemption costs more than the
// current balance. Nothing is changed when it is returned.
type InsufficientCreditsError struct {
	RewardID string
	Cost     int
	Credits  int
}

func (e InsufficientCreditsError) Error() string {
	return fmt.Sprintf("reward %s costs %d credits (have %d)", e.RewardID, e.Cost, e.Credits)
}

func (e InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}
