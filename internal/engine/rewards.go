package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type RedeemResult struct {
	Redeemed    bool // false when the reward id is unknown
	Reward      Reward
	CreditsLeft int
}

// Redeem spends credits on a catalog reward. Only the balance and the activity
// log change; no record of owned rewards is kept.
func (s *Service) Redeem(ctx context.Context, rewardID string) (RedeemResult, error) {
	r, ok := s.catalog.Reward(rewardID)
	if !ok {
		return RedeemResult{CreditsLeft: s.state.User.Credits}, nil
	}
	if s.state.User.Credits < r.Cost {
		return RedeemResult{Reward: r, CreditsLeft: s.state.User.Credits}, InsufficientCreditsError{
			RewardID: r.ID,
			Cost:     r.Cost,
			Credits:  s.state.User.Credits,
		}
	}

	s.state.User.Credits -= r.Cost
	s.record(fmt.Sprintf(`Redeemed "%s" (-%d credits)`, r.Name, r.Cost))
	s.log.Debug("reward redeemed", zap.String("reward", r.ID), zap.Int("credits_left", s.state.User.Credits))

	s.persist(ctx)
	return RedeemResult{Redeemed: true, Reward: r, CreditsLeft: s.state.User.Credits}, nil
}
