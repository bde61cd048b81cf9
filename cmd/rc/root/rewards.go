package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reconnect/internal/ui"
)

func newRewardsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show the reward store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			credits := svc.Ledger().Credits
			fmt.Fprintln(out, ui.Heading(ui.IconGift, "Rewards"))
			fmt.Fprintln(out, ui.LabelValue("Credits", credits))
			for _, r := range svc.Rewards() {
				cost := fmt.Sprintf("%d credits", r.Cost)
				if r.Cost <= credits {
					cost = ui.Good.Render(cost)
				} else {
					cost = ui.Muted.Render(cost)
				}
				fmt.Fprintf(out, "- %-10s %-18s %s\n", r.ID, r.Name, cost)
			}
			return nil
		},
	}

	return cmd
}

func newRedeemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem <reward_id>",
		Short: "Spend credits on a reward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("reward_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Redeem(ctx, args[0])
			if err != nil {
				return err
			}
			if !res.Redeemed {
				return fmt.Errorf("unknown reward %q (see `rc rewards`)", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Gold.Render(ui.IconGift+" Redeemed"),
				res.Reward.Name,
				ui.Muted.Render(fmt.Sprintf("(-%d credits, %d left)", res.Reward.Cost, res.CreditsLeft)),
			)
			return nil
		},
	}

	return cmd
}
