package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"reconnect/internal/engine"
	"reconnect/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, credits and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st := svc.Stats()
			toNext := max(engine.XPForNextLevel(st.Level)-st.TotalXP, 0)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", st.Level))
			fmt.Fprintf(out, "%s %s %.0f%%\n", ui.Key.Render("Progress:"), ui.ProgressBar(st.LevelProgress/100, 24), st.LevelProgress)
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d in level, %d total (%d to go)", st.XP, st.TotalXP, toNext)))
			fmt.Fprintln(out, ui.LabelValue("Credits", st.Credits))
			fmt.Fprintln(out, ui.LabelValue("Streak", st.Streak))
			fmt.Fprintln(out, ui.LabelValue("Tasks", fmt.Sprintf("%d done, %d open", st.CompletedTasks, st.OpenTasks)))
			fmt.Fprintln(out, ui.LabelValue("Habits today", st.HabitsToday))
			return nil
		},
	}

	return cmd
}
