package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"reconnect/internal/engine"
	"reconnect/internal/ui"
)

func newListCmd(a *app) *cobra.Command {
	var category string
	var openOnly bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			tasks := svc.FilterTasks(cat)
			if len(tasks) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No tasks."))
				return nil
			}
			for _, t := range tasks {
				if openOnly && t.Completed {
					continue
				}
				fmt.Fprintf(out, "%s %s %s %s %s\n",
					ui.CheckIcon(t.Completed),
					ui.Muted.Render(shortID(t.ID)),
					t.Title,
					ui.Muted.Render(engine.CategoryDisplayName(t.Category)),
					ui.DifficultyText(t.Difficulty)+ui.Muted.Render(fmt.Sprintf(" +%d XP", t.XPValue)),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "all", "Only this category")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Hide completed tasks")

	return cmd
}
