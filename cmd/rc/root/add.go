package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reconnect/internal/engine"
	"reconnect/internal/ui"
)

func newAddCmd(a *app) *cobra.Command {
	var category string
	var difficulty string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := engine.ParseCategory(category)
			if err != nil {
				return err
			}
			if cat == engine.CategoryAll {
				return errors.New("a task needs a concrete category")
			}
			diff, err := engine.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:      strings.Join(args, " "),
				Category:   cat,
				Difficulty: diff,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.Muted.Render(shortID(t.ID)),
				t.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, %s, +%d XP)", engine.CategoryDisplayName(t.Category), t.Difficulty, t.XPValue)),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(engine.CategoryPersonal), "Category (personal|health|work|learning|home|other)")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(engine.DifficultyEasy), "Difficulty (easy|medium|hard)")

	return cmd
}
