package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reconnect/internal/config"
	"reconnect/internal/logging"
	"reconnect/internal/ui"
)

const Version = "0.1.0"

// app carries the global flags and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	dataPath   string
	store      string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "rc",
		Short:         "ReConnect, a gamified task and habit tracker",
		Long:          "ReConnect turns tasks and daily habits into XP, levels and credits you can spend on rewards.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultConfigPath(), "Config file")
	cmd.PersistentFlags().StringVar(&a.dataPath, "data", "", "State file (overrides config)")
	cmd.PersistentFlags().StringVar(&a.store, "store", "", "Store engine: json|sqlite (overrides config)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Debug logging")

	cmd.AddCommand(
		newAddCmd(a),
		newDoCmd(a),
		newRmCmd(a),
		newListCmd(a),
		newHabitCmd(a),
		newRewardsCmd(a),
		newRedeemCmd(a),
		newStatusCmd(a),
		newActivityCmd(a),
		newBoardCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataPath != "" {
		cfg.Store.Path = a.dataPath
	}
	if a.store != "" {
		cfg.Store.Engine = a.store
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging, a.verbose)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
