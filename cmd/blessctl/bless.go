package main

import (
	"context"
	"fmt"

	"github.com/matheus3301/quickblessing/internal/config"
	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/cue"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runBless(cmd *cobra.Command, _ []string) error {
	name, err := resolveProfile()
	if err != nil {
		return err
	}
	return withManager(name, func(mgr *cooldown.Manager, cfg *config.Config, logger *zap.Logger) error {
		accepted, err := mgr.Bless()
		s := mgr.State()
		if !accepted {
			return fmt.Errorf("already blessed, next blessing in %s", cooldown.FormatTime(s.TimeLeft))
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Blessed until %s (%s)\n", s.EndTime.Format("15:04:05"), s.BlessingID)

		// The process exits right after, so the cue is played inline.
		ctx, cancel := context.WithTimeout(context.Background(), cue.Timeout)
		defer cancel()
		if playErr := cue.New(cfg.SoundCommand, w).Play(ctx); playErr != nil {
			logger.Warn("blessing cue failed", zap.Error(playErr))
		}
		return err
	})
}
