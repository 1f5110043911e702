package main

import (
	"fmt"

	"github.com/matheus3301/quickblessing/internal/config"
	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runTheme(cmd *cobra.Command, args []string) error {
	name, err := resolveProfile()
	if err != nil {
		return err
	}
	var want prefs.Theme
	if len(args) == 1 {
		t, ok := prefs.ParseTheme(args[0])
		if !ok {
			return fmt.Errorf("unknown theme %q (light|dark)", args[0])
		}
		want = t
	}
	return withManager(name, func(mgr *cooldown.Manager, _ *config.Config, _ *zap.Logger) error {
		if want == "" {
			t, err := mgr.ToggleTheme()
			if err != nil {
				return err
			}
			want = t
		} else if err := mgr.SetTheme(want); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", want)
		return nil
	})
}

func runLanguage(cmd *cobra.Command, args []string) error {
	name, err := resolveProfile()
	if err != nil {
		return err
	}
	var want prefs.Language
	if len(args) == 1 {
		l, ok := prefs.ParseLanguage(args[0])
		if !ok {
			return fmt.Errorf("unknown language %q (tr|en)", args[0])
		}
		want = l
	}
	return withManager(name, func(mgr *cooldown.Manager, _ *config.Config, _ *zap.Logger) error {
		if want == "" {
			l, err := mgr.ToggleLanguage()
			if err != nil {
				return err
			}
			want = l
		} else if err := mgr.SetLanguage(want); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Language: %s\n", want)
		return nil
	})
}
