package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/matheus3301/quickblessing/internal/cooldown"
	"github.com/matheus3301/quickblessing/internal/prefs"
	"github.com/spf13/cobra"
)

type statusOutput struct {
	Profile   string     `json:"profile"`
	Phase     string     `json:"phase"`
	Blessed   bool       `json:"blessed"`
	Waiting   bool       `json:"waiting"`
	TimeLeft  int        `json:"time_left"`
	Remaining string     `json:"remaining"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Language  string     `json:"language"`
	Theme     string     `json:"theme"`
	Blessings int        `json:"blessings"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	name, err := resolveProfile()
	if err != nil {
		return err
	}
	db, err := openStore(name)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	s := cooldown.Peek(prefs.New(db), time.Now())
	count, err := db.CountBlessings()
	if err != nil {
		return fmt.Errorf("count blessings: %w", err)
	}

	out := statusOutput{
		Profile:   name,
		Phase:     string(s.Phase),
		Blessed:   s.Blessed,
		Waiting:   s.Waiting(),
		TimeLeft:  s.TimeLeft,
		Remaining: cooldown.FormatTime(s.TimeLeft),
		Language:  string(s.Language),
		Theme:     string(s.Theme),
		Blessings: count,
	}
	if !s.EndTime.IsZero() {
		end := s.EndTime
		out.EndTime = &end
	}

	w := cmd.OutOrStdout()
	if jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "Profile:   %s\n", out.Profile)
	fmt.Fprintf(w, "Phase:     %s\n", out.Phase)
	fmt.Fprintf(w, "Blessed:   %v\n", out.Blessed)
	if out.Waiting {
		fmt.Fprintf(w, "Remaining: %s (until %s)\n", out.Remaining, s.EndTime.Format("15:04:05"))
	}
	fmt.Fprintf(w, "Language:  %s\n", out.Language)
	fmt.Fprintf(w, "Theme:     %s\n", out.Theme)
	fmt.Fprintf(w, "Blessings: %d\n", out.Blessings)
	return nil
}
