package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BradenHooton/valentine/internal/config"
	"github.com/BradenHooton/valentine/internal/countdown"
	"github.com/BradenHooton/valentine/internal/tui"
)

var countdownCmd = &cobra.Command{
	Use:   "countdown",
	Short: "Print the time left until the card opens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile(envFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		remaining := countdown.Remaining(time.Now(), cfg.Gate.Target)
		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderCountdown(countdown.Format(remaining)))
		return nil
	},
}
