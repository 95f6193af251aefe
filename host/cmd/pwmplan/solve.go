package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stm32pwm/core"
	"stm32pwm/profile"
)

func newSolveCmd() *cobra.Command {
	opts := struct {
		clock uint32
		freq  float64
		duty  float64
	}{}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find ARR and PSC values for a target frequency",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			period, divisor, err := profile.Solve(opts.clock, opts.freq)
			if err != nil {
				return err
			}

			cfg := core.PWMConfig{
				SourceClock: opts.clock,
				Period:      period,
				Duty:        opts.duty,
				Divisor:     divisor,
				Speed:       core.Speed2MHz,
			}
			if err := profile.Validate(cfg); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "period: %d\ndivisor: %d\nARR=%d CCR1=%d PSC=%d (%.6g Hz)\n",
				period, divisor, cfg.Period, cfg.Compare(), cfg.Prescaler(), cfg.OutputFrequency())
			return nil
		},
	}

	def := core.DefaultPWMConfig()
	cmd.Flags().Uint32VarP(&opts.clock, "clock", "c", def.SourceClock, "Timer input clock in Hz")
	cmd.Flags().Float64VarP(&opts.freq, "freq", "F", 1, "Target output frequency in Hz")
	cmd.Flags().Float64VarP(&opts.duty, "duty", "d", def.Duty, "Duty fraction, 0 to 1")
	return cmd
}
