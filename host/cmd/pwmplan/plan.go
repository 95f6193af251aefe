package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stm32pwm/core"
	"stm32pwm/profile"
)

func newPlanCmd() *cobra.Command {
	var opts profileOpts

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the register image after startup",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.load()
			if err != nil {
				return err
			}
			cfg, err := p.PWMConfig()
			if err != nil {
				return err
			}

			rf, _ := core.NewSimRegisterFile()
			core.ConfigurePWM(rf, cfg)

			out := cmd.OutOrStdout()
			printSummary(out, p, cfg)
			fmt.Fprintln(out)
			for _, r := range rf.Named() {
				fmt.Fprintf(out, "  %-12s 0x%08X\n", r.Name, r.Reg.Get())
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func newTraceCmd() *cobra.Command {
	var opts profileOpts

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print every register write in order",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.load()
			if err != nil {
				return err
			}
			cfg, err := p.PWMConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, p, cfg)
			fmt.Fprintln(out)

			core.SetDebugWriter(func(s string) { fmt.Fprintln(out, s) })
			core.SetDebugEnabled(true)
			defer func() {
				core.SetDebugEnabled(false)
				core.SetDebugWriter(func(string) {})
			}()

			rf, writes := core.NewSimRegisterFile()
			core.ConfigurePWM(rf, cfg)

			fmt.Fprintln(out)
			for i, w := range writes.All() {
				fmt.Fprintf(out, "  %2d %-12s 0x%08X -> 0x%08X\n", i+1, w.Name, w.Before, w.After)
			}
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func printSummary(out io.Writer, p *profile.Profile, cfg core.PWMConfig) {
	fmt.Fprintf(out, "profile %s: %d Hz clock, ARR=%d CCR1=%d PSC=%d, pin speed %s\n",
		p.Name, cfg.SourceClock, cfg.Period, cfg.Compare(), cfg.Prescaler(), cfg.Speed)
	fmt.Fprintf(out, "output %.6g Hz, %.4g%% duty\n", cfg.OutputFrequency(), cfg.DutyPercent())
}
