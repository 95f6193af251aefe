package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"stm32pwm/profile"
)

type profileOpts struct {
	name string
	file string
}

func (o *profileOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.name, "profile", "p", "blinky", "Built-in profile name")
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "YAML profile file (overrides --profile)")
}

func (o *profileOpts) load() (*profile.Profile, error) {
	if o.file != "" {
		return profile.LoadFile(o.file)
	}
	return profile.Builtin(o.name)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pwmplan",
		Short:         "Preview STM32F103 TIM2 PWM register configuration",
		Long:          "Run the firmware's startup PWM configuration against simulated registers and show what it writes.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newPlanCmd(), newTraceCmd(), newProfilesCmd(), newSolveCmd())
	return rootCmd
}

var errNoArgs = errors.New("command takes no arguments")

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return errors.Wrapf(errNoArgs, "%s: got %q", cmd.Name(), args)
	}
	return nil
}
