package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stm32pwm/profile"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List built-in profiles",
		Args:  noArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range profile.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", p.Name, p.Description)
			}
		},
	}
}
