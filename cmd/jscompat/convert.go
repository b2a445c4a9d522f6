package main

import "github.com/spf13/cobra"

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert PATTERN...",
		Short: "Print the host source of patterns",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				re, err := a.compile(arg)
				if err != nil {
					return err
				}
				if err := a.out.pattern(re); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
