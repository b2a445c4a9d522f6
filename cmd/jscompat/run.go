package main

import (
	"github.com/coregx/jscompat"
	"github.com/spf13/cobra"
)

func newMatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "match PATTERN SUBJECT",
		Short: "Run SUBJECT.match(PATTERN)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0])
			if err != nil {
				return err
			}
			if err := a.out.matchResult(a.engine.Match(a.realm, args[1], re)); err != nil {
				return err
			}
			return a.out.state(a.realm.State())
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search PATTERN SUBJECT",
		Short: "Run SUBJECT.search(PATTERN)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := a.compile(args[0])
			if err != nil {
				return err
			}
			a.out.field("index", a.engine.Search(a.realm, args[1], re))
			return a.out.state(a.realm.State())
		},
	}
}

func newReplaceCmd(a *app) *cobra.Command {
	var literal bool
	cmd := &cobra.Command{
		Use:   "replace PATTERN SUBJECT [REPLACEMENT]",
		Short: "Run SUBJECT.replace(PATTERN, REPLACEMENT)",
		Long: "Run SUBJECT.replace(PATTERN, REPLACEMENT). A missing replacement is the " +
			"string \"undefined\". With --string, PATTERN is a plain search string.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			var target any = args[0]
			if !literal {
				re, err := a.compile(args[0])
				if err != nil {
					return err
				}
				target = re
			}
			out, err := a.engine.Perform(a.realm, jscompat.OpReplace, args[1], target, args[2:]...)
			if err != nil {
				return err
			}
			a.out.field("result", out)
			return a.out.state(a.realm.State())
		},
	}
	cmd.Flags().BoolVarP(&literal, "string", "s", false, "treat PATTERN as a plain search string")
	return cmd
}
