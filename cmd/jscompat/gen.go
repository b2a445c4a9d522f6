package main

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/spf13/cobra"
)

const jscompatPath = "github.com/coregx/jscompat"

func newGenCmd(a *app) *cobra.Command {
	var pkg, output string
	cmd := &cobra.Command{
		Use:   "gen PATTERN...",
		Short: "Generate Go code that preloads patterns into an engine cache",
		Long: "gen writes a Go file listing the patterns with their host sources and a " +
			"Warm function that compiles them into an engine cache.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.generate(pkg, args)
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				return f.Render(cmd.OutOrStdout())
			}
			if err := f.Save(output); err != nil {
				return fmt.Errorf("failed to save %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&pkg, "package", "p", "patterns", "package name of the generated file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// generate builds the file for the given pattern arguments. Patterns the
// host rejects are still listed so that Warm reproduces the engine state.
func (a *app) generate(pkg string, args []string) (*jen.File, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by jscompat gen. DO NOT EDIT.")

	var entries []jen.Code
	for _, arg := range args {
		re, err := a.compile(arg)
		if err != nil {
			return nil, err
		}
		entries = append(entries, jen.Values(jen.Dict{
			jen.Id("Source"): jen.Lit(re.Source()),
			jen.Id("Flags"):  jen.Lit(re.Flags().String()),
			jen.Id("Host"):   jen.Lit(re.HostSource()),
			jen.Id("Groups"): jen.Lit(re.NumSubexp()),
		}))
	}

	f.Comment("Pattern is a pattern with its transpiled host source.")
	f.Type().Id("Pattern").Struct(
		jen.Id("Source").String(),
		jen.Id("Flags").String(),
		jen.Id("Host").String(),
		jen.Id("Groups").Int(),
	)

	f.Comment("Patterns lists the generated patterns.")
	f.Var().Id("Patterns").Op("=").Index().Id("Pattern").Values(entries...)

	f.Comment("Warm compiles every pattern into the cache of e.")
	f.Func().Id("Warm").Params(jen.Id("e").Op("*").Qual(jscompatPath, "Engine")).Error().Block(
		jen.For(jen.List(jen.Id("_"), jen.Id("p")).Op(":=").Range().Id("Patterns")).Block(
			jen.If(
				jen.List(jen.Id("_"), jen.Err()).Op(":=").Id("e").Dot("Compile").Call(
					jen.Id("p").Dot("Source"), jen.Id("p").Dot("Flags"),
				),
				jen.Err().Op("!=").Nil(),
			).Block(jen.Return(jen.Err())),
		),
		jen.Return(jen.Nil()),
	)
	return f, nil
}
