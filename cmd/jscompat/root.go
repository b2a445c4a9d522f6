package main

import (
	"io"
	"strings"
	"time"

	"github.com/coregx/jscompat"
	"github.com/spf13/cobra"
)

// app holds what the subcommands share.
type app struct {
	out    *formatter
	engine *jscompat.Engine
	realm  *jscompat.Realm

	flags        string
	noColor      bool
	matchTimeout time.Duration
	cacheSize    int
	groupZero    bool
	noLiteral    bool
}

func newRootCmd(w io.Writer) *cobra.Command {
	a := &app{realm: jscompat.NewRealm()}
	defaults := jscompat.DefaultConfig()

	root := &cobra.Command{
		Use:   "jscompat",
		Short: "Run JavaScript-dialect regular expressions",
		Long: "jscompat transpiles JavaScript-dialect regular expressions for the host " +
			"engine and runs match, search and replace with the dialect's semantics.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(w)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(w)

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags, "flags", "f", "", "flags for bare pattern sources (g, i, m)")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")
	pf.DurationVar(&a.matchTimeout, "match-timeout", defaults.MatchTimeout,
		"host engine budget per search before falling back")
	pf.IntVar(&a.cacheSize, "cache-size", defaults.CacheSize, "number of compiled patterns to keep")
	pf.BoolVar(&a.groupZero, "expand-group-zero", false, "expand $0 to the whole match in replacements")
	pf.BoolVar(&a.noLiteral, "no-literal", false, "disable the literal alternation engine")

	root.AddCommand(
		newConvertCmd(a),
		newMatchCmd(a),
		newSearchCmd(a),
		newReplaceCmd(a),
		newGenCmd(a),
	)
	return root
}

func (a *app) init(w io.Writer) error {
	a.out = newFormatter(w, a.noColor)
	config := jscompat.DefaultConfig()
	config.MatchTimeout = a.matchTimeout
	config.CacheSize = a.cacheSize
	config.ExpandGroupZero = a.groupZero
	config.EnableLiteralSearch = !a.noLiteral
	config.Logger = a.out
	engine, err := jscompat.New(config)
	if err != nil {
		return err
	}
	a.engine = engine
	return nil
}

// compile compiles a pattern argument.
func (a *app) compile(arg string) (*jscompat.Regexp, error) {
	source, flags := splitLiteral(arg, a.flags)
	return a.engine.Compile(source, flags)
}

// splitLiteral splits a /source/flags literal. Anything else is a bare
// source that takes defaultFlags.
func splitLiteral(arg, defaultFlags string) (source, flags string) {
	if len(arg) >= 2 && arg[0] == '/' {
		if i := strings.LastIndexByte(arg, '/'); i > 0 {
			return arg[1:i], arg[i+1:]
		}
	}
	return arg, defaultFlags
}
