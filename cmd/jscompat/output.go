package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/coregx/jscompat"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// formatter writes command output. It is also the engine logger, so
// warnings show up inline.
type formatter struct {
	w io.Writer

	labelStyle   *color.Color
	valueStyle   *color.Color
	missingStyle *color.Color
	warnStyle    *color.Color
}

func newFormatter(w io.Writer, noColor bool) *formatter {
	if noColor {
		color.NoColor = true
	}
	return &formatter{
		w:            w,
		labelStyle:   color.New(color.FgHiBlue),
		valueStyle:   color.New(color.Bold, color.FgGreen),
		missingStyle: color.New(color.FgHiBlack),
		warnStyle:    color.New(color.FgYellow),
	}
}

// Printf logs an engine warning.
func (f *formatter) Printf(format string, v ...interface{}) {
	f.warnStyle.Fprintf(f.w, "warning: "+format+"\n", v...)
}

func (f *formatter) field(label string, value interface{}) {
	fmt.Fprintf(f.w, "%s %s\n", f.labelStyle.Sprint(label+":"), f.valueStyle.Sprint(value))
}

func (f *formatter) none(label string) {
	fmt.Fprintf(f.w, "%s %s\n", f.labelStyle.Sprint(label+":"), f.missingStyle.Sprint("null"))
}

func (f *formatter) table(headers []string, rows [][]string) error {
	table := tablewriter.NewTable(f.w)
	table.Configure(func(c *tablewriter.Config) {
		c.Header.Alignment.Global = tw.AlignLeft
		c.Row.Alignment.Global = tw.AlignLeft
		c.Row.Padding.Global = tw.Padding{Left: " ", Right: " "}
	})
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func (f *formatter) pattern(re *jscompat.Regexp) error {
	host := re.HostSource()
	if host == "" {
		host = "-"
	}
	return f.table(
		[]string{"Pattern", "Host", "Groups", "Strategy"},
		[][]string{{re.String(), host, strconv.Itoa(re.NumSubexp()), re.Strategy().String()}},
	)
}

func (f *formatter) matchResult(res *jscompat.MatchResult) error {
	if res == nil {
		f.none("result")
		return nil
	}
	if res.Global {
		rows := make([][]string, len(res.Matches))
		for i, m := range res.Matches {
			rows[i] = []string{strconv.Itoa(i), strconv.Quote(m)}
		}
		return f.table([]string{"#", "Match"}, rows)
	}
	f.field("index", res.Index)
	rows := make([][]string, len(res.Groups))
	for i, g := range res.Groups {
		text := "undefined"
		if g.Matched {
			text = strconv.Quote(g.Text)
		}
		rows[i] = []string{strconv.Itoa(i), text}
	}
	return f.table([]string{"Group", "Text"}, rows)
}

func (f *formatter) state(s jscompat.MatchState) error {
	rows := [][]string{
		{"lastMatch", strconv.Quote(s.LastMatch)},
		{"lastParen", strconv.Quote(s.LastParen)},
		{"leftContext", strconv.Quote(s.LeftContext)},
		{"rightContext", strconv.Quote(s.RightContext)},
		{"input", strconv.Quote(s.Input)},
	}
	for i, p := range s.Parens {
		rows = append(rows, []string{"$" + strconv.Itoa(i+1), strconv.Quote(p)})
	}
	return f.table([]string{"RegExp", "Value"}, rows)
}
