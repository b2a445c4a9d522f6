// Command jscompat transpiles and runs JavaScript-dialect regular
// expressions from the command line.
//
// Usage:
//
//	jscompat convert '/(a)(b)?\2/'
//	jscompat match '/a/g' banana
//	jscompat search '/(\d+)-(\d+)/' 'call 555-1234'
//	jscompat replace '/(\w+)@(\w+)/g' 'bob@example' '$2:$1'
//	jscompat gen -p patterns -o patterns.go '/a+/g' '/[^]/'
//
// A pattern argument is either a literal such as /a+/gi or a bare source, in
// which case --flags supplies the flags.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "jscompat: %v\n", err)
		os.Exit(1)
	}
}
