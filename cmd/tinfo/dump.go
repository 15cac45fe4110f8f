package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tinfo/terminfo"
)

func buildDumpCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [name]",
		Short: "Print the capabilities of a terminal description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			t, err := g.table(name)
			if err != nil {
				return err
			}
			dump(cmd.OutOrStdout(), t)
			return nil
		},
	}
}

func dump(w io.Writer, t *terminfo.Table) {
	fmt.Fprintf(w, "name: %s\n", t.Name())
	if aliases := t.Aliases(); len(aliases) > 0 {
		fmt.Fprintf(w, "aliases: %s\n", strings.Join(aliases, ", "))
	}
	if d := t.Description(); d != "" {
		fmt.Fprintf(w, "description: %s\n", d)
	}
	fmt.Fprintf(w, "number width: %d bits\n", t.NumberWidth()*8)

	fmt.Fprintln(w, "\nbooleans:")
	for c := terminfo.BoolCapability(0); int(c) < terminfo.BoolCount; c++ {
		if t.Bool(c) {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}

	fmt.Fprintln(w, "\nnumbers:")
	for c := terminfo.NumberCapability(0); int(c) < terminfo.NumberCount; c++ {
		if v, ok := t.Number(c); ok {
			fmt.Fprintf(w, "  %s = %d\n", c, v)
		}
	}

	fmt.Fprintln(w, "\nstrings:")
	for c := terminfo.StringCapability(0); int(c) < terminfo.StringCount; c++ {
		if s, ok := t.Sequence(c); ok {
			fmt.Fprintf(w, "  %s = %s\n", c, strconv.Quote(string(s)))
		}
	}

	fmt.Fprintf(w, "\nextended: %s\n", t.ExtendedStatus())
	if err := t.ExtendedErr(); err != nil {
		fmt.Fprintf(w, "  error: %v\n", err)
	}
	if ext := t.Extended(); ext != nil {
		bools, numbers, strs := ext.Names()
		for _, n := range bools {
			if v, _ := t.ExtendedBool(n); v {
				fmt.Fprintf(w, "  %s\n", n)
			}
		}
		for _, n := range numbers {
			if v, ok := t.ExtendedNumber(n); ok {
				fmt.Fprintf(w, "  %s = %d\n", n, v)
			}
		}
		for _, n := range strs {
			if s, ok := t.ExtendedString(n); ok {
				fmt.Fprintf(w, "  %s = %s\n", n, strconv.Quote(string(s)))
			}
		}
	}

	if warnings := t.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(w, "\nwarnings:")
		for _, warn := range warnings {
			fmt.Fprintf(w, "  %s\n", warn)
		}
	}
}
