package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/tinfo/terminfo"
)

func buildEvalCommand(g *globals) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "eval <capability> [params...]",
		Short: "Expand a string capability with integer parameters",
		Long: `Expand a string capability of the selected terminal.

The capability is named by its long name (cursor_address) or, when the
description defines no such standard name, by an extended name (setrgbf).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make([]int, 0, len(args)-1)
			for _, a := range args[1:] {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("parameter %q: %w", a, err)
				}
				params = append(params, n)
			}

			t, err := g.table("")
			if err != nil {
				return err
			}
			seq, err := expand(t, args[0], params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				_, err = out.Write(seq)
				return err
			}
			_, err = fmt.Fprintln(out, strconv.Quote(string(seq)))
			return err
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "write the expanded bytes unescaped")
	return cmd
}

func expand(t *terminfo.Table, name string, params []int) ([]byte, error) {
	if c, ok := terminfo.LookupString(name); ok {
		seq, ok := t.Expand(c, params...)
		if !ok {
			return nil, fmt.Errorf("%s: capability absent in %s", name, t.Name())
		}
		return seq, nil
	}
	if tmpl, ok := t.ExtendedString(name); ok {
		return terminfo.Expand(tmpl, params), nil
	}
	return nil, fmt.Errorf("%s: unknown capability", name)
}
