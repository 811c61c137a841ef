package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/scigolib/sdf"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

func dumpCommand() *cobra.Command {
	var values bool

	cmd := &cobra.Command{
		Use:   "dump <file.sdf> [variable]",
		Short: "List dataset contents, or summarize one variable",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := sdf.OpenDataset(args[0], cfg.options()...)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return dumpDataset(cmd, ds)
			}
			return dumpVariable(cmd, ds, args[1], values)
		},
	}
	cmd.Flags().BoolVar(&values, "values", false, "print every element instead of summary statistics")
	return cmd
}

func dumpDataset(cmd *cobra.Command, ds *sdf.Dataset) error {
	out := cmd.OutOrStdout()

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VARIABLE\tUNITS\tSHAPE\tCOORDINATES")
	for _, name := range ds.VarNames() {
		v, _ := ds.Var(name)
		fmt.Fprintf(w, "%s\t%s\t%v\t%s\n",
			name, v.Units, v.Shape(), strings.Join(v.Coords, ", "))
	}
	fmt.Fprintln(w, "\nCOORDINATE\tUNITS\tPOINTS")
	for _, name := range ds.CoordNames() {
		c, _ := ds.Coord(name)
		fmt.Fprintf(w, "%s\t%s\t%d\n", name, c.Units, len(c.Values))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nATTRIBUTES")
	for _, name := range ds.AttrNames() {
		value, _ := ds.Attr(name)
		fmt.Fprintf(out, "  %s = %v\n", name, value)
	}
	return nil
}

func dumpVariable(cmd *cobra.Command, ds *sdf.Dataset, name string, values bool) error {
	out := cmd.OutOrStdout()

	v, ok := ds.Var(name)
	if !ok {
		return fmt.Errorf("no variable %q in dataset", name)
	}

	fmt.Fprintf(out, "variable:    %s\n", v.Name)
	fmt.Fprintf(out, "units:       %s\n", v.Units)
	fmt.Fprintf(out, "shape:       %v\n", v.Shape())
	fmt.Fprintf(out, "coordinates: %s\n", strings.Join(v.Coords, ", "))

	e := v.Data.Elements
	if len(e) > 0 {
		fmt.Fprintf(out, "min:         %g\n", floats.Min(e))
		fmt.Fprintf(out, "max:         %g\n", floats.Max(e))
		fmt.Fprintf(out, "mean:        %g\n", floats.Sum(e)/float64(len(e)))
	}
	if values {
		for i, val := range e {
			fmt.Fprintf(out, "[%d] %g\n", i, val)
		}
	}
	return nil
}
