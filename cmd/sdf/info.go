package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/scigolib/sdf"
	"github.com/spf13/cobra"
)

func infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.sdf>",
		Short: "Print the file header and block inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := sdf.Open(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			h := f.Header()
			fmt.Fprintf(out, "file:        %s\n", f.Path())
			fmt.Fprintf(out, "code:        %s (SDF v%d.%d, io v%d)\n",
				h.CodeName, h.SDFVersion, h.SDFRevision, h.CodeIOVersion)
			fmt.Fprintf(out, "step:        %d\n", h.Step)
			fmt.Fprintf(out, "time:        %g\n", h.Time)
			fmt.Fprintf(out, "jobid:       %d.%d\n", h.JobID1, h.JobID2)
			fmt.Fprintf(out, "restart:     %t\n", h.Restart)
			fmt.Fprintf(out, "blocks:      %d\n\n", h.NBlocks)

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tID\tTYPE\tDATATYPE\tDIMS")
			for _, b := range f.Blocks() {
				bh := b.Header()
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
					bh.Name, bh.ID, bh.Type, bh.Datatype, bh.NDims)
			}
			return w.Flush()
		},
	}
}
