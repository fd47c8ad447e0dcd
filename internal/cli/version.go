package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/neysla/version"
)

func newVersionCmd() *cobra.Command {
	var (
		short, long bool
		output      string
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			info := version.Current()
			switch {
			case short:
				fmt.Fprintln(w, info.Short())
			case long:
				fmt.Fprintln(w, info.Long())
			default:
				f, err := parseFormat(output)
				if err != nil {
					return err
				}
				if f != formatText {
					return newPrinter(w, f, false).structured(info)
				}
				fmt.Fprintln(w, info)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print version and commit only")
	cmd.Flags().BoolVar(&long, "long", false, "print version, commit, branch and build date")
	cmd.Flags().StringVarP(&output, "output", "o", string(formatText), "output format: text, json or yaml")
	cmd.MarkFlagsMutuallyExclusive("short", "long")
	return cmd
}
