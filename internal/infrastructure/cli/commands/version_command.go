package commands

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/doeshing/clio-go/internal/version"
)

// NewVersionCommand creates the version command. It runs without loading
// configuration so it works on a broken setup.
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show clio version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writeVersion(cmd.OutOrStdout(), short)
			return nil
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}

func writeVersion(out io.Writer, short bool) {
	if short {
		fmt.Fprintln(out, version.Version)
		return
	}
	fmt.Fprintf(out, "clio %s (%s/%s, %s)\n", version.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	for _, field := range [][2]string{{"commit", version.Commit}, {"built", version.BuildDate}} {
		if field[1] != "" {
			fmt.Fprintf(out, "  %-7s %s\n", field[0]+":", field[1])
		}
	}
}
