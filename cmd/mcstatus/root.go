// Command mcstatus is a CLI front end over the mcstatus library: one
// subcommand per dialect, plus an interactive REPL for querying several
// servers in a session.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagReadTimeout  time.Duration
	flagWriteTimeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "mcstatus:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mcstatus",
		Short: "Query Minecraft server status over any supported dialect",
	}

	root.PersistentFlags().DurationVar(&flagReadTimeout, "read-timeout", 5*time.Second, "socket read timeout")
	root.PersistentFlags().DurationVar(&flagWriteTimeout, "write-timeout", 5*time.Second, "socket write timeout")

	root.AddCommand(
		newPingCmd(),
		newNettyCmd(),
		newLegacyCmd(),
		newBetaLegacyCmd(),
		newQueryBasicCmd(),
		newQueryFullCmd(),
		newBedrockCmd(),
		newLanCmd(),
		newReplCmd(),
	)

	return root
}
