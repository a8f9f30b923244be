package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (cli *CLI) newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := cli.viperInst

			configFile := v.ConfigFileUsed()
			if configFile == "" {
				configFile = "(none)"
			}

			w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "config file\t%s\n", configFile)
			for _, key := range []string{"data-dir", "backend", "key", "ephemeral", "log-level", "verbose"} {
				fmt.Fprintf(w, "%s\t%v\n", key, v.Get(key))
			}
			return w.Flush()
		},
	}
}
