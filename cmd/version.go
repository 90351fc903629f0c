package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the Haven version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Printf("haven %s\n", Version)
		},
	}
}
