package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newBackendsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backends",
		Short: "List available compute backends",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(os.Stdout, "cpu")
			if gpuAvailable() {
				fmt.Fprintln(os.Stdout, "webgpu")
			}
			return nil
		},
	}
}
