package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "orchestra",
		Short:         "Pipeline execution engine operational CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDoctorCmd())
	return root
}
