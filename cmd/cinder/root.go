package main

import (
	"github.com/spf13/cobra"

	"github.com/cinder-ml/cinder/ops"
)

const version = "v0.1.0-dev"

// operators maps command-line operator names to their implementations.
var operators = map[string]ops.BinaryOp{
	"add":               ops.Add,
	"sub":               ops.Sub,
	"mul":               ops.Mul,
	"div":               ops.Div,
	"floorDiv":          ops.FloorDiv,
	"mod":               ops.Mod,
	"pow":               ops.Pow,
	"minimum":           ops.Minimum,
	"maximum":           ops.Maximum,
	"squaredDifference": ops.SquaredDifference,
	"atan2":             ops.Atan2,

	"addStrict":               ops.AddStrict,
	"subStrict":               ops.SubStrict,
	"mulStrict":               ops.MulStrict,
	"divStrict":               ops.DivStrict,
	"modStrict":               ops.ModStrict,
	"minimumStrict":           ops.MinimumStrict,
	"maximumStrict":           ops.MaximumStrict,
	"powStrict":               ops.PowStrict,
	"squaredDifferenceStrict": ops.SquaredDifferenceStrict,
}

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cinder",
		Short: "Cinder tensor command line",
		Long:  "Evaluate element-wise tensor operators and their gradients from the shell.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newBackendsCmd())
	cmd.AddCommand(newEvalCmd())
	cmd.AddCommand(newGradCmd())

	return cmd
}
