package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	var backendName string

	cmd := &cobra.Command{
		Use:   "eval OP A B",
		Short: "Evaluate a binary operator on two tensor literals",
		Long: `Evaluate a binary operator on two operands given as JSON literals.

Operands may be scalars or nested arrays:

  cinder eval mul "[1,2,3,4]" 5
  cinder eval mod "[1,4,3,16]" "[1,2,9,4]"
  cinder eval atan2 "[[1],[0]]" "[1,1]"`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, ok := operators[args[0]]
			if !ok {
				return errors.Errorf("unknown operator %q (known: %s)", args[0], strings.Join(operatorNames(), ", "))
			}

			a, err := parseOperand(args[1])
			if err != nil {
				return err
			}
			b, err := parseOperand(args[2])
			if err != nil {
				return err
			}

			eng, cleanup, err := newEngine(backendName)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := op(eng, a, b)
			if err != nil {
				return err
			}

			out, err := formatRaw(result)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(os.Stdout, out)
			return err
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "cpu", "Compute backend (cpu or webgpu)")

	return cmd
}

func operatorNames() []string {
	names := make([]string, 0, len(operators))
	for name := range operators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
