package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/cinder-ml/cinder/tensor"
)

func newGradCmd() *cobra.Command {
	var backendName string

	cmd := &cobra.Command{
		Use:   "grad OP A B",
		Short: "Evaluate a binary operator and the gradients of both operands",
		Long: `Evaluate a binary operator on two JSON literals, then run the backward
pass with a gradient of ones and print the gradient of each operand:

  cinder grad mul "[1,2,3]" "[4,5,6]"
  cinder grad pow "[2,3]" 2`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opName := args[0]
			op, ok := operators[opName]
			if !ok {
				return errors.Errorf("unknown operator %q", opName)
			}

			aLit, err := parseOperand(args[1])
			if err != nil {
				return err
			}
			bLit, err := parseOperand(args[2])
			if err != nil {
				return err
			}

			eng, cleanup, err := newEngine(backendName)
			if err != nil {
				return err
			}
			defer cleanup()

			// Normalize up front so we hold the tensors the tape will key
			// gradients by.
			a, err := tensor.FromAny(aLit, "a", opName)
			if err != nil {
				return err
			}
			b, err := tensor.FromAny(bLit, "b", opName)
			if err != nil {
				return err
			}

			eng.Tape().StartRecording()
			eng.Watch(a)
			eng.Watch(b)

			result, err := op(eng, a, b)
			if err != nil {
				return err
			}

			grads := eng.Backward(result)

			out, err := formatRaw(result)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "result: %s\n", out)

			for _, in := range []struct {
				name string
				t    *tensor.RawTensor
			}{{"grad_a", a}, {"grad_b", b}} {
				g, ok := grads[in.t]
				if !ok {
					fmt.Fprintf(os.Stdout, "%s: none\n", in.name)
					continue
				}
				s, err := formatRaw(g)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "%s: %s\n", in.name, s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendName, "backend", "cpu", "Compute backend (cpu or webgpu)")

	return cmd
}
