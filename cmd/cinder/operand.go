package main

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/cinder-ml/cinder/backend/cpu"
	"github.com/cinder-ml/cinder/engine"
	"github.com/cinder-ml/cinder/tensor"
)

// parseOperand decodes a command-line operand: a JSON number ("2.5") or a
// nested JSON array ("[[1,2],[3,4]]"). Decoded numbers are float64, so CLI
// tensors compute in Float64.
func parseOperand(arg string) (any, error) {
	var v any
	if err := json.Unmarshal([]byte(arg), &v); err != nil {
		return nil, errors.Wrapf(err, "parsing operand %q", arg)
	}
	return v, nil
}

// newEngine builds an engine for the named backend. The returned cleanup
// must be called when done; it is a no-op for the CPU backend.
func newEngine(backendName string) (*engine.Engine, func(), error) {
	switch backendName {
	case "cpu":
		return engine.New(cpu.New()), func() {}, nil
	case "webgpu":
		return gpuEngine()
	default:
		return nil, nil, errors.Errorf("unknown backend %q (want cpu or webgpu)", backendName)
	}
}

// formatRaw renders a tensor as a nested JSON array, matching the literal
// syntax eval and grad accept.
func formatRaw(t *tensor.RawTensor) (string, error) {
	at, err := elementAccessor(t)
	if err != nil {
		return "", err
	}
	idx := 0
	v := nestValues(t.Shape(), at, &idx)
	out, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "encoding result")
	}
	return string(out), nil
}

func nestValues(shape tensor.Shape, at func(i int) any, idx *int) any {
	if len(shape) == 0 {
		v := at(*idx)
		*idx++
		return v
	}
	row := make([]any, shape[0])
	for i := range row {
		row[i] = nestValues(shape[1:], at, idx)
	}
	return row
}

func elementAccessor(t *tensor.RawTensor) (func(i int) any, error) {
	switch t.DType() {
	case tensor.Float32:
		data := t.AsFloat32()
		return func(i int) any { return data[i] }, nil
	case tensor.Float64:
		data := t.AsFloat64()
		return func(i int) any { return data[i] }, nil
	case tensor.Float16:
		data := t.AsFloat16()
		return func(i int) any { return data[i].Float32() }, nil
	case tensor.Int32:
		data := t.AsInt32()
		return func(i int) any { return data[i] }, nil
	case tensor.Int64:
		data := t.AsInt64()
		return func(i int) any { return data[i] }, nil
	case tensor.Uint8:
		data := t.AsUint8()
		return func(i int) any { return data[i] }, nil
	case tensor.Bool:
		data := t.AsBool()
		return func(i int) any { return data[i] }, nil
	default:
		return nil, errors.Errorf("unsupported dtype %s", t.DType())
	}
}
