//go:build windows

package webgpu

import "fmt"

// workgroupSize is the number of invocations per workgroup for all kernels.
const workgroupSize = 256

// binaryExprs maps kernel names to the WGSL expression computing one output
// element from inputs x and y. Both operands are pre-expanded to the output
// shape host-side, so every kernel is a straight element-by-element map.
var binaryExprs = map[string]string{
	"add":      "x + y",
	"sub":      "x - y",
	"mul":      "x * y",
	"div":      "x / y",
	"floorDiv": "floor(x / y)",
	// Floored modulo, sign follows the divisor. WGSL's % truncates.
	"mod":               "x - floor(x / y) * y",
	"pow":               "pow(x, y)",
	"minimum":           "min(x, y)",
	"maximum":           "max(x, y)",
	"squaredDifference": "(x - y) * (x - y)",
	"atan2":             "atan2(x, y)",
}

// binaryShaderWGSL generates the WGSL source for an element-wise binary
// kernel over float32 buffers.
func binaryShaderWGSL(name string) (string, bool) {
	expr, ok := binaryExprs[name]
	if !ok {
		return "", false
	}
	return fmt.Sprintf(`
@group(0) @binding(0) var<storage, read> input_a: array<f32>;
@group(0) @binding(1) var<storage, read> input_b: array<f32>;
@group(0) @binding(2) var<storage, read_write> output: array<f32>;
@group(0) @binding(3) var<uniform> size: u32;

@compute @workgroup_size(%d)
fn main(@builtin(global_invocation_id) gid: vec3<u32>) {
    let idx = gid.x;
    if (idx >= size) {
        return;
    }
    let x = input_a[idx];
    let y = input_b[idx];
    output[idx] = %s;
}
`, workgroupSize, expr), true
}
