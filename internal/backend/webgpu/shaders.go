//go:build windows

package webgpu

// workgroupSize is the number of invocations per workgroup in every shader.
const workgroupSize = 256

// reluShader computes the generalized rectifier:
// min(x, max_value) for x >= threshold, negative_slope * (x - threshold) otherwise.
const reluShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    has_max: u32,
    negative_slope: f32,
    threshold: f32,
    max_value: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx >= params.size) {
        return;
    }
    let x = input[idx];
    if (x >= params.threshold) {
        if (params.has_max != 0u) {
            result[idx] = min(x, params.max_value);
        } else {
            result[idx] = x;
        }
    } else {
        result[idx] = params.negative_slope * (x - params.threshold);
    }
}
`

// thresholdedReLUShader keeps x where x > theta.
const thresholdedReLUShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    theta: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let x = input[idx];
        result[idx] = select(0.0, x, x > params.theta);
    }
}
`

// eluShader computes x for x > 0 and alpha * (exp(x) - 1) otherwise.
const eluShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
    alpha: f32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let x = input[idx];
        result[idx] = select(params.alpha * (exp(x) - 1.0), x, x > 0.0);
    }
}
`

// preluShader computes x for x >= 0 and alpha * x otherwise. alpha is
// expanded to the input's shape on the host.
const preluShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read> alpha: array<f32>;
@group(0) @binding(2) var<storage, read_write> result: array<f32>;

struct Params {
    size: u32,
}
@group(0) @binding(3) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let idx = global_id.x;
    if (idx < params.size) {
        let x = input[idx];
        result[idx] = select(alpha[idx] * x, x, x >= 0.0);
    }
}
`

// softmaxShader normalizes one row per invocation. Row r covers the elements
// (outer, a, inner) for a in [0, axis_size) with r = outer * inner_size + inner.
const softmaxShader = `
@group(0) @binding(0) var<storage, read> input: array<f32>;
@group(0) @binding(1) var<storage, read_write> result: array<f32>;

struct Params {
    rows: u32,
    axis_size: u32,
    inner_size: u32,
}
@group(0) @binding(2) var<uniform> params: Params;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let row = global_id.x;
    if (row >= params.rows) {
        return;
    }
    let outer = row / params.inner_size;
    let inner = row % params.inner_size;
    let base = outer * params.axis_size * params.inner_size + inner;
    let stride = params.inner_size;

    var max_val = input[base];
    for (var a: u32 = 1u; a < params.axis_size; a = a + 1u) {
        max_val = max(max_val, input[base + a * stride]);
    }

    var sum = 0.0;
    for (var a: u32 = 0u; a < params.axis_size; a = a + 1u) {
        let idx = base + a * stride;
        let e = exp(input[idx] - max_val);
        result[idx] = e;
        sum = sum + e;
    }

    for (var a: u32 = 0u; a < params.axis_size; a = a + 1u) {
        let idx = base + a * stride;
        result[idx] = result[idx] / sum;
    }
}
`
