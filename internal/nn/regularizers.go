package nn

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Regularizer scores a weight; the score is added to the training loss.
type Regularizer interface {
	ClassName() string
	Config() Config
	Penalty(data []float32) float64
}

// L1L2 penalizes l1*sum(|w|) + l2*sum(w²).
type L1L2 struct {
	L1 float64
	L2 float64
}

// ClassName returns "L1L2".
func (L1L2) ClassName() string { return "L1L2" }

// Config returns both coefficients.
func (r L1L2) Config() Config { return Config{"l1": r.L1, "l2": r.L2} }

// Penalty returns l1*sum(|w|) + l2*sum(w²), accumulated in float64.
func (r L1L2) Penalty(data []float32) float64 {
	w := widen(data)
	return r.L1*floats.Norm(w, 1) + r.L2*floats.Dot(w, w)
}

func widen(data []float32) []float64 {
	w := make([]float64, len(data))
	for i, v := range data {
		w[i] = float64(v)
	}
	return w
}

// GetRegularizer resolves a shorthand name or a serialized regularizer.
// Nil resolves to nil (no regularization).
func GetRegularizer(v any) (Regularizer, error) {
	if v == nil {
		return nil, nil
	}
	if reg, ok := v.(Regularizer); ok {
		return reg, nil
	}
	className, cfg, err := parseObject("regularizer", v)
	if err != nil {
		return nil, err
	}

	var reg L1L2
	r := newConfigReader(className, cfg)
	switch shorthandKey(className) {
	case "l1l2":
		reg = L1L2{L1: r.float("l1", 0), L2: r.float("l2", 0)}
	case "l1":
		reg = L1L2{L1: r.float("l1", 0.01)}
	case "l2":
		reg = L1L2{L2: r.float("l2", 0.01)}
	default:
		return nil, fmt.Errorf("%w: regularizer %q", ErrUnknownClass, className)
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	if err := checkNonNegative(className, "l1", reg.L1); err != nil {
		return nil, err
	}
	if err := checkNonNegative(className, "l2", reg.L2); err != nil {
		return nil, err
	}
	return reg, nil
}

// SerializeRegularizer renders a regularizer as {"className", "config"},
// or nil for no regularizer.
func SerializeRegularizer(reg Regularizer) any {
	if reg == nil {
		return nil
	}
	return serializeObject(reg.ClassName(), reg.Config())
}
