package nn

import (
	"fmt"

	"github.com/born-ml/activations/internal/tensor"
)

// Parameter is a named weight tensor of a layer, together with the
// regularizer that scores it and the constraint that keeps it valid.
//
// Example:
//
//	alpha := prelu.Parameters()[0]
//	w := alpha.Tensor()
//	err := alpha.Assign([]float32{0.1, 0.2})
type Parameter[B tensor.Backend] struct {
	name        string                     // Parameter name (e.g., "p_re_lu_1/alpha")
	tensor      *tensor.Tensor[float32, B] // The parameter values
	regularizer Regularizer
	constraint  Constraint
}

// NewParameter creates a parameter without regularizer or constraint.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[float32, B] {
	return p.tensor
}

// Regularizer returns the attached regularizer, or nil.
func (p *Parameter[B]) Regularizer() Regularizer {
	return p.regularizer
}

// Constraint returns the attached constraint, or nil.
func (p *Parameter[B]) Constraint() Constraint {
	return p.constraint
}

// Assign overwrites the parameter values and re-applies the constraint.
func (p *Parameter[B]) Assign(values []float32) error {
	data := p.tensor.Data()
	if len(values) != len(data) {
		return fmt.Errorf("assign %s: got %d values, shape %v needs %d", p.name, len(values), p.tensor.Shape(), len(data))
	}
	copy(data, values)
	return p.constrain()
}

// Penalty returns the regularization loss of the current values, or 0.
func (p *Parameter[B]) Penalty() float64 {
	if p.regularizer == nil {
		return 0
	}
	return p.regularizer.Penalty(p.tensor.Data())
}

func (p *Parameter[B]) constrain() error {
	if p.constraint == nil {
		return nil
	}
	if err := p.constraint.Apply(p.tensor.Data(), p.tensor.Shape()); err != nil {
		return fmt.Errorf("constrain %s: %w", p.name, err)
	}
	return nil
}
