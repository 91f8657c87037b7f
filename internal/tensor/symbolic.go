package tensor

import (
	"fmt"
	"strconv"
	"strings"
)

// UnknownDim marks a dimension whose size is not known until execution,
// typically the batch dimension.
const UnknownDim = -1

// SymbolicShape is a shape whose entries may be UnknownDim.
type SymbolicShape []int

// Clone returns a copy of the shape.
func (s SymbolicShape) Clone() SymbolicShape {
	clone := make(SymbolicShape, len(s))
	copy(clone, s)
	return clone
}

// Equal reports whether both shapes have the same rank and entries,
// treating UnknownDim as a value of its own.
func (s SymbolicShape) Equal(other SymbolicShape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// IsFullyDefined reports whether every dimension is known.
func (s SymbolicShape) IsFullyDefined() bool {
	for _, d := range s {
		if d == UnknownDim {
			return false
		}
	}
	return true
}

// Validate checks that every dimension is positive or UnknownDim.
func (s SymbolicShape) Validate() error {
	for i, d := range s {
		if d != UnknownDim && d <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d", i, d)
		}
	}
	return nil
}

// Concrete converts the shape to a Shape. Fails if any dimension is unknown.
func (s SymbolicShape) Concrete() (Shape, error) {
	if !s.IsFullyDefined() {
		return nil, fmt.Errorf("shape %s is not fully defined", s)
	}
	out := make(Shape, len(s))
	copy(out, s)
	return out, nil
}

// String renders unknown dimensions as null: [null,3,4].
func (s SymbolicShape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		if d == UnknownDim {
			parts[i] = "null"
		} else {
			parts[i] = strconv.Itoa(d)
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// SymbolicTensor is a placeholder carrying a dtype and shape but no data.
// Layers map placeholders to placeholders to infer output shapes.
type SymbolicTensor struct {
	dtype DataType
	shape SymbolicShape
	name  string
}

// NewSymbolic creates a placeholder.
func NewSymbolic(dtype DataType, shape SymbolicShape, name string) (*SymbolicTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("symbolic tensor %q: %w", name, err)
	}
	return &SymbolicTensor{dtype: dtype, shape: shape.Clone(), name: name}, nil
}

// DType returns the placeholder's data type.
func (s *SymbolicTensor) DType() DataType {
	return s.dtype
}

// Shape returns a copy of the placeholder's shape.
func (s *SymbolicTensor) Shape() SymbolicShape {
	return s.shape.Clone()
}

// Rank returns the number of dimensions.
func (s *SymbolicTensor) Rank() int {
	return len(s.shape)
}

// Name returns the placeholder name.
func (s *SymbolicTensor) Name() string {
	return s.name
}

// String returns a short description of the placeholder.
func (s *SymbolicTensor) String() string {
	return fmt.Sprintf("SymbolicTensor(%s, %s, %q)", s.dtype, s.shape, s.name)
}
