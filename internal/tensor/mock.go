package tensor

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend runs the reference kernels from raw_ops.go. Tests use it as the
// ground truth other backends are compared against.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// ReLU applies the generalized rectifier.
func (m *MockBackend) ReLU(x *RawTensor, params ReLUParams) *RawTensor {
	return must(ReLU(x, params))
}

// ThresholdedReLU keeps values above theta.
func (m *MockBackend) ThresholdedReLU(x *RawTensor, theta float64) *RawTensor {
	return must(ThresholdedReLU(x, theta))
}

// ELU applies the exponential linear unit.
func (m *MockBackend) ELU(x *RawTensor, alpha float64) *RawTensor {
	return must(ELU(x, alpha))
}

// PReLU applies the parametric rectifier.
func (m *MockBackend) PReLU(x, alpha *RawTensor) *RawTensor {
	return must(PReLU(x, alpha))
}

// Softmax normalizes along dim.
func (m *MockBackend) Softmax(x *RawTensor, dim int) *RawTensor {
	return must(Softmax(x, dim))
}

func must(r *RawTensor, err error) *RawTensor {
	if err != nil {
		panic(err)
	}
	return r
}
