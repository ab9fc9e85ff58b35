package noise

// Zero is zero noise i.e. no noise
type Zero struct{}

// NewZero creates new zero noise i.e. zero mean and zero variance.
func NewZero() *Zero {
	return &Zero{}
}

// Sample returns zero.
func (e *Zero) Sample() float64 { return 0 }

// Mean returns Zero mean.
func (e *Zero) Mean() float64 { return 0 }

// Var returns Zero variance.
func (e *Zero) Var() float64 { return 0 }

// Reset does nothing: it's here to implement rssimap.Noise interface
func (e *Zero) Reset(uint64) {}

// String implements the Stringer interface.
func (e *Zero) String() string {
	return "Zero{}"
}
