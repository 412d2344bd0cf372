package gesture

// DefaultWindow is the number of samples averaged by a Smoother.
const DefaultWindow = 5

// Smoother keeps a fixed-size FIFO of the most recent distance samples.
// It is not safe for concurrent use; callers guard it with their own lock.
type Smoother struct {
	samples []float64
	size    int
}

// NewSmoother creates a Smoother holding at most size samples.
// A size less than 1 falls back to DefaultWindow.
func NewSmoother(size int) *Smoother {
	if size < 1 {
		size = DefaultWindow
	}
	return &Smoother{
		samples: make([]float64, 0, size),
		size:    size,
	}
}

// Push appends a sample, evicting the oldest one once the window is full.
func (s *Smoother) Push(sample float64) {
	if len(s.samples) >= s.size {
		// Shift left by 1, dropping the oldest sample
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:s.size-1]
	}
	s.samples = append(s.samples, sample)
}

// Average returns the mean of the buffered samples, or 0 when empty.
func (s *Smoother) Average() float64 {
	if len(s.samples) == 0 {
		return 0
	}

	var sum float64
	for _, v := range s.samples {
		sum += v
	}
	return sum / float64(len(s.samples))
}

// Len returns the number of buffered samples.
func (s *Smoother) Len() int {
	return len(s.samples)
}

// Reset discards all buffered samples.
func (s *Smoother) Reset() {
	s.samples = s.samples[:0]
}
