package handpose

import "github.com/ayusman/mudra/internal/detector"

// sample holds one frame's geometric facts for one hand. Samples are
// immutable once appended and owned by the history that stores them.
type sample struct {
	wrist       detector.Point3D
	normal      detector.Point3D
	palmShowing bool
	middleTip   detector.Point3D
}

// history is a fixed-capacity FIFO of the most recent samples for one
// hand identity. The oldest sample is evicted when full.
type history struct {
	samples []sample
	size    int
}

func newHistory(size int) *history {
	return &history{
		samples: make([]sample, 0, size),
		size:    size,
	}
}

func (h *history) push(s sample) {
	if len(h.samples) >= h.size {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.size-1]
	}
	h.samples = append(h.samples, s)
}

func (h *history) clear() {
	h.samples = h.samples[:0]
}

func (h *history) len() int {
	return len(h.samples)
}

func (h *history) at(i int) sample {
	return h.samples[i]
}

func (h *history) oldest() sample {
	return h.samples[0]
}

func (h *history) newest() sample {
	return h.samples[len(h.samples)-1]
}
