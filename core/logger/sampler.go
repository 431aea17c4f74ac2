package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ratioSampler lets num out of every den calls through. A zero ratio
// disables sampling.
type ratioSampler struct {
	ratio atomic.Uint64 // num<<32 | den
	calls atomic.Uint64
}

func newRatioSampler(num, den int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(num, den)
	return s
}

func (s *ratioSampler) Set(num, den int) {
	if num <= 0 || den <= 0 {
		s.ratio.Store(0)
		return
	}
	num = min(num, den)
	s.ratio.Store(uint64(num)<<32 | uint64(uint32(den)))
	s.calls.Store(0)
}

func (s *ratioSampler) Allow() bool {
	r := s.ratio.Load()
	den := r & 0xffffffff
	if den == 0 {
		return true
	}
	return (s.calls.Add(1)-1)%den < r>>32
}

// parseRatioSpec accepts "num/den" or a bare "den" meaning 1/den. It returns
// 0,0 for empty, invalid or non-positive input.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	num, den := "1", spec
	if a, b, ok := strings.Cut(spec, "/"); ok {
		num, den = a, b
	}
	n, err1 := strconv.Atoi(strings.TrimSpace(num))
	d, err2 := strconv.Atoi(strings.TrimSpace(den))
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return 0, 0
	}
	return n, d
}
