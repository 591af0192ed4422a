package chop

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// IntroSkipSeconds is the earliest point a clip may start from, skipping the
// intro/branding segments which long-form source footage usually opens with.
const IntroSkipSeconds = 180

var ErrSourceTooShort = errors.New("source media is too short")

// IntervalError is returned when a source is not long enough to contain a
// clip of the target duration after skipping the intro.
type IntervalError struct {
	Target float64
	Source float64
}

func (e *IntervalError) Error() string {
	return fmt.Sprintf("%s: a %gs clip needs more than %ds beyond the %gs target, source is %gs",
		ErrSourceTooShort, e.Target, IntroSkipSeconds, e.Target, e.Source)
}

func (e *IntervalError) Unwrap() error { return ErrSourceTooShort }

// Sampler picks random clip intervals. The zero value is not usable; use
// NewSampler, or SampleInterval for the process-wide random source.
type Sampler struct {
	intn func(int) int
}

var defaultSampler = &Sampler{intn: rand.IntN}

func NewSampler(r *rand.Rand) *Sampler { return &Sampler{intn: r.IntN} }

// SampleInterval picks a random interval of length target from a source of
// the given duration (both in seconds) using the process-wide random source.
func SampleInterval(target float64, source float64) (float64, float64, error) {
	return defaultSampler.Sample(target, source)
}

// Sample returns a start drawn uniformly from the whole seconds in
// [IntroSkipSeconds, int(source)-int(target)), and end = start+target.
func (s *Sampler) Sample(target float64, source float64) (float64, float64, error) {
	upper := int(source) - int(target)
	if upper <= IntroSkipSeconds {
		return 0, 0, &IntervalError{Target: target, Source: source}
	}

	start := float64(IntroSkipSeconds + s.intn(upper-IntroSkipSeconds))
	return start, start + target, nil
}
