package bench

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/jrhy/densemap"
	"github.com/sirupsen/logrus"
)

var (
	// ErrChecksumMismatch is returned when implementations disagree on a
	// scenario's result.
	ErrChecksumMismatch = errors.New("bench: checksum mismatch")
	// ErrZeroChecksum is returned when a lookup scenario finds nothing.
	ErrZeroChecksum = errors.New("bench: zero checksum")
	// ErrUnknownScenario is returned for a scenario name not in Scenarios.
	ErrUnknownScenario = errors.New("bench: unknown scenario")
	// ErrUnknownImplementation is returned for a name not in
	// Implementations.
	ErrUnknownImplementation = errors.New("bench: unknown implementation")
	// ErrTooManyRepeats is returned when a scenario's repeat count times
	// Scale does not fit in an int.
	ErrTooManyRepeats = errors.New("bench: too many repeats")
)

const cancelCheckInterval = 1024

// Config selects what Run measures. Empty name lists select everything.
type Config struct {
	Scenarios       []string
	Implementations []string
	// Scale multiplies each scenario's repeat count. Values below 1 are
	// treated as 1.
	Scale int
	// Repeats, if positive, replaces each scenario's repeat count before
	// scaling.
	Repeats int
}

// Validate checks that every selected scenario's scaled repeat count is
// representable.
func (cfg Config) Validate() error {
	scens, err := selectScenarios(cfg.Scenarios)
	if err != nil {
		return err
	}
	for i := range scens {
		if _, err := cfg.repeats(&scens[i]); err != nil {
			return err
		}
	}
	return nil
}

func (cfg Config) repeats(s *Scenario) (int, error) {
	repeats := s.Repeats
	if cfg.Repeats > 0 {
		repeats = cfg.Repeats
	}
	scale := max(cfg.Scale, 1)
	if repeats > math.MaxInt/scale {
		return 0, fmt.Errorf("%s: %d repeats at scale %d: %w", s.Name, repeats, scale, ErrTooManyRepeats)
	}
	return repeats * scale, nil
}

// Run times every selected implementation on every selected scenario and
// checks that they all computed the same checksum.
func Run(ctx context.Context, cfg Config, logger logrus.FieldLogger) (*Report, error) {
	scens, err := selectScenarios(cfg.Scenarios)
	if err != nil {
		return nil, err
	}
	impls, err := selectImplementations(cfg.Implementations)
	if err != nil {
		return nil, err
	}
	report := &Report{}
	for i := range scens {
		s := &scens[i]
		repeats, err := cfg.repeats(s)
		if err != nil {
			return nil, err
		}
		dataset := densemap.New(s.Pairs...)
		digest, err := dataset.Digest(nil)
		if err != nil {
			return nil, fmt.Errorf("digest %s: %w", s.Name, err)
		}
		log := logger.WithFields(logrus.Fields{
			"scenario": s.Name,
			"repeats":  repeats,
			"entries":  dataset.Len(),
		})
		var results []Result
		for _, impl := range impls {
			l := impl.New(dataset.Slice())
			log.WithField("implementation", impl.Name).Debug("benchmarking")
			checksum, elapsed, err := measure(ctx, s, l, repeats)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", s.Name, impl.Name, err)
			}
			r := Result{
				Scenario:       s.Name,
				Implementation: impl.Name,
				Repeats:        repeats,
				Duration:       elapsed,
				NsPerOp:        float64(elapsed.Nanoseconds()) / float64(repeats),
				Checksum:       checksum,
				Digest:         digest,
			}
			log.WithFields(logrus.Fields{
				"implementation": impl.Name,
				"duration":       elapsed,
				"checksum":       checksum,
			}).Info("benchmarked")
			results = append(results, r)
		}
		if err := verify(s, results); err != nil {
			return nil, err
		}
		report.Results = append(report.Results, results...)
	}
	return report, nil
}

func measure(ctx context.Context, s *Scenario, l Lookuper, repeats int) (int64, time.Duration, error) {
	var sum int64
	start := time.Now()
	for r := 0; r < repeats; r++ {
		if r%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}
		}
		sum += s.once(l)
	}
	return sum, time.Since(start), nil
}

func verify(s *Scenario, results []Result) error {
	if len(results) == 0 {
		return nil
	}
	first := results[0]
	if s.Kind == KindLookup && first.Checksum == 0 {
		return fmt.Errorf("%s/%s: %w", s.Name, first.Implementation, ErrZeroChecksum)
	}
	for _, r := range results[1:] {
		if r.Checksum != first.Checksum {
			return fmt.Errorf("%s: %s=%d, %s=%d: %w",
				s.Name, first.Implementation, first.Checksum,
				r.Implementation, r.Checksum, ErrChecksumMismatch)
		}
	}
	return nil
}

func selectScenarios(names []string) ([]Scenario, error) {
	all := Scenarios()
	if len(names) == 0 {
		return all, nil
	}
	var res []Scenario
	for _, name := range names {
		i := slices.IndexFunc(all, func(s Scenario) bool { return s.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownScenario)
		}
		res = append(res, all[i])
	}
	return res, nil
}

func selectImplementations(names []string) ([]Implementation, error) {
	all := Implementations()
	if len(names) == 0 {
		return all, nil
	}
	var res []Implementation
	for _, name := range names {
		i := slices.IndexFunc(all, func(impl Implementation) bool { return impl.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownImplementation)
		}
		res = append(res, all[i])
	}
	return res, nil
}
