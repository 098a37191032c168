package bench

import (
	"context"
	"errors"
	"iter"
	"math"
	"testing"

	"github.com/jrhy/densemap"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()
	logger, hook := logtest.NewNullLogger()
	report, err := Run(context.Background(), Config{Repeats: 3}, logger)
	require.NoError(t, err)
	require.Len(t, report.Results, len(Scenarios())*len(Implementations()))

	checksums := map[string]int64{}
	for _, r := range report.Results {
		assert.Equal(t, 3, r.Repeats)
		assert.Len(t, r.Digest, 43)
		if c, ok := checksums[r.Scenario]; ok {
			assert.Equal(t, c, r.Checksum, r.Scenario)
		}
		checksums[r.Scenario] = r.Checksum
	}
	assert.Equal(t, int64(3*45), checksums["lookup-sparse"])
	assert.Equal(t, int64(3), checksums["lookup-dense"])

	var benchmarked int
	for _, e := range hook.AllEntries() {
		if e.Message == "benchmarked" {
			benchmarked++
			assert.Equal(t, logrus.InfoLevel, e.Level)
			assert.Contains(t, e.Data, "scenario")
			assert.Contains(t, e.Data, "implementation")
		}
	}
	assert.Equal(t, len(report.Results), benchmarked)
}

func TestRunSelection(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	report, err := Run(context.Background(), Config{
		Scenarios:       []string{"lookup-dense"},
		Implementations: []string{"btree", "dense"},
		Repeats:         2,
		Scale:           5,
	}, logger)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)
	assert.Equal(t, "btree", report.Results[0].Implementation)
	assert.Equal(t, "dense", report.Results[1].Implementation)
	for _, r := range report.Results {
		assert.Equal(t, 10, r.Repeats)
		assert.Equal(t, int64(10), r.Checksum)
	}
}

func TestRunUnknownNames(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	_, err := Run(context.Background(), Config{Scenarios: []string{"nope"}}, logger)
	assert.ErrorIs(t, err, ErrUnknownScenario)
	_, err = Run(context.Background(), Config{Implementations: []string{"nope"}}, logger)
	assert.ErrorIs(t, err, ErrUnknownImplementation)
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Repeats: 1}, logger)
	assert.True(t, errors.Is(err, context.Canceled), "%v", err)
}

type skewed struct {
	Lookuper
}

func (s skewed) Find(key int64) (int64, bool) {
	v, ok := s.Lookuper.Find(key)
	return v + 1, ok
}

func (s skewed) All() iter.Seq2[int64, int64] {
	return s.Lookuper.All()
}

func TestVerify(t *testing.T) {
	t.Parallel()
	s := Scenarios()[0]
	good := s.once(densemap.New(s.Pairs...))
	bad := s.once(skewed{densemap.New(s.Pairs...)})
	require.NotEqual(t, good, bad)

	err := verify(&s, []Result{
		{Implementation: "dense", Checksum: good},
		{Implementation: "skewed", Checksum: bad},
	})
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	err = verify(&s, []Result{{Implementation: "dense", Checksum: 0}})
	assert.ErrorIs(t, err, ErrZeroChecksum)

	iterate := Scenario{Name: "iterate", Kind: KindIterate}
	assert.NoError(t, verify(&iterate, []Result{{Checksum: 0}, {Checksum: 0}}))
	assert.NoError(t, verify(&s, nil))
}

func TestRunRejectsOverflowingScale(t *testing.T) {
	t.Parallel()
	logger, _ := logtest.NewNullLogger()
	cfg := Config{Scenarios: []string{"lookup-sparse"}, Repeats: 2, Scale: math.MaxInt/2 + 1}
	assert.ErrorIs(t, cfg.Validate(), ErrTooManyRepeats)
	_, err := Run(context.Background(), cfg, logger)
	assert.ErrorIs(t, err, ErrTooManyRepeats)

	cfg.Scale = math.MaxInt / 2
	assert.NoError(t, cfg.Validate())
}
