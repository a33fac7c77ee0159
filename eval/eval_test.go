package eval

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	ranked   = []string{"a", "b", "c", "d"}
	relevant = []string{"a", "c"}
)

func TestPrecision(t *testing.T) {
	assert.InDelta(t, 0.5, Precision(ranked, relevant), 1e-12)
	assert.InDelta(t, 1.0, Precision([]string{"a"}, relevant), 1e-12)
	assert.Zero(t, Precision(nil, relevant))
	assert.Zero(t, Precision(ranked, nil))
}

func TestRecall(t *testing.T) {
	assert.InDelta(t, 1.0, Recall(ranked, relevant), 1e-12)
	assert.InDelta(t, 0.5, Recall([]string{"a", "b"}, relevant), 1e-12)
	assert.Zero(t, Recall(ranked, nil))
	assert.Zero(t, Recall(nil, relevant))
}

func TestAveragePrecision(t *testing.T) {
	// Relevant hits at ranks 1 and 3: (1/1 + 2/3) / 2.
	assert.InDelta(t, 5.0/6.0, AveragePrecision(ranked, relevant), 1e-12)

	// A missing relevant document drags the average down.
	assert.InDelta(t, 0.5, AveragePrecision([]string{"a", "b"}, relevant), 1e-12)

	assert.Zero(t, AveragePrecision(ranked, nil))
}

func TestMeanAveragePrecision(t *testing.T) {
	rankings := [][]string{ranked, {"b", "d"}}
	relevants := [][]string{relevant, {"z"}}
	assert.InDelta(t, (5.0/6.0)/2, MeanAveragePrecision(rankings, relevants), 1e-12)

	assert.Zero(t, MeanAveragePrecision(nil, nil))
	assert.Zero(t, MeanAveragePrecision(rankings, relevants[:1]))
}

func TestDCG(t *testing.T) {
	// Gains at ranks 1 and 3: 1/log2(2) + 1/log2(4).
	assert.InDelta(t, 1.5, DCG(ranked, relevant), 1e-12)
	assert.Zero(t, DCG(ranked, nil))
}

func TestNDCG(t *testing.T) {
	idcg := 1 + 1/math.Log2(3)
	assert.InDelta(t, idcg, IDCG(ranked, relevant), 1e-12)
	assert.InDelta(t, 1.5/idcg, NDCG(ranked, relevant), 1e-12)

	// Ideal ordering scores exactly 1.
	assert.InDelta(t, 1.0, NDCG([]string{"a", "c", "b"}, relevant), 1e-12)

	assert.Zero(t, NDCG(ranked, nil))
	assert.Zero(t, NDCG(nil, relevant))
}

func TestInterpolatedPrecision(t *testing.T) {
	got := InterpolatedPrecision(ranked, relevant)

	// Recall 0.5 is reached at rank 1 with precision 1; full recall at
	// rank 3 with precision 2/3.
	for level := 0; level <= 5; level++ {
		assert.InDelta(t, 1.0, got[level], 1e-12, "level %d", level)
	}
	for level := 6; level <= 10; level++ {
		assert.InDelta(t, 2.0/3.0, got[level], 1e-12, "level %d", level)
	}
}

func TestInterpolatedPrecision_UnreachableLevelsZero(t *testing.T) {
	got := InterpolatedPrecision([]string{"a", "b"}, relevant)

	// Only half the relevant set is found; levels past 0.5 stay zero.
	assert.InDelta(t, 1.0, got[0], 1e-12)
	assert.InDelta(t, 1.0, got[5], 1e-12)
	for level := 6; level <= 10; level++ {
		assert.Zero(t, got[level], "level %d", level)
	}
}

func TestInterpolatedPrecision_NoJudgments(t *testing.T) {
	got := InterpolatedPrecision(ranked, nil)
	for level, p := range got {
		assert.Zero(t, p, "level %d", level)
	}
}
