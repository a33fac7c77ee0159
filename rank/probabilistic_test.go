package rank

import (
	"math"
	"testing"

	"github.com/okapigo/okapi/analysis"
	"github.com/okapigo/okapi/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t *testing.T, corpus map[string]string) *index.Index {
	t.Helper()
	idx, err := index.Build(corpus, analysis.New(analysis.Config{}))
	require.NoError(t, err)
	return idx
}

func fruitIndex(t *testing.T) *index.Index {
	return buildIndex(t, map[string]string{
		"a": "apple banana cherry",
		"b": "apple apple durian",
		"c": "banana cherry cherry",
		"d": "durian fig",
	})
}

func TestProbabilistic_SingleRareTerm(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	ranking := p.Rank([]string{"fig"}, nil)
	require.Len(t, ranking, 1)
	assert.Equal(t, "d", ranking[0].Name)

	// N=4, n=1, R=0, r=0:
	// log10(0.5*3.5 / (0.5*1.5)) = log10(7/3)
	assert.InDelta(t, math.Log10(7.0/3.0), ranking[0].Score, 1e-12)
}

func TestProbabilistic_TieBreakByName(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	// apple contributes weight zero for this corpus shape; both containing
	// documents stay in the output and order by name.
	ranking := p.Rank([]string{"apple"}, nil)
	require.Len(t, ranking, 2)
	assert.Equal(t, []string{"a", "b"}, ranking.Names())
	assert.Equal(t, ranking[0].Score, ranking[1].Score)
}

func TestProbabilistic_RelevanceFeedback(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	ranking := p.Rank([]string{"apple", "durian"}, []string{"b"})
	require.Len(t, ranking, 3)

	// b matches both terms, each worth log10(5) with R={b}; a and d match
	// one each and tie, broken by name.
	assert.Equal(t, []string{"b", "a", "d"}, ranking.Names())
	assert.InDelta(t, 2*math.Log10(5), ranking[0].Score, 1e-12)
	assert.InDelta(t, math.Log10(5), ranking[1].Score, 1e-12)
	assert.InDelta(t, math.Log10(5), ranking[2].Score, 1e-12)
}

func TestProbabilistic_CommonTermDownWeighted(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"a": "zzz apple",
		"b": "zzz banana",
		"c": "zzz cherry",
		"d": "durian",
	})
	p := NewProbabilistic(idx)

	// zzz occurs in 3 of 4 documents, above N/2, so its document frequency
	// is zeroed in the numerator and the weight stays positive.
	ranking := p.Rank([]string{"zzz"}, nil)
	require.Len(t, ranking, 3)
	assert.InDelta(t, math.Log10(4.5/3.5), ranking[0].Score, 1e-12)
	assert.Positive(t, ranking[0].Score)
}

func TestProbabilistic_UnindexedTermIgnored(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	with := p.Rank([]string{"fig", "nosuchterm"}, nil)
	without := p.Rank([]string{"fig"}, nil)
	assert.Equal(t, without, with)

	assert.Empty(t, p.Rank([]string{"nosuchterm"}, nil))
}

func TestProbabilistic_DuplicateQueryTermsCountOnce(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	once := p.Rank([]string{"fig"}, nil)
	twice := p.Rank([]string{"fig", "fig"}, nil)
	assert.Equal(t, once, twice)
}

func TestProbabilistic_UnknownRelevantNamesIgnored(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"d1": "the cat sat",
		"d2": "the dog sat on the mat",
	})
	p := NewProbabilistic(idx)

	// Names the index has never seen must not inflate the relevant-set
	// size: with more phantom names than documents the odds numerator
	// would go negative and the score would come out NaN.
	ranking := p.Rank([]string{"cat"}, []string{"x1", "x2", "x3"})
	require.NotEmpty(t, ranking)
	assert.Equal(t, "d1", ranking[0].Name)
	for _, doc := range ranking {
		assert.False(t, math.IsNaN(doc.Score), "score for %s", doc.Name)
	}
	assert.Equal(t, p.Rank([]string{"cat"}, nil), ranking)
}

func TestProbabilistic_MixedRelevantNames(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	// Unknown names drop out; the known one still biases the weights.
	withGarbage := p.Rank([]string{"apple", "durian"}, []string{"zzz", "b", "yyy"})
	clean := p.Rank([]string{"apple", "durian"}, []string{"b"})
	assert.Equal(t, clean, withGarbage)
}

func TestProbabilistic_DuplicateRelevantNamesCountOnce(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	single := p.Rank([]string{"apple"}, []string{"b"})
	doubled := p.Rank([]string{"apple"}, []string{"b", "b"})
	assert.Equal(t, single, doubled)
}

func TestProbabilistic_EmptyQuery(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	assert.Empty(t, p.Rank(nil, nil))
	assert.Empty(t, p.Rank(nil, []string{"a"}))
}

func TestProbabilistic_SpecScenario(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"d1": "the cat sat",
		"d2": "the dog sat on the mat",
	})
	p := NewProbabilistic(idx)

	ranking := p.Rank([]string{"cat"}, nil)
	require.NotEmpty(t, ranking)
	assert.Equal(t, "d1", ranking[0].Name)
}

func TestProbabilistic_SortedDescending(t *testing.T) {
	p := NewProbabilistic(fruitIndex(t))

	ranking := p.Rank([]string{"apple", "banana", "fig"}, []string{"a", "d"})
	for i := 1; i < len(ranking); i++ {
		if ranking[i-1].Score == ranking[i].Score {
			assert.Less(t, ranking[i-1].Name, ranking[i].Name)
		} else {
			assert.Greater(t, ranking[i-1].Score, ranking[i].Score)
		}
	}
}
