package rank

import (
	"math"
	"testing"

	"github.com/okapigo/okapi/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorSpace_SpecScenario(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"d1": "the cat sat",
		"d2": "the dog sat on the mat",
	})
	v := NewVectorSpace(idx, matrix.Build(idx), 0)

	// cat appears only in d1 and d1 contains no other discriminating
	// term with non-zero idf, so the similarity is exactly 1.
	ranking := v.Rank([]string{"cat"})
	require.Len(t, ranking, 1)
	assert.Equal(t, "d1", ranking[0].Name)
	assert.InDelta(t, 1.0, ranking[0].Score, 1e-12)
}

func TestVectorSpace_RanksByCosine(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"d1": "apple",
		"d2": "apple banana",
		"d3": "cherry",
	})
	v := NewVectorSpace(idx, matrix.Build(idx), 0)

	ranking := v.Rank([]string{"apple"})
	require.Len(t, ranking, 2)
	assert.Equal(t, []string{"d1", "d2"}, ranking.Names())

	// idf(apple) = log2(3/2), idf(banana) = log2(3).
	wa := math.Log2(3.0 / 2.0)
	wb := math.Log2(3.0)
	assert.InDelta(t, wa, ranking[0].Score, 1e-12)
	assert.InDelta(t, wa*wa/math.Sqrt(wa*wa+wb*wb), ranking[1].Score, 1e-12)
}

func TestVectorSpace_ThresholdFiltersWeakMatches(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"d1": "apple",
		"d2": "apple banana",
		"d3": "cherry",
	})
	v := NewVectorSpace(idx, matrix.Build(idx), 0.3)

	ranking := v.Rank([]string{"apple"})
	require.Len(t, ranking, 1)
	assert.Equal(t, "d1", ranking[0].Name)
}

func TestVectorSpace_ZeroNormDocumentExcluded(t *testing.T) {
	// Every term of d1 occurs in every document, so d1's column has
	// weight zero throughout and must never be scored.
	idx := buildIndex(t, map[string]string{
		"d1": "x",
		"d2": "x y",
	})
	v := NewVectorSpace(idx, matrix.Build(idx), 0)

	assert.Empty(t, v.Rank([]string{"x"}))

	ranking := v.Rank([]string{"y"})
	require.Len(t, ranking, 1)
	assert.Equal(t, "d2", ranking[0].Name)
	assert.InDelta(t, 1.0, ranking[0].Score, 1e-12)
}

func TestVectorSpace_UnindexedQuery(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"d1": "apple",
		"d2": "banana",
	})
	v := NewVectorSpace(idx, matrix.Build(idx), 0)

	assert.Empty(t, v.Rank([]string{"nosuchterm"}))
	assert.Empty(t, v.Rank(nil))
}

func TestVectorSpace_RepeatedQueryTermsBoost(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"d1": "apple banana",
		"d2": "banana cherry",
		"d3": "cherry durian",
	})
	v := NewVectorSpace(idx, matrix.Build(idx), 0)

	single := v.Rank([]string{"apple", "banana"})
	repeated := v.Rank([]string{"apple", "apple", "banana"})

	require.NotEmpty(t, single)
	require.NotEmpty(t, repeated)
	assert.Equal(t, "d1", single[0].Name)
	assert.Equal(t, "d1", repeated[0].Name)
	// (1 + log2 2) doubles apple's query weight relative to banana.
	assert.Greater(t, repeated[0].Score, single[0].Score)
}

func TestVectorSpace_DefaultThreshold(t *testing.T) {
	idx := buildIndex(t, map[string]string{"d1": "apple"})
	v := NewVectorSpace(idx, matrix.Build(idx), -1)
	assert.Equal(t, DefaultRelevanceThreshold, v.Threshold())
}

func TestVectorSpace_SortedDescending(t *testing.T) {
	idx := fruitIndex(t)
	v := NewVectorSpace(idx, matrix.Build(idx), 0)

	ranking := v.Rank([]string{"apple", "banana", "durian"})
	for i := 1; i < len(ranking); i++ {
		if ranking[i-1].Score == ranking[i].Score {
			assert.Less(t, ranking[i-1].Name, ranking[i].Name)
		} else {
			assert.Greater(t, ranking[i-1].Score, ranking[i].Score)
		}
	}
}
