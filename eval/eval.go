// Package eval implements standard set- and rank-based retrieval
// effectiveness measures over binary relevance judgments.
package eval

import "math"

func relevantSet(relevant []string) map[string]struct{} {
	set := make(map[string]struct{}, len(relevant))
	for _, name := range relevant {
		set[name] = struct{}{}
	}
	return set
}

// Precision is the fraction of retrieved documents that are relevant.
// An empty retrieval has precision zero.
func Precision(retrieved, relevant []string) float64 {
	if len(retrieved) == 0 {
		return 0
	}
	set := relevantSet(relevant)
	hits := 0
	for _, name := range retrieved {
		if _, ok := set[name]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(retrieved))
}

// Recall is the fraction of relevant documents that were retrieved.
// An empty judgment set has recall zero.
func Recall(retrieved, relevant []string) float64 {
	if len(relevant) == 0 {
		return 0
	}
	set := relevantSet(relevant)
	hits := 0
	for _, name := range retrieved {
		if _, ok := set[name]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

// AveragePrecision averages the precision at each rank where a relevant
// document appears, over the total number of relevant documents. Relevant
// documents that never appear in ranked contribute zero.
func AveragePrecision(ranked, relevant []string) float64 {
	if len(relevant) == 0 {
		return 0
	}
	set := relevantSet(relevant)
	hits := 0
	var sum float64
	for i, name := range ranked {
		if _, ok := set[name]; ok {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}
	return sum / float64(len(relevant))
}

// MeanAveragePrecision is the mean of AveragePrecision across queries.
// rankings and relevants are parallel slices; a length mismatch or empty
// input yields zero.
func MeanAveragePrecision(rankings, relevants [][]string) float64 {
	if len(rankings) == 0 || len(rankings) != len(relevants) {
		return 0
	}
	var sum float64
	for i := range rankings {
		sum += AveragePrecision(rankings[i], relevants[i])
	}
	return sum / float64(len(rankings))
}

// DCG is the discounted cumulative gain of ranked under binary relevance,
// discounting the gain at rank i (1-based) by log2(i+1).
func DCG(ranked, relevant []string) float64 {
	set := relevantSet(relevant)
	var dcg float64
	for i, name := range ranked {
		if _, ok := set[name]; ok {
			dcg += 1 / math.Log2(float64(i)+2)
		}
	}
	return dcg
}

// IDCG is the gain of the ideal ranking: every relevant document placed
// first, truncated to the length of ranked.
func IDCG(ranked, relevant []string) float64 {
	n := len(relevant)
	if n > len(ranked) {
		n = len(ranked)
	}
	var idcg float64
	for i := 0; i < n; i++ {
		idcg += 1 / math.Log2(float64(i)+2)
	}
	return idcg
}

// NDCG is DCG normalized by IDCG, or zero when there is no achievable gain.
func NDCG(ranked, relevant []string) float64 {
	idcg := IDCG(ranked, relevant)
	if idcg == 0 {
		return 0
	}
	return DCG(ranked, relevant) / idcg
}

// InterpolatedPrecision computes the 11-point interpolated precision of
// ranked: for each recall level 0.0, 0.1, ..., 1.0 the maximum precision
// observed at any rank whose recall meets the level. Levels the ranking
// never reaches stay at zero.
func InterpolatedPrecision(ranked, relevant []string) [11]float64 {
	var points [11]float64
	if len(relevant) == 0 {
		return points
	}

	set := relevantSet(relevant)
	type op struct{ recall, precision float64 }
	curve := make([]op, 0, len(ranked))
	hits := 0
	for i, name := range ranked {
		if _, ok := set[name]; ok {
			hits++
		}
		curve = append(curve, op{
			recall:    float64(hits) / float64(len(relevant)),
			precision: float64(hits) / float64(i+1),
		})
	}

	for level := 0; level <= 10; level++ {
		r := float64(level) / 10
		var best float64
		for _, p := range curve {
			if p.recall >= r && p.precision > best {
				best = p.precision
			}
		}
		points[level] = best
	}
	return points
}
