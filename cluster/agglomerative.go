package cluster

import (
	"strconv"
	"strings"

	"github.com/hupe1980/vecscope/distance"
	"github.com/hupe1980/vecscope/normalize"
)

// Agglomerative merges singleton clusters bottom-up under average linkage
// until p.Target clusters remain.
//
// At every step the pair of clusters with the smallest mean pairwise
// member distance is merged. Pairwise cluster distances are cached by
// membership key, so only pairs involving the freshly merged cluster are
// recomputed between steps. Brute force is quadratic-or-worse per merge
// and intended for small batches only.
func Agglomerative(m *normalize.Matrix, p AgglomerativeParams) *Assignment {
	n := m.Len()
	a := &Assignment{Algorithm: p.Algorithm()}
	if n == 0 {
		return a
	}

	target := p.Target
	if target < 1 {
		target = 1
	}

	clusters := make([][]int, n)
	keys := make([]string, n)
	for i := range clusters {
		clusters[i] = []int{i}
		keys[i] = strconv.Itoa(i)
	}

	cache := make(map[string]float32)

	linkage := func(a, b int) float32 {
		key := keys[a] + "|" + keys[b]
		if keys[b] < keys[a] {
			key = keys[b] + "|" + keys[a]
		}
		if d, ok := cache[key]; ok {
			return d
		}

		var sum float64
		for _, i := range clusters[a] {
			for _, j := range clusters[b] {
				sum += float64(distance.L2(m.Vectors[i], m.Vectors[j]))
			}
		}
		d := float32(sum / float64(len(clusters[a])*len(clusters[b])))
		cache[key] = d
		return d
	}

	for len(clusters) > target {
		bestA, bestB := 0, 1
		bestDist := float32(0)
		first := true

		for i := 0; i < len(clusters); i++ {
			for j := i + 1; j < len(clusters); j++ {
				d := linkage(i, j)
				if first || d < bestDist {
					bestDist = d
					bestA, bestB = i, j
					first = false
				}
			}
		}

		merged := append(append([]int(nil), clusters[bestA]...), clusters[bestB]...)
		clusters[bestA] = merged
		keys[bestA] = membershipKey(merged)
		clusters = append(clusters[:bestB], clusters[bestB+1:]...)
		keys = append(keys[:bestB], keys[bestB+1:]...)
	}

	labels := make([]int, n)
	centroids := make([][]float32, len(clusters))
	for c, members := range clusters {
		for _, row := range members {
			labels[row] = c
		}
		centroids[c] = meanOf(m, members)
	}

	a.Labels = labels
	a.Centroids = centroids

	return a
}

func membershipKey(members []int) string {
	var sb strings.Builder
	for i, row := range members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(row))
	}
	return sb.String()
}
