package cluster

import (
	"github.com/hupe1980/vecscope/distance"
	"github.com/hupe1980/vecscope/normalize"
)

// unclassified marks rows DBSCAN has not visited yet.
const unclassified = -2

// DBSCAN performs density-based clustering with brute-force neighborhood
// scans. A row with at least p.MinPts rows (itself included) inside
// Euclidean radius p.Eps is a core point; clusters grow from cores through
// a seed stack, and reachable border rows join the cluster even when
// previously marked noise. Cluster ids are assigned in discovery order
// starting at 0; unreachable rows keep the -1 noise label.
//
// Non-positive Eps or MinPts yields an all-noise assignment.
func DBSCAN(m *normalize.Matrix, p DBSCANParams) *Assignment {
	n := m.Len()
	a := &Assignment{Algorithm: p.Algorithm()}
	if n == 0 {
		return a
	}

	labels := make([]int, n)

	if p.Eps <= 0 || p.MinPts <= 0 {
		for i := range labels {
			labels[i] = Noise
		}
		a.Labels = labels
		a.NoiseCount = n
		return a
	}

	for i := range labels {
		labels[i] = unclassified
	}

	eps2 := p.Eps * p.Eps

	neighborhood := func(row int) []int {
		var result []int
		q := m.Vectors[row]
		for i, v := range m.Vectors {
			if distance.SquaredL2(q, v) <= eps2 {
				result = append(result, i)
			}
		}
		return result
	}

	clusterID := 0
	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}

		neighbors := neighborhood(i)
		if len(neighbors) < p.MinPts {
			labels[i] = Noise
			continue
		}

		labels[i] = clusterID

		seeds := make([]int, 0, len(neighbors))
		for _, j := range neighbors {
			if j != i {
				seeds = append(seeds, j)
			}
		}

		for len(seeds) > 0 {
			q := seeds[len(seeds)-1]
			seeds = seeds[:len(seeds)-1]

			if labels[q] == Noise {
				labels[q] = clusterID // border point, previously noise
			}
			if labels[q] != unclassified {
				continue
			}
			labels[q] = clusterID

			qNeighbors := neighborhood(q)
			if len(qNeighbors) >= p.MinPts {
				seeds = append(seeds, qNeighbors...)
			}
		}

		clusterID++
	}

	members := make([][]int, clusterID)
	for row, label := range labels {
		if label == Noise {
			a.NoiseCount++
			continue
		}
		members[label] = append(members[label], row)
	}

	centroids := make([][]float32, clusterID)
	for c, rows := range members {
		centroids[c] = meanOf(m, rows)
	}

	a.Labels = labels
	a.Centroids = centroids

	return a
}
