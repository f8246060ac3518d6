// Package insight summarizes cluster assignments into per-cluster tables:
// member counts, averaged numeric metadata, ranked categorical values and
// a small sample of member identifiers.
package insight

import (
	"sort"

	"github.com/hupe1980/vecscope/cluster"
	"github.com/hupe1980/vecscope/metadata"
	"github.com/hupe1980/vecscope/model"
)

// DefaultTopValues is the ranked categorical values kept per field.
const DefaultTopValues = 3

// DefaultSampleSize is the member identifiers sampled per cluster.
const DefaultSampleSize = 5

// ValueCount is one ranked categorical value with its frequency.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// ClusterInsight summarizes one cluster. Cluster is -1 for the noise
// group when any record is unassigned.
type ClusterInsight struct {
	Cluster      int                     `json:"cluster"`
	Count        int                     `json:"count"`
	NumericMeans map[string]float64      `json:"numericMeans,omitempty"`
	TopValues    map[string][]ValueCount `json:"topValues,omitempty"`
	SampleIDs    []string                `json:"sampleIds,omitempty"`
}

// Options tunes aggregation. The zero value applies the defaults.
type Options struct {
	// TopN caps the ranked values per categorical field.
	TopN int
	// SampleSize caps the member identifiers kept per cluster.
	SampleSize int
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopValues
	}
	if o.SampleSize <= 0 {
		o.SampleSize = DefaultSampleSize
	}
	return o
}

// Aggregate produces one insight per distinct cluster label present in
// records, sorted by member count descending. Empty input yields an empty
// slice.
func Aggregate(records []model.EnrichedRecord, opts Options) []ClusterInsight {
	return aggregate(records, nil, opts)
}

// AggregateRows behaves like Aggregate over the subset of records whose
// slice position is contained in rows. It pairs with metadata.Index row
// sets for categorical filtering.
func AggregateRows(records []model.EnrichedRecord, rows *metadata.RowSet, opts Options) []ClusterInsight {
	return aggregate(records, rows, opts)
}

// BuildIndex indexes the metadata of the enriched records, with the slice
// position as row number, for use with AggregateRows.
func BuildIndex(records []model.EnrichedRecord) *metadata.Index {
	rows := make([]metadata.Metadata, len(records))
	for i, rec := range records {
		rows[i] = rec.Metadata
	}
	return metadata.BuildIndex(rows)
}

type accumulator struct {
	cluster int
	count   int

	numericSums   map[string]float64
	numericCounts map[string]int

	valueCounts map[string]map[string]*valueFreq
	valueOrder  map[string][]string

	samples []string
}

type valueFreq struct {
	display string
	count   int
	seen    int // first-seen rank, breaks frequency ties
}

func aggregate(records []model.EnrichedRecord, rows *metadata.RowSet, opts Options) []ClusterInsight {
	opts = opts.withDefaults()

	byLabel := make(map[int]*accumulator)
	var order []int

	for i, rec := range records {
		if rows != nil && !rows.Contains(i) {
			continue
		}

		acc, ok := byLabel[rec.Cluster]
		if !ok {
			acc = &accumulator{
				cluster:       rec.Cluster,
				numericSums:   make(map[string]float64),
				numericCounts: make(map[string]int),
				valueCounts:   make(map[string]map[string]*valueFreq),
				valueOrder:    make(map[string][]string),
			}
			byLabel[rec.Cluster] = acc
			order = append(order, rec.Cluster)
		}

		acc.count++
		if len(acc.samples) < opts.SampleSize {
			acc.samples = append(acc.samples, rec.ID)
		}

		for field, v := range rec.Metadata {
			if num, ok := v.Numeric(); ok {
				acc.numericSums[field] += num
				acc.numericCounts[field]++
				continue
			}
			if v.Kind == metadata.KindInvalid {
				continue
			}

			freqs, ok := acc.valueCounts[field]
			if !ok {
				freqs = make(map[string]*valueFreq)
				acc.valueCounts[field] = freqs
			}
			key := v.Key()
			f, ok := freqs[key]
			if !ok {
				f = &valueFreq{display: v.Display(), seen: len(acc.valueOrder[field])}
				freqs[key] = f
				acc.valueOrder[field] = append(acc.valueOrder[field], key)
			}
			f.count++
		}
	}

	insights := make([]ClusterInsight, 0, len(order))
	for _, label := range order {
		insights = append(insights, byLabel[label].finish(opts))
	}

	// Dominant clusters first.
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Count > insights[j].Count
	})

	return insights
}

func (acc *accumulator) finish(opts Options) ClusterInsight {
	ci := ClusterInsight{
		Cluster:   acc.cluster,
		Count:     acc.count,
		SampleIDs: acc.samples,
	}

	if len(acc.numericSums) > 0 {
		ci.NumericMeans = make(map[string]float64, len(acc.numericSums))
		for field, sum := range acc.numericSums {
			ci.NumericMeans[field] = sum / float64(acc.numericCounts[field])
		}
	}

	if len(acc.valueCounts) > 0 {
		ci.TopValues = make(map[string][]ValueCount, len(acc.valueCounts))
		for field, freqs := range acc.valueCounts {
			ranked := make([]*valueFreq, 0, len(freqs))
			for _, f := range freqs {
				ranked = append(ranked, f)
			}
			sort.Slice(ranked, func(i, j int) bool {
				if ranked[i].count != ranked[j].count {
					return ranked[i].count > ranked[j].count
				}
				return ranked[i].seen < ranked[j].seen
			})
			if len(ranked) > opts.TopN {
				ranked = ranked[:opts.TopN]
			}
			top := make([]ValueCount, len(ranked))
			for i, f := range ranked {
				top[i] = ValueCount{Value: f.display, Count: f.count}
			}
			ci.TopValues[field] = top
		}
	}

	return ci
}

// NoiseInsight returns the insight for the noise group, or nil when every
// record is assigned.
func NoiseInsight(insights []ClusterInsight) *ClusterInsight {
	for i := range insights {
		if insights[i].Cluster == cluster.Noise {
			return &insights[i]
		}
	}
	return nil
}
