package vecscope_test

import (
	"context"
	"fmt"

	"github.com/hupe1980/vecscope"
	"github.com/hupe1980/vecscope/cluster"
	"github.com/hupe1980/vecscope/metadata"
	"github.com/hupe1980/vecscope/model"
)

func Example() {
	engine := vecscope.New(vecscope.WithSeed(42))

	records := []model.Record{
		{ID: "doc-1", Embedding: []float64{0.1, 0.0, 0.1}, Metadata: metadata.Metadata{"lang": metadata.String("go")}},
		{ID: "doc-2", Embedding: []float64{0.0, 0.1, 0.0}, Metadata: metadata.Metadata{"lang": metadata.String("go")}},
		{ID: "doc-3", Embedding: []float64{9.9, 9.8, 10.0}, Metadata: metadata.Metadata{"lang": metadata.String("rust")}},
		{ID: "doc-4", Embedding: []float64{10.0, 10.1, 9.9}, Metadata: metadata.Metadata{"lang": metadata.String("rust")}},
	}

	result, err := engine.Analyze(context.Background(), records, cluster.KMeansParams{K: 2})
	if err != nil {
		panic(err)
	}

	fmt.Println("clusters:", result.Assignment.ClusterCount())
	for _, ci := range result.Insights {
		fmt.Printf("%d members, top lang %s\n", ci.Count, ci.TopValues["lang"][0].Value)
	}
	// Output:
	// clusters: 2
	// 2 members, top lang go
	// 2 members, top lang rust
}
