// Package vecscope analyzes batches of high-dimensional embedding vectors
// for visualization: it reduces them to two dimensions with a
// power-iteration PCA, groups them with one of three classical clustering
// strategies, and summarizes each cluster from record metadata.
//
// The engine is a pure computation library. It operates on one static
// in-memory batch per invocation, never mutates its inputs, and resolves
// every malformed or degenerate case to a defined empty or reduced result
// instead of an error.
//
// # Quick start
//
//	engine := vecscope.New(vecscope.WithSeed(42))
//
//	result, err := engine.Analyze(ctx, records, cluster.KMeansParams{K: 4})
//	if err != nil { // only a cancelled context gets here
//	    return err
//	}
//
//	for _, rec := range result.Records {
//	    plot(rec.Point.X, rec.Point.Y, rec.Cluster)
//	}
//	for _, ci := range result.Insights {
//	    table(ci.Cluster, ci.Count, ci.TopValues)
//	}
//
// The three strategies are selected through the closed cluster.Params sum
// type: cluster.KMeansParams, cluster.AgglomerativeParams and
// cluster.DBSCANParams. All of them operate on the original
// high-dimensional vectors; the 2D projection is for plotting only.
//
// Individual pipeline stages are available as standalone packages
// (normalize, projection, cluster, insight, export) for callers that do
// not want the full pipeline.
package vecscope
