// Package okapi provides an embedded lexical information-retrieval engine
// for Go.
//
// Okapi indexes a corpus of named text documents into an inverted index and
// ranks documents against free-text queries with two classic models:
//
//   - Probabilistic: binary-independence odds-ratio weighting with optional
//     explicit relevance feedback
//   - Vector space: TF-IDF cosine similarity over a cached term-document
//     matrix
//
// Both models can be combined with implicit (pseudo-relevance) feedback,
// which expands the query with terms correlated to it inside the top-ranked
// documents of a first pass.
//
// # Quick Start
//
//	ctx := context.Background()
//	docs, _ := corpus.FromDirectory("./data/articles")
//	engine, err := okapi.New(ctx, docs,
//	    okapi.WithStopwordFilter(),
//	    okapi.WithStemming(),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	ranking, _ := engine.VectorSpaceSearch(ctx, "cricket test match")
//	for _, doc := range ranking {
//	    fmt.Println(doc.Name, doc.Score)
//	}
//
// # Relevance Feedback
//
// Explicit feedback feeds known-relevant documents into the probabilistic
// weights:
//
//	ranking, _ := engine.ProbabilisticSearch(ctx, "monsoon flooding",
//	    okapi.WithRelevant("tele-2004-nation-104"))
//
// Implicit feedback expands the query from the top of a first pass and
// re-ranks:
//
//	ranking, _ := engine.VectorSpaceSearch(ctx, "monsoon flooding",
//	    okapi.WithExpansion(5, 2))
//
// # Matrix Caching
//
// The term-document matrix is derived state, rebuildable from the index at
// any time. It can be persisted to any blobstore.Store (local disk, S3,
// MinIO) so later processes skip the rebuild:
//
//	store, _ := s3.New(ctx, "my-bucket", s3.WithPrefix("matrices/"))
//	engine, _ := okapi.New(ctx, docs,
//	    okapi.WithMatrixStore(store),
//	    okapi.WithCompression(codec.CompressionZSTD),
//	)
package okapi
