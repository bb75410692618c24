// Package semtok compresses batches of JSON records into a compact columnar
// form guided by an ontology, cutting the character and token cost of
// feeding structured data to large language models.
//
// A batch is compressed in layers:
//
// 1. Property identifier encoding: every ontology property gets a stable
// one-character base62 code, chosen deterministically from the sorted
// property list.
//
// 2. Structural flattening: records become fixed-length positional rows
// under a single sorted schema, so field names are paid for once per batch
// instead of once per record.
//
// 3. Value normalization: ISO dates and timestamps lose their separators
// ("2024-01-15" becomes "20240115").
//
// 4. Pattern and dictionary extraction: short hyphenated prefixes, email
// domains, and repeated strings are replaced by reference tokens resolved
// through per-batch tables carried in the envelope.
//
// # Quick Start
//
//	import (
//	    "github.com/dhruvd-1/semtok/pkg/codec"
//	    "github.com/dhruvd-1/semtok/pkg/ontology"
//	)
//
//	ont := ontology.Default()
//	c := codec.New(ont)
//
//	env := c.CompressBatch(records, "Customer", true)
//	restored := c.DecompressBatch(env)
//
// # Key Packages
//
//	pkg/ontology  - Ontology model, loader, and constraint validation
//	pkg/codec     - Batch codec: identifiers, inference, patterns, dictionary
//	pkg/evaluate  - Character and token reduction measurement
//	pkg/generator - Seeded synthetic record batches
//	pkg/archive   - Byte-level envelope framing (gzip, zstd, s2, lz4)
//	pkg/storage   - Postgres envelope persistence
//
// The semtok CLI under cmd/semtok wraps all of the above, and
// internal/server exposes them over HTTP.
package semtok
