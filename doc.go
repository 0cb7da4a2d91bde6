// Package recdata is an in-memory data layer for recommender-system
// research: entities (users, items), their interactions (ratings, events),
// and arbitrary per-entity attributes (titles, genre lists, learned
// embeddings, sparse tag vectors), served to downstream algorithms in
// whatever numeric representation each consumer needs.
//
// 🚀 What is recdata?
//
//	A library that brings together:
//		• Vocabularies: stable bijections between domain identifiers and
//		  dense 0-based positions used by every numeric algorithm
//		• A builder/immutable-dataset pair that accumulates, validates and
//		  freezes attributes under four storage layouts
//		  (scalar, list, vector, sparse)
//		• Lossless multi-format exports: Arrow columnar arrays, gonum dense
//		  matrices, identifier-indexed tables, CSR sparse matrices, tensors
//		• A MovieLens-format importer for the standard research data sets
//
// ✨ Why choose recdata?
//
//   - Deterministic – identical inputs always freeze into identical datasets
//   - Fail-fast – every schema violation is reported by the call that
//     introduced it, never deferred to Build()
//   - Read-safe – a built Dataset is immutable and needs no locks
//
// Everything is organized under a handful of subpackages:
//
//	vocab/     — identifier ↔ position vocabularies
//	schema/    — attribute layouts, value types, per-entity schemas
//	dataset/   — builder, frozen dataset, accessors & format exports
//	movielens/ — MovieLens data set importer (100K through modern)
//	logging/   — structured logging and validation warnings
//
// Quick sketch of the data flow:
//
//	raw records ──▶ dataset.Builder ──▶ dataset.Dataset ──▶ exports
//	 (IDs, payloads)  (validate, align)   (immutable)        (Arrow / dense /
//	                                                          table / CSR / tensor)
//
// Dive into the package docs for full examples.
package recdata
