// SPDX-License-Identifier: MIT

// Package movielens loads the public MovieLens rating collections into
// entity-attribute datasets.
//
// 🚀 What is movielens?
//
// The MovieLens collections ship in three on-disk dialects, and this
// package reads all of them from either an unpacked directory or the
// original zip archive:
//
//   - Format100K — ml-100k: tab-separated u.data, pipe-separated u.item
//     with nineteen 0/1 genre flags.
//   - FormatDat  — ml-1m and ml-10m: "::"-delimited ratings.dat and
//     movies.dat with pipe-separated genre lists.
//   - FormatCSV  — ml-latest and ml-25m style: headered ratings.csv and
//     movies.csv.
//
// Open sniffs the dialect from the files it finds, so callers never name
// it themselves:
//
//	src, err := movielens.Open("ml-100k.zip")
//	if err != nil { ... }
//	defer src.Close()
//	ds, err := src.Dataset()
//
// The resulting dataset carries "user" and "item" entity classes, item
// attributes title (scalar text), year (scalar int, when the title names
// one) and genres (list of text), and the full rating log as interactions.
package movielens
