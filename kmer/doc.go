// Package kmer implements the C8 k-path / k-mer enumerator: walks of
// spelled length at least k centred on a node, and the per-position kmer
// records (previous/next character sets, next positions) those walks yield,
// deduplicated by an LRU cache (spec.md §4.6).
package kmer
