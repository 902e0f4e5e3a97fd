// Package genre maps raw genre strings onto the fixed folder taxonomy.
//
// All genre-related normalization (case folding, synonym variants, substring
// and per-word fallbacks) is consolidated here so the resolver, relocator,
// and report all agree on the same canonical names.
package genre
