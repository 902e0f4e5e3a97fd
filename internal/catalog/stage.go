package catalog

// Stage names the steps a file passes through during a run. Transitions
// only move forward; a failed stage short-circuits what remains but the
// file is always reported.
type Stage string

const (
	StageScanned          Stage = "scanned"
	StageTagsRead         Stage = "tags_read"
	StageMetadataResolved Stage = "metadata_resolved"
	StageGenreNormalized  Stage = "genre_normalized"
	StageTagsWritten      Stage = "tags_written"
	StageRelocated        Stage = "relocated"
	StageReported         Stage = "reported"
)
