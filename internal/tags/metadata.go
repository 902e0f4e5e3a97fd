// Package tags reads and writes ID3 metadata on MP3 files.
package tags

// TrackMetadata holds the tag fields the cataloger works with. Zero values
// mean the field is absent; resolution only ever fills absent fields, so a
// resolved TrackMetadata is a superset of what was read.
type TrackMetadata struct {
	Title  string
	Artist string
	Album  string
	// Genre is the raw tag value, not a taxonomy entry.
	Genre string
	Year  int
	BPM   int
}

// IsZero reports whether no field carries a value.
func (m TrackMetadata) IsZero() bool {
	return m == TrackMetadata{}
}

// Changed reports whether writing resolved over current would alter the file.
func Changed(current, resolved TrackMetadata) bool {
	return current != resolved
}
