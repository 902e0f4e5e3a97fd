package tags

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"

	"cratesort/internal/textutil"
)

// WriteOutcome classifies the result of WriteIfChanged.
type WriteOutcome string

const (
	WriteUnchanged WriteOutcome = "unchanged"
	WriteWritten   WriteOutcome = "written"
	WriteFailed    WriteOutcome = "failed"
)

var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// ReadFile parses the ID3 tag of the file at path. Files without a tag yield
// an empty TrackMetadata and no error; whatever frames parse are returned.
func ReadFile(path string) (TrackMetadata, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return TrackMetadata{}, fmt.Errorf("open tags: %w", err)
	}
	defer tag.Close()

	meta := TrackMetadata{
		Title:  textutil.CleanTag(tag.Title()),
		Artist: textutil.CleanTag(tag.Artist()),
		Album:  textutil.CleanTag(tag.Album()),
		Genre:  textutil.CleanTag(tag.Genre()),
		Year:   parseYear(tag.Year()),
		BPM:    parseBPM(tag.GetTextFrame("TBPM").Text),
	}
	if meta.Year == 0 {
		// v2.3 and v2.4 store the date in different frames.
		for _, id := range []string{"TDRC", "TDOR", "TYER"} {
			if meta.Year = parseYear(tag.GetTextFrame(id).Text); meta.Year != 0 {
				break
			}
		}
	}
	return meta, nil
}

// WriteIfChanged writes the resolved metadata to the file at path when it
// differs from what was read. Only differing fields are set; existing frames
// are preserved. Saves as ID3v2.4 with UTF-8 encoding.
func WriteIfChanged(path string, current, resolved TrackMetadata) (WriteOutcome, error) {
	if !Changed(current, resolved) {
		return WriteUnchanged, nil
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return WriteFailed, fmt.Errorf("open tags: %w", err)
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetVersion(4)

	if resolved.Title != "" && resolved.Title != current.Title {
		tag.SetTitle(resolved.Title)
	}
	if resolved.Artist != "" && resolved.Artist != current.Artist {
		tag.SetArtist(resolved.Artist)
	}
	if resolved.Album != "" && resolved.Album != current.Album {
		tag.SetAlbum(resolved.Album)
	}
	if resolved.Genre != "" && resolved.Genre != current.Genre {
		tag.SetGenre(resolved.Genre)
	}
	if resolved.Year > 0 && resolved.Year != current.Year {
		tag.SetYear(strconv.Itoa(resolved.Year))
	}
	if resolved.BPM > 0 && resolved.BPM != current.BPM {
		tag.AddTextFrame("TBPM", id3v2.EncodingUTF8, strconv.Itoa(resolved.BPM))
	}

	if err := tag.Save(); err != nil {
		return WriteFailed, fmt.Errorf("save tags: %w", err)
	}
	return WriteWritten, nil
}

// parseYear finds the first plausible 4-digit year in a date string such as
// "2003", "2003-04-01", or "01/02/2003".
func parseYear(text string) int {
	match := yearPattern.FindString(text)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}

// parseBPM accepts integer or decimal frame text and rounds to a whole value.
func parseBPM(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value <= 0 {
		return 0
	}
	return int(math.Round(value))
}
