package keyfinder

import "fmt"

// Key identifies the musical key the detection engine settled on, or
// Silence when the audio carried no tonal content. Codes follow the
// engine's fixed A-rooted layout: keys ascend by semitone from A, each
// major immediately followed by its parallel minor, with the silence
// sentinel closing the range at 24.
type Key int

const (
	AMajor Key = iota
	AMinor
	BFlatMajor
	BFlatMinor
	BMajor
	BMinor
	CMajor
	CMinor
	DFlatMajor
	DFlatMinor
	DMajor
	DMinor
	EFlatMajor
	EFlatMinor
	EMajor
	EMinor
	FMajor
	FMinor
	GFlatMajor
	GFlatMinor
	GMajor
	GMinor
	AFlatMajor
	AFlatMinor
	Silence
)

// NumKeys is the size of the key code domain, Silence included.
const NumKeys = 25

// KeyFromCode maps a detection engine key code onto its Key. Codes
// outside 0-24 fail with UnknownKeyCodeError; no code is ever silently
// coerced to a default.
func KeyFromCode(code int) (Key, error) {
	if code < 0 || code >= NumKeys {
		return 0, &UnknownKeyCodeError{Code: code}
	}
	return Key(code), nil
}

// Code returns the engine's integer code for k.
func (k Key) Code() int {
	return int(k)
}

// IsSilence reports whether k is the silence sentinel rather than a key.
func (k Key) IsSilence() bool {
	return k == Silence
}

// IsMajor reports whether k is one of the twelve major keys.
func (k Key) IsMajor() bool {
	return k >= AMajor && k < Silence && k%2 == 0
}

// IsMinor reports whether k is one of the twelve minor keys.
func (k Key) IsMinor() bool {
	return k >= AMajor && k < Silence && k%2 == 1
}

var keyNames = [NumKeys]string{
	"A major", "A minor",
	"Bb major", "Bb minor",
	"B major", "B minor",
	"C major", "C minor",
	"Db major", "Db minor",
	"D major", "D minor",
	"Eb major", "Eb minor",
	"E major", "E minor",
	"F major", "F minor",
	"Gb major", "Gb minor",
	"G major", "G minor",
	"Ab major", "Ab minor",
	"silence",
}

// String returns the conventional display name, such as "Eb minor".
// The silence sentinel renders as "silence".
func (k Key) String() string {
	if k < 0 || k >= NumKeys {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Notation selects how Display writes a key: compact conventional names
// as used in tags, the Camelot wheel, or Open Key.
type Notation int

const (
	NotationStandard Notation = iota
	NotationCamelot
	NotationOpenKey
)

// ParseNotation maps a notation name from the command line onto its
// Notation. Recognised names are "standard", "camelot" and "openkey".
func ParseNotation(name string) (Notation, error) {
	switch name {
	case "standard":
		return NotationStandard, nil
	case "camelot":
		return NotationCamelot, nil
	case "openkey":
		return NotationOpenKey, nil
	}
	return 0, fmt.Errorf("unknown notation %q (expected standard, camelot or openkey)", name)
}

// Compact tag spellings. The DJ notations pair each major key with its
// relative minor on a shared wheel position, so the tables look
// shuffled relative to the semitone-ordered code layout.
var (
	standardTags = [NumKeys]string{
		"A", "Am",
		"Bb", "Bbm",
		"B", "Bm",
		"C", "Cm",
		"Db", "Dbm",
		"D", "Dm",
		"Eb", "Ebm",
		"E", "Em",
		"F", "Fm",
		"Gb", "Gbm",
		"G", "Gm",
		"Ab", "Abm",
		"-",
	}
	camelotTags = [NumKeys]string{
		"11B", "8A",
		"6B", "3A",
		"1B", "10A",
		"8B", "5A",
		"3B", "12A",
		"10B", "7A",
		"5B", "2A",
		"12B", "9A",
		"7B", "4A",
		"2B", "11A",
		"9B", "6A",
		"4B", "1A",
		"-",
	}
	openKeyTags = [NumKeys]string{
		"4d", "1m",
		"11d", "8m",
		"6d", "3m",
		"1d", "10m",
		"8d", "5m",
		"3d", "12m",
		"10d", "7m",
		"5d", "2m",
		"12d", "9m",
		"7d", "4m",
		"2d", "11m",
		"9d", "6m",
		"-",
	}
)

// Display formats k in the requested notation, the way DJ software tags
// tracks. Silence is "-" in every notation; a track with no tonal
// content has no tag.
func (k Key) Display(n Notation) string {
	if k < 0 || k >= NumKeys {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	switch n {
	case NotationCamelot:
		return camelotTags[k]
	case NotationOpenKey:
		return openKeyTags[k]
	default:
		return standardTags[k]
	}
}
