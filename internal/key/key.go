// Package key implements musical key notation handling for harmonic mixing:
// normalization between traditional, Camelot-wheel and enharmonic spellings,
// and circle-of-fifths compatibility classes.
package key

// Tier labels how closely a track's key matches a query key.
type Tier string

const (
	TierPerfect Tier = "Perfect"
	TierGood    Tier = "Good"
	TierOK      Tier = "OK"
)

// compatibility maps each traditional key to its circle-of-fifths class:
// the key itself, the keys a perfect fourth/fifth away, and the relative
// minors (or majors) of all three. Enharmonic spellings get their own rows
// so lookups never need a second hop.
var compatibility = map[string][]string{
	// Major keys
	"C":  {"C", "F", "G", "Am", "Dm", "Em"},
	"C♯": {"C♯", "F♯", "G♯", "A♯m", "D♯m", "E♯m"},
	"D♭": {"D♭", "G♭", "A♭", "B♭m", "E♭m", "Fm"},
	"D":  {"D", "G", "A", "Bm", "Em", "F♯m"},
	"E♭": {"E♭", "A♭", "B♭", "Cm", "Fm", "Gm"},
	"E":  {"E", "A", "B", "C♯m", "F♯m", "G♯m"},
	"F":  {"F", "B♭", "C", "Dm", "Gm", "Am"},
	"F♯": {"F♯", "B", "C♯", "D♯m", "G♯m", "A♯m"},
	"G♭": {"G♭", "B", "D♭", "E♭m", "A♭m", "B♭m"},
	"G":  {"G", "C", "D", "Em", "Am", "Bm"},
	"A♭": {"A♭", "D♭", "E♭", "Fm", "B♭m", "Cm"},
	"A":  {"A", "D", "E", "F♯m", "Bm", "C♯m"},
	"B♭": {"B♭", "E♭", "F", "Gm", "Cm", "Dm"},
	"B":  {"B", "E", "F♯", "G♯m", "C♯m", "D♯m"},

	// Minor keys
	"Am":  {"Am", "Dm", "Em", "C", "F", "G"},
	"A♯m": {"A♯m", "D♯m", "E♯m", "C♯", "F♯", "G♯"},
	"B♭m": {"B♭m", "E♭m", "Fm", "D♭", "G♭", "A♭"},
	"Bm":  {"Bm", "Em", "F♯m", "D", "G", "A"},
	"Cm":  {"Cm", "Fm", "Gm", "E♭", "A♭", "B♭"},
	"C♯m": {"C♯m", "F♯m", "G♯m", "E", "A", "B"},
	"Dm":  {"Dm", "Gm", "Am", "F", "B♭", "C"},
	"D♯m": {"D♯m", "G♯m", "A♯m", "F♯", "B", "C♯"},
	"E♭m": {"E♭m", "A♭m", "B♭m", "G♭", "B", "D♭"},
	"Em":  {"Em", "Am", "Bm", "G", "C", "D"},
	"Fm":  {"Fm", "B♭m", "Cm", "A♭", "D♭", "E♭"},
	"F♯m": {"F♯m", "Bm", "C♯m", "A", "D", "E"},
	"Gm":  {"Gm", "Cm", "Dm", "B♭", "E♭", "F"},
	"G♯m": {"G♯m", "C♯m", "D♯m", "B", "E", "F♯"},
}

// camelot maps traditional keys to their Camelot wheel code.
// Majors are the B side, minors the A side. The two enharmonic pairs
// (F♯/G♭ and D♯m/E♭m) share a code.
var camelot = map[string]string{
	"C": "8B", "D♭": "3B", "D": "10B", "E♭": "5B", "E": "12B", "F": "7B",
	"F♯": "2B", "G♭": "2B", "G": "9B", "A♭": "4B", "A": "11B", "B♭": "6B", "B": "1B",

	"Am": "8A", "B♭m": "3A", "Bm": "10A", "Cm": "5A", "C♯m": "12A", "Dm": "7A",
	"D♯m": "2A", "E♭m": "2A", "Em": "9A", "Fm": "4A", "F♯m": "11A", "Gm": "6A", "G♯m": "1A",
}

// camelotToTraditional maps every Camelot-form spelling back to one
// traditional key. For the shared codes 2B/2A the flat spelling wins;
// the combined forms carry both names and resolve to the sharp spelling.
var camelotToTraditional = map[string]string{
	"8B": "C", "3B": "D♭", "10B": "D", "5B": "E♭", "12B": "E", "7B": "F",
	"2B": "G♭", "9B": "G", "4B": "A♭", "11B": "A", "6B": "B♭", "1B": "B",

	"8A": "Am", "3A": "B♭m", "10A": "Bm", "5A": "Cm", "12A": "C♯m", "7A": "Dm",
	"2A": "E♭m", "9A": "Em", "4A": "Fm", "11A": "F♯m", "6A": "Gm", "1A": "G♯m",

	"8B (C)": "C", "3B (D♭)": "D♭", "10B (D)": "D", "5B (E♭)": "E♭",
	"12B (E)": "E", "7B (F)": "F", "2B (F♯/G♭)": "F♯", "9B (G)": "G",
	"4B (A♭)": "A♭", "11B (A)": "A", "6B (B♭)": "B♭", "1B (B)": "B",

	"8A (Am)": "Am", "3A (B♭m)": "B♭m", "10A (Bm)": "Bm", "5A (Cm)": "Cm",
	"12A (C♯m)": "C♯m", "7A (Dm)": "Dm", "2A (D♯m/E♭m)": "D♯m", "9A (Em)": "Em",
	"4A (Fm)": "Fm", "11A (F♯m)": "F♯m", "6A (Gm)": "Gm", "1A (G♯m)": "G♯m",
}

// Camelot returns the Camelot wheel code for a key in any recognized
// notation. ok is false for keys outside the wheel (e.g. C♯ major, which
// Mixxx stores as D♭).
func Camelot(k string) (string, bool) {
	code, ok := camelot[Normalize(k)]
	return code, ok
}

// Canonical reports whether k is one of the traditional spellings the
// compatibility tables know about.
func Canonical(k string) bool {
	_, ok := compatibility[k]
	return ok
}
