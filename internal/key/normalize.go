package key

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// asciiFlat rewrites ASCII flat spellings like "Db" or "Ebm" to the
// unicode form tag readers and Mixxx use.
var asciiFlat = regexp.MustCompile(`([A-G])b`)

// fold canonicalizes the byte-level representation of a key string:
// NFC unicode form, surrounding whitespace stripped, ASCII accidentals
// rewritten to ♯/♭.
func fold(k string) string {
	k = strings.TrimSpace(norm.NFC.String(k))
	k = strings.ReplaceAll(k, "#", "♯")
	return asciiFlat.ReplaceAllString(k, "$1♭")
}

// Normalize maps any recognized key spelling to its traditional canonical
// form. Camelot codes ("8B"), combined forms ("2B (F♯/G♭)") and dual
// enharmonic spellings ("F♯/G♭") all resolve to one traditional key.
// Already-canonical input comes back unchanged, as does any unrecognized
// string; the empty string normalizes to "".
func Normalize(k string) string {
	k = fold(k)
	if k == "" {
		return ""
	}

	switch k {
	case "D♯m/E♭m":
		return "D♯m"
	case "F♯/G♭":
		return "F♯"
	}

	if trad, ok := camelotToTraditional[k]; ok {
		return trad
	}
	return k
}

// CompatibleKeys expands a key into every spelling of every harmonically
// compatible key: the 6-member circle-of-fifths class in traditional
// notation, each member's Camelot code, the combined "code (name)" form,
// and the alternate enharmonic spellings for F♯/G♭ and D♯m/E♭m. The result
// is sorted for determinism; an unrecognized key expands to just itself so
// downstream queries degrade to exact matching instead of failing.
func CompatibleKeys(k string) []string {
	canonical := Normalize(k)
	if canonical == "" {
		return nil
	}

	class, ok := compatibility[canonical]
	if !ok {
		class = []string{canonical}
	}

	all := make(map[string]struct{}, len(class)*4)
	for _, trad := range class {
		all[trad] = struct{}{}
		if code, ok := camelot[trad]; ok {
			all[code] = struct{}{}
			all[code+" ("+trad+")"] = struct{}{}
		}
	}

	if _, ok := all["D♯m"]; ok {
		all["D♯m/E♭m"] = struct{}{}
		all["E♭m"] = struct{}{}
	}
	if _, ok := all["F♯"]; ok {
		all["F♯/G♭"] = struct{}{}
		all["G♭"] = struct{}{}
	}

	keys := make([]string, 0, len(all))
	for s := range all {
		keys = append(keys, s)
	}
	sort.Strings(keys)
	return keys
}

// Spellings returns every recognized spelling of the single key k:
// traditional, Camelot, combined and enharmonic-alternate forms. This is
// the subset of CompatibleKeys(k) that normalizes back to k itself.
func Spellings(k string) []string {
	canonical := Normalize(k)
	if canonical == "" {
		return nil
	}
	var out []string
	for _, s := range CompatibleKeys(canonical) {
		if Normalize(s) == canonical {
			out = append(out, s)
		}
	}
	return out
}

// Compatible reports whether two keys, in any notation, are harmonically
// mixable under the circle-of-fifths rule.
func Compatible(a, b string) bool {
	nb := Normalize(b)
	for _, s := range CompatibleKeys(a) {
		if Normalize(s) == nb {
			return true
		}
	}
	return false
}

// TierFor labels how a track key relates to a query key: TierPerfect for
// the same tonal identity, TierGood for a compatible one, TierOK otherwise.
func TierFor(queryKey, trackKey string) Tier {
	q := Normalize(queryKey)
	t := Normalize(trackKey)
	switch {
	case t == q:
		return TierPerfect
	case Compatible(q, t):
		return TierGood
	default:
		return TierOK
	}
}
