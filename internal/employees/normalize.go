package employees

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// letters that carry no combining mark and so survive decomposition
var fold = strings.NewReplacer(
	"Ø", "O", "ø", "o",
	"Æ", "AE", "æ", "ae",
	"Œ", "OE", "œ", "oe",
	"Ð", "D", "ð", "d",
	"Đ", "D", "đ", "d",
	"Ł", "L", "ł", "l",
	"Þ", "TH", "þ", "th",
)

var documentSeparators = strings.NewReplacer(".", "", "-", "")

// Normalize converts a raw registration into a registry record. Timestamps are
// left zero; the registry sets them at write time.
func Normalize(raw RawRegistration) Employee {
	state, _ := NormalizeRegion(string(raw.RawState))

	return Employee{
		Codename:         NormalizeIdentity(string(raw.RawCodename)),
		FullName:         NormalizeTitle(string(raw.RawFullName)),
		Canac:            optional(string(raw.Canac)),
		Address:          string(raw.Address),
		Neighborhood:     NormalizeTitle(string(raw.RawNeighborhood)),
		City:             NormalizeTitle(string(raw.RawCity)),
		State:            optional(state),
		CPF:              NormalizeDocumentNumber(string(raw.RawCPF)),
		RG:               NormalizeDocumentNumber(string(raw.RawRG)),
		BirthDate:        string(raw.BirthDate),
		HiringDate:       string(raw.HiringDate),
		EmergencyContact: string(raw.EmergencyContact),
		BloodType:        NormalizeBloodType(string(raw.RawBloodType)),
		Cellphone:        NormalizePhone(string(raw.RawCellphone)),
		Email:            string(raw.Email),
		CEP:              NormalizeDocumentNumber(string(raw.RawCEP)),
	}
}

// NormalizeIdentity uppercases raw with full case mapping and strips
// diacritics. Applying it twice yields the same result as applying it once.
func NormalizeIdentity(raw string) string {
	upper := cases.Upper(language.Und).String(raw)
	return stripDiacritics(upper)
}

// NormalizeTitle collapses whitespace runs and title-cases each word.
func NormalizeTitle(raw string) string {
	collapsed := strings.Join(strings.Fields(raw), " ")
	return cases.Title(language.Und).String(collapsed)
}

// NormalizeRegion abbreviates a region name. Inputs of at most two runes are
// already abbreviations and are uppercased. Longer inputs are split on single
// spaces and reduced to the uppercased first letter of each token, so a single
// long word collapses to one letter. Blank input reports false.
func NormalizeRegion(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	upper := cases.Upper(language.Und)
	if utf8.RuneCountInString(raw) <= 2 {
		return upper.String(raw), true
	}

	var initials strings.Builder
	for token := range strings.SplitSeq(raw, " ") {
		if r, _ := utf8.DecodeRuneInString(token); r != utf8.RuneError {
			initials.WriteRune(r)
		}
	}

	return upper.String(initials.String()), true
}

// NormalizeDocumentNumber removes every '.' and '-' and uppercases the rest.
func NormalizeDocumentNumber(raw string) string {
	return cases.Upper(language.Und).String(documentSeparators.Replace(raw))
}

// NormalizePhone removes the first space, the first '-', the first '(' and
// the first ')', in that order. Later occurrences are kept.
func NormalizePhone(raw string) string {
	phone := raw
	for _, sep := range []string{" ", "-", "(", ")"} {
		phone = strings.Replace(phone, sep, "", 1)
	}
	return phone
}

// NormalizeBloodType uppercases raw.
func NormalizeBloodType(raw string) string {
	return cases.Upper(language.Und).String(raw)
}

func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return fold.Replace(out)
}
