package chatbot

import (
	"regexp"
	"strconv"
)

// spelledOrdinals maps folded Spanish ordinal and cardinal words to their
// 1-based position. Articles such as "una" and "uno" are left out on purpose
// since they rarely mean a position in a question.
var spelledOrdinals = map[string]int{
	"primera": 1, "primero": 1, "primer": 1,
	"segunda": 2, "segundo": 2, "dos": 2,
	"tercera": 3, "tercero": 3, "tercer": 3, "tres": 3,
	"cuarta": 4, "cuarto": 4, "cuatro": 4,
	"quinta": 5, "quinto": 5, "cinco": 5,
	"sexta": 6, "sexto": 6, "seis": 6,
	"septima": 7, "septimo": 7, "setima": 7, "setimo": 7, "siete": 7,
	"octava": 8, "octavo": 8, "ocho": 8,
	"novena": 9, "noveno": 9, "nueve": 9,
	"decima": 10, "decimo": 10, "diez": 10,
	"undecima": 11, "undecimo": 11, "onceava": 11, "onceavo": 11, "decimoprimera": 11, "decimoprimero": 11, "once": 11,
	"duodecima": 12, "duodecimo": 12, "doceava": 12, "doceavo": 12, "decimosegunda": 12, "decimosegundo": 12, "doce": 12,
	"decimotercera": 13, "decimotercero": 13, "trece": 13,
	"decimocuarta": 14, "decimocuarto": 14, "catorce": 14,
	"decimoquinta": 15, "decimoquinto": 15, "quince": 15,
}

// Digits with an optional abbreviated suffix: 3, 3ra, 3er, 3a, 3º, 3ª.
var numericOrdinal = regexp.MustCompile(`^(\d{1,3})(ra|ro|era|er|da|do|ta|to|ma|mo|va|vo|na|no|a|o|º|ª)?$`)

// ordinalValue reports the position a single folded token denotes.
func ordinalValue(tok string) (int, bool) {
	if n, ok := spelledOrdinals[tok]; ok {
		return n, true
	}
	m := numericOrdinal.FindStringSubmatch(tok)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// firstOrdinal scans tokens in order and returns the first one that denotes a
// position in [1, limit].
func firstOrdinal(tokens []string, limit int) (int, bool) {
	for _, tok := range tokens {
		if n, ok := ordinalValue(tok); ok && n <= limit {
			return n, true
		}
	}
	return 0, false
}

var ordinalWords = []string{
	"primera", "segunda", "tercera", "cuarta", "quinta", "sexta", "séptima",
	"octava", "novena", "décima", "undécima", "duodécima", "decimotercera",
	"decimocuarta", "decimoquinta",
}

// OrdinalWord returns the feminine Spanish ordinal for n ("estación" and
// "variable" are both feminine), or the plain number past the spelled range.
func OrdinalWord(n int) string {
	if n >= 1 && n <= len(ordinalWords) {
		return ordinalWords[n-1]
	}
	return strconv.Itoa(n)
}
