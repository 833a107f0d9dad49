package plural

import (
	"slices"

	"golang.org/x/text/language"
)

// CLDR plural category names.
const (
	Zero  = "zero"
	One   = "one"
	Two   = "two"
	Few   = "few"
	Many  = "many"
	Other = "other"
)

// Categories lists every CLDR category in canonical order.
var Categories = []string{Zero, One, Two, Few, Many, Other}

// Rule reports the plural category for a count.
type Rule func(n int) string

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// OneOther covers English, German, Dutch, the Scandinavian languages and others
// that only distinguish the singular.
var OneOther Rule = func(n int) string {
	if abs(n) == 1 {
		return One
	}
	return Other
}

// EastSlavic covers Russian, Ukrainian and Belarusian.
var EastSlavic Rule = func(n int) string {
	n = abs(n)
	mod10, mod100 := n%10, n%100
	switch {
	case mod10 == 1 && mod100 != 11:
		return One
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return Few
	default:
		return Many
	}
}

// Polish differs from EastSlavic only in treating 21, 31... as many.
var Polish Rule = func(n int) string {
	n = abs(n)
	mod10, mod100 := n%10, n%100
	switch {
	case n == 1:
		return One
	case mod10 >= 2 && mod10 <= 4 && (mod100 < 12 || mod100 > 14):
		return Few
	default:
		return Many
	}
}

// WestSlavic covers Czech and Slovak. Integers never reach "many", which CLDR
// reserves for fractions, but Xcode still asks for it.
var WestSlavic Rule = func(n int) string {
	switch abs(n) {
	case 1:
		return One
	case 2, 3, 4:
		return Few
	default:
		return Other
	}
}

// Romance covers French, Italian and Portuguese.
var Romance Rule = func(n int) string {
	n = abs(n)
	switch {
	case n == 0 || n == 1:
		return One
	case n != 0 && n%1000000 == 0:
		return Many
	default:
		return Other
	}
}

// Spanish treats zero as plural, unlike French.
var Spanish Rule = func(n int) string {
	n = abs(n)
	switch {
	case n == 1:
		return One
	case n != 0 && n%1000000 == 0:
		return Many
	default:
		return Other
	}
}

// NoPlural covers languages without grammatical number.
var NoPlural Rule = func(int) string {
	return Other
}

// Arabic uses all six categories.
var Arabic Rule = func(n int) string {
	n = abs(n)
	mod100 := n % 100
	switch {
	case n == 0:
		return Zero
	case n == 1:
		return One
	case n == 2:
		return Two
	case mod100 >= 3 && mod100 <= 10:
		return Few
	case mod100 >= 11:
		return Many
	default:
		return Other
	}
}

var rules = map[string]Rule{
	"en": OneOther, "de": OneOther, "nl": OneOther, "sv": OneOther, "nb": OneOther,
	"no": OneOther, "da": OneOther, "fi": OneOther, "et": OneOther, "el": OneOther,
	"hu": OneOther, "tr": OneOther, "bg": OneOther, "ca": OneOther, "hi": OneOther,
	"ru": EastSlavic, "uk": EastSlavic, "be": EastSlavic,
	"pl": Polish,
	"cs": WestSlavic, "sk": WestSlavic,
	"fr": Romance, "it": Romance, "pt": Romance,
	"es": Spanish,
	"ja": NoPlural, "zh": NoPlural, "ko": NoPlural, "th": NoPlural, "vi": NoPlural,
	"id": NoPlural, "ms": NoPlural, "yue": NoPlural,
	"ar": Arabic,
}

// RuleFor returns the rule for a BCP 47 language code.
func RuleFor(lang string) Rule {
	if rule, ok := rules[baseOf(lang)]; ok {
		return rule
	}
	return OneOther
}

var samples = []int{0, 1, 2, 3, 4, 5, 10, 11, 12, 14, 21, 22, 25, 100, 101, 102, 111, 1000000}

// Forms lists the categories a complete plural variation needs for lang,
// in canonical order.
func Forms(lang string) []string {
	rule := RuleFor(lang)
	seen := make(map[string]bool, len(Categories))
	for _, n := range samples {
		seen[rule(n)] = true
	}
	// Xcode offers "many" for Czech and Slovak even though integers never use it.
	if base := baseOf(lang); base == "cs" || base == "sk" {
		seen[Many] = true
	}

	forms := make([]string, 0, len(seen))
	for _, c := range Categories {
		if seen[c] {
			forms = append(forms, c)
		}
	}
	return forms
}

// Valid reports whether c is a CLDR category name.
func Valid(c string) bool {
	return slices.Contains(Categories, c)
}

func baseOf(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}
