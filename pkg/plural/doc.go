// Package plural maps language codes to CLDR plural categories.
//
// Catalog plural variations are keyed by CLDR category names (zero, one, two,
// few, many, other). This package answers two questions about a language:
// which category a count falls into, and which categories a complete plural
// variation is expected to provide.
//
//	rule := plural.RuleFor("uk")
//	rule(3)                  // "few"
//	plural.Forms("fr-CA")    // [one many other]
//
// Language codes are parsed with golang.org/x/text/language, so regional and
// script subtags ("pt-BR", "zh-Hans") resolve to the rule of their base
// language. Unknown or malformed codes fall back to the English rule.
package plural
