// Package catalog models an Xcode string catalog (.xcstrings) and implements
// every operation on it that does not touch the filesystem.
//
// A Catalog maps translation keys to entries. Each entry holds per-language
// units, and a unit is either a leaf Value (state + text) or a set of
// variations keyed by a selector (plural or device) and a case name, where
// every case is again a unit. Units nest to at most MaxDepth levels.
//
// # Reading and writing the file format
//
//	cat, err := catalog.Parse(data)
//	if err != nil {
//		// errors.Is(err, catalog.ErrParse) or catalog.ErrValidation
//	}
//	out, err := catalog.Marshal(cat) // Xcode-compatible formatting
//
// # Mutations
//
// Mutating methods (Upsert, DeleteTranslation, RenameKey, AddLanguage...)
// modify the receiver in place. Callers that publish catalogs to concurrent
// readers work on a Clone: the clone shares entries with the original, and
// every mutation replaces the entries it touches instead of editing them, so
// the original is never observed half-updated.
//
//	work := current.Clone()
//	if _, err := work.Upsert("greeting", "uk", catalog.Patch{Text: ptr("Привіт")}); err != nil {
//		return err
//	}
//	current = work
//
// Patches merge into existing units: absent fields leave data untouched,
// variations merge case by case, and a null substitution removes it.
//
// # Errors
//
// All failures are *Error values carrying one of the kinds ErrNotFound,
// ErrConflict, ErrValidation, ErrParse or ErrIO together with the logical
// location they refer to, such as "greeting/uk/plural/one".
package catalog
