// Package discovery finds string catalog files below a directory.
//
//	paths, err := discovery.Find(ctx, "/src/app")
//
// Find skips hidden directories and the build and dependency directories
// common in Apple and web projects (node_modules, DerivedData, Pods...),
// matches the .xcstrings extension case-insensitively and returns absolute,
// symlink-resolved, sorted and de-duplicated paths. A missing root yields an
// empty result, and subtrees that cannot be read are skipped.
package discovery
