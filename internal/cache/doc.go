// Package cache defines the disk-backed store that holds named asset caches
// under StoragePath/<cache-name>/<key>. Each cache name is one generation of
// the offline shell; the store can enumerate and drop whole generations, and
// exposes read/write primitives with safe semantics (temp file + rename) for
// individual entries. The asset cache layer depends on this package to serve
// cached responses without duplicating filesystem logic.
package cache
