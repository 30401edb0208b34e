// Package assetcache keeps the portal shell available without a network round
// trip. It installs a fixed manifest into a cache named by the current
// version, activates that version by dropping every other cache, and resolves
// requests cache-first with network fallback. Runtime responses are never
// written back: the manifest is the only write path.
package assetcache
