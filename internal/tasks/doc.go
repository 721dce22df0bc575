// Package tasks orchestrates playlist-to-sheet syncs with real-time progress reporting.
//
// # Core Operation
//
// The [SyncEngine] interface defines one operation:
//
//	[SyncEngine.Run] : Sync configured targets into CSV sheets
//	  - Authenticates with the provider once, before any target
//	  - Per target: resolves the playlist reference, fetches every item,
//	    loads the previous sheet's overrides, rebuilds rows, merges, and
//	    replaces the sheet atomically
//	  - Targets run sequentially in config order; the first failure aborts
//	    the run and leaves the remaining sheets untouched
//
// # Row Building
//
// [BuildRows] turns fetched items into sheet rows: placeholder and
// local-file entries are dropped, duplicate ids keep their first
// occurrence, and album targets collapse tracks into one row per source
// album. [MergeOverrides] then copies the curator's year_override and
// title_override values onto rows whose id appeared in the previous sheet.
// Every other column is rebuilt from the fresh fetch on every run.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and
// optional data for advanced UI rendering. Updates use select with default
// to prevent blocking.
//
// # Implementation
//
// [SheetEngine] implements [SyncEngine] with dependencies on:
//   - [services.Service] : the remote provider client
//   - the sheet package : CSV rendering, atomic replace, override loading
package tasks
