// Package state holds the console's scroll buffer and scroll position.
//
// # Overview
//
// The console keeps an in-memory window of log entries that grows at both
// ends: live lines arrive at the back, and history fetched while the
// operator scrolls upward is inserted at the front. Buffer is a ring-backed
// double-ended queue built for exactly that access pattern.
//
//	front (oldest)                                   back (newest)
//	┌────────┬──────────┬─────────┬──────────┬────────┬──────────┐
//	│ header │ archive  │ header  │ latest   │ latest │ live ... │
//	│ a.gz   │ lines    │ latest  │ (history)│        │          │
//	└────────┴──────────┴─────────┴──────────┴────────┴──────────┘
//	   ↑ PushFront (history, newest-first)      PushBack (live) ↑
//
// Because the history loader yields entries newest-first and each one is
// pushed ahead of everything already held, the buffer stays in ascending
// order front to back.
//
// # Scroll Bounds
//
// View.Scroll indexes the first visible row. With rows visible log rows the
// valid range is:
//
//	0 <= Scroll <= MaxScroll(len, rows) = max(0, len - rows)
//
// HScroll is a horizontal character offset that never goes below zero and
// has no upper bound.
//
// # Concurrency Model
//
// Nothing here is synchronized. The console goroutine is the only owner of
// its Buffer and View; producers hand entries over by channel.
package state
