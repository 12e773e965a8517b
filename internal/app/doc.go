// Package app wires the console's components together and owns their
// startup and shutdown.
//
// # Overview
//
// Run is the composition root. It loads the configuration, spawns the live
// log follower, opens the terminal and then starts four workers around the
// console:
//
//	follower stdout ──▶ live feed ──(live, 16)────────────┐
//	log dir         ──▶ history   ──(history, 16)─────────┤
//	terminal        ──▶ poller    ──(events, 0)──────────▶ console
//	                       ▲                               │
//	                       └────────(acks, 0)──────────────┤
//	transcript      ◀── sink      ◀─(commands, 16)─────────┘
//
// The console is the only goroutine that draws or touches the scroll
// buffer. Every other worker talks to it by channel only.
//
// # Event Polling
//
// StartPoller asks the terminal for one event, hands it to the console and
// then waits for an acknowledgement before asking again. The console
// acknowledges after it has handled each event, so there is never more
// than one poll outstanding.
//
// # Shutdown Sequence
//
// When the console returns (quit key, SIGINT/SIGTERM through ctx, or a
// closed terminal), Run stops everything in this order, waiting for each
// worker before moving on:
//
//  1. close acks and interrupt the terminal, then wait for the poller
//  2. close the command channel and wait for the transcript sink
//  3. close the history cancel channel and wait for the loader
//  4. close the feed's stop channel, kill the follower, wait for the feed
//     and reap the follower
//  5. restore the terminal
//
// Every step that blocks has been released by the step before it, so the
// sequence cannot deadlock.
//
// # Error Handling
//
// Errors are split in two tiers:
//
//   - Startup: a bad config, an unusable debug log, a follower that cannot
//     be spawned or a terminal that cannot be opened. Run returns a
//     *StartupError before any worker starts.
//   - Runtime: an I/O error in the loader, the live feed or the sink, or
//     a terminal backend that failed while running. The worker stops, and
//     the error is reported by Run once shutdown has completed. When several workers fail, the first in shutdown order is
//     returned and the rest are logged.
//
// Errors that only happen because shutdown is underway, such as a read on
// the follower's pipe after it was killed or a delivery abandoned by
// cancellation, are logged and dropped by the worker that saw them.
//
// # Logging
//
// Diagnostics use the global logrus logger. Because the terminal belongs to
// the console, log output goes to the debug log file when one is
// configured and is discarded otherwise.
package app
