// Package history produces the server's past log output, newest first, for
// the console to prepend while the operator scrolls backward.
//
// # Overview
//
// The loader is a single background worker. It reads one file at a time,
// then hands entries over a small bounded channel, so it only ever runs a
// few entries ahead of what the console has asked for. The channel's
// capacity is the read-ahead; backpressure does the rest.
//
//	          cancel (closed at shutdown)
//	               │
//	┌──────────────▼───────────────┐   chan entry.Entry (cap 16)  ┌─────────┐
//	│ loader                       │─────────────────────────────▶│ console │
//	│ latest.log, then archives    │       newest → oldest        │         │
//	└──────────────────────────────┘                              └─────────┘
//
// # Read Order
//
// Given a log directory like:
//
//	logs/
//	  latest.log
//	  2023-01-01-1.log.gz
//	  2023-01-02-1.log.gz
//	  2023-01-02-2.log.gz
//	  readme.txt
//
// the loader emits:
//
//  1. the lines of latest.log, last line first
//  2. a header for latest.log
//  3. the lines of 2023-01-02-2.log.gz, last line first, then its header
//  4. the same for 2023-01-02-1.log.gz and then 2023-01-01-1.log.gz
//
// Because the console pushes each entry at the front of its buffer, every
// header ends up directly above the content of the file it names.
//
// Archives are files named YYYY-MM-DD-N.log.gz. Anything else in the
// directory is ignored without comment. Archives sort by date and then by
// the numeric sequence N, so -10 comes after -9.
//
// A missing live file or a missing log directory is treated as having no
// history. No header is emitted for a live file that does not exist.
//
// # Compression
//
// Archives are gzip streams read with klauspost/compress, which also
// accepts concatenated gzip members as rotated logs are sometimes written.
// Each archive is decompressed whole before its first entry is sent.
//
// # Cancellation
//
// Every delivery races the send against the cancel channel being closed.
// Closing cancel therefore unblocks a loader stuck on a full channel, and a
// loader that observes cancellation before a send delivers nothing more.
// The worker then closes its output channel and returns nil.
//
// # Errors
//
// I/O and decompression errors end the loader and become the worker's
// result, which the shutdown sequence reports as fatal. An error raised
// after cancel was closed is logged and dropped.
package history
