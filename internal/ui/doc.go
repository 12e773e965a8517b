// Package ui is the interactive console: a scrolling view of the server's
// log above a command prompt and a status line.
//
// # Screen Layout
//
//	┌────────────────────────────────────────────┐
//	│ --> logs/2023-01-02-1.log.gz               │  header (file boundary)
//	│12:00:01 INFO: Starting server             >│  log rows, panned by
//	│12:00:02 WARN: Can't keep up!               │  hscroll, marked where
//	│ --> logs/latest.log                        │  they are cut
//	│12:00:09 INFO: Done (3.2s)                  │
//	│ > say hello_                               │  input row
//	│ ctrl+q quit • ↑/↓ scroll • pgup/pgdn page  │  status row
//	└────────────────────────────────────────────┘
//
// The bottom two rows always belong to the prompt and the status line; the
// rest show the buffer window starting at the scroll offset.
//
// # States
//
// A Console moves through three states:
//
//   - Collecting: pull from history and the live feed until the log rows
//     are full or history is exhausted. History is pushed at the front and
//     live lines at the back, so the first paint shows the newest content.
//   - Running: paint, then wait for a live line or a terminal event. Each
//     event is acknowledged after it is handled so the poller may ask the
//     terminal for the next one.
//   - Exiting: reached on the quit key, a closed event channel or context
//     cancellation. Run returns without acknowledging the last event and
//     the caller performs the shutdown sequence.
//
// # Scrolling
//
// Scroll positions are bounded by 0 <= scroll <= max(0, len - rows).
// Scrolling older than the oldest entry held pulls exactly the missing
// number of entries from history, one at a time, stopping early when
// history is exhausted, and then rests at scroll 0. A view resting at the
// newest content follows live lines as they arrive; any other position
// stays put so reading history is not disturbed.
//
// Horizontal panning applies to log lines only. Headers always start at
// column 0.
//
// # Keys
//
//	ctrl+q, ctrl+c   quit
//	up / down        scroll by vertical_step
//	pgup / pgdown    scroll by half the terminal height
//	left / right     pan by horizontal_step
//	end              jump to the newest content
//	enter            send the input line to the transcript
//	backspace        delete the last character
//
// Everything else printable is typed into the input line.
//
// # Log Line Format
//
// Lines of the form "[HH:MM:SS] [source/SEVERITY]: message" are drawn as
// time, severity and message in their configured colors. INFO, WARN,
// ERROR, SEVERE and FATAL each have a color; other severities share one.
// Lines in any other form are drawn whole in the text color.
//
// # Concurrency
//
// Console is not safe for concurrent use. It is the only goroutine that
// touches its buffer or draws on its surface; everything else reaches it
// through the channels in Options.
package ui
