// Package logtail reads log text line by line, both from files on disk and
// from the external process that follows the live log.
//
// # Reading Files
//
// ReadLines and ReadFile return whole files as lines without terminators.
// The history loader uses them for the live file's existing content and
// for decompressed archives. A missing file is not an error: ReadFile
// reports it with ok false so the caller can skip it entirely.
//
//	lines, ok, err := logtail.ReadFile(cfg.LiveLog)
//	if err != nil {
//		return err
//	}
//	if !ok {
//		// no live file yet
//	}
//
// Lines longer than 4 MiB are split into 4 MiB pieces.
//
// # Following the Live Log
//
// Spawn starts the configured follow command (tail -n0 -F by default) with
// the live log path appended. The follower prints only lines written after
// it starts and keeps following across rotation and truncation. Its
// standard error is discarded.
//
// StartFeed reads the follower's output and delivers one entry.Entry per
// line on a bounded channel, blocking when the console falls behind:
//
//	follower, err := logtail.Spawn(cfg.FollowCommand, cfg.LiveLog)
//	if err != nil {
//		return err
//	}
//	stop := make(chan struct{})
//	live := make(chan entry.Entry, 16)
//	feed := logtail.StartFeed(follower.Stdout(), stop, live)
//
// # Shutdown
//
// The feed ends when the follower's output ends. The console stops it in
// this order:
//
//  1. close(stop), which abandons any delivery blocked on a full channel
//  2. follower.Kill(), which ends the output stream
//  3. feed.Wait(), which returns once the reader has seen the end
//  4. follower.Wait(), which reaps the process
//
// A read error after stop is closed is logged and dropped. Before that it
// is the feed's result and is fatal to the process.
package logtail
