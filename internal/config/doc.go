// Package config loads the console's TOML configuration.
//
// # Configuration Discovery
//
// Load takes an explicit path and a base directory. An empty path means
// <base>/console.toml. A missing file is not an error: the built-in
// defaults from Default are returned. Any other read failure, a TOML
// syntax error or an invalid value is fatal at startup.
//
// # TOML Format
//
//	log_dir = "logs"                 # archives and latest.log
//	live_log = "logs/latest.log"     # defaults to <log_dir>/latest.log
//	transcript = "console"           # commands are appended here
//	debug_log = ""                   # diagnostics; empty discards them
//	follow_command = ["tail", "-n0", "-F"]
//	backend = "tcell"                # or "bubbletea"
//	vertical_step = 1
//	horizontal_step = 16
//	truncate_left = "<"
//	truncate_right = ">"
//	status = ""                      # empty shows the key help
//
//	[colors]
//	time = "3"                       # FG
//	warn = "4 0 b"                   # FG BG STYLE
//	prompt = "0 0 r"
//
// Every key is optional. Zero steps mean the default; negative steps are
// rejected.
//
// # Colors
//
// A color string has up to three whitespace-separated parts, read left to
// right: foreground, background, style. Colors are 0 for the terminal
// default or 1..256 for 256-color palette entry n-1. Style letters are b,
// u and r for bold, underline and reverse. The elements are command,
// file_header, time, info, warn, error, severe, fatal, other, text,
// truncate, prompt and status.
//
// # Path Expansion
//
// Relative paths are resolved against the base directory, not the process
// working directory, and a leading ~ is expanded to the home directory.
package config
