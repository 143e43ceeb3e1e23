// Package logtail reads the tail of the setlist log file and parses zap
// console lines for the logs command.
//
// Read keeps a ring buffer of the last maxLines lines, so memory stays
// bounded by the request rather than the file. A missing file reads as
// empty.
//
// The browser writes its log to the configured log_file with zap's console
// encoder:
//
//	2024-06-01 12:00:00	WARN	fallback/client.go:158	persist local record failed	{"op": "create band"}
//
// ParseLine splits such a line into an Entry. Lines that do not start with
// a timestamp and level, such as stack traces, become continuation entries
// and inherit the level of the line above so Filter keeps them together.
package logtail
