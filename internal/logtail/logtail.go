package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one line of zap console output.
type Entry struct {
	Time    string        `json:"time,omitempty"`
	Level   zapcore.Level `json:"level"`
	Logger  string        `json:"logger,omitempty"`
	Caller  string        `json:"caller,omitempty"`
	Message string        `json:"message"`
	Fields  string        `json:"fields,omitempty"`
	// Continuation is set for lines that do not start a new entry, such as
	// stack traces. Level is inherited from the entry above.
	Continuation bool `json:"continuation,omitempty"`
}

// ParseLine splits a console-encoded line into its tab-separated columns:
// time, level, optional logger name, caller, message and a JSON field blob.
func ParseLine(line string) (Entry, bool) {
	parts := strings.Split(line, "\t")
	if len(parts) < 3 {
		return Entry{Message: line, Continuation: true}, false
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(parts[1])); err != nil {
		return Entry{Message: line, Continuation: true}, false
	}

	e := Entry{Time: parts[0], Level: level}
	rest := parts[2:]
	if last := rest[len(rest)-1]; len(rest) > 1 && strings.HasPrefix(last, "{") {
		e.Fields = last
		rest = rest[:len(rest)-1]
	}
	e.Message = rest[len(rest)-1]
	rest = rest[:len(rest)-1]
	switch len(rest) {
	case 0:
	case 1:
		e.Caller = rest[0]
	default:
		e.Logger = rest[0]
		e.Caller = rest[len(rest)-1]
	}
	return e, true
}

// Parse converts lines into entries.
func Parse(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	level := zapcore.InfoLevel
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		e, ok := ParseLine(line)
		if ok {
			level = e.Level
		} else {
			e.Level = level
		}
		entries = append(entries, e)
	}
	return entries
}

// Filter keeps entries at or above min.
func Filter(entries []Entry, min zapcore.Level) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Level >= min {
			out = append(out, e)
		}
	}
	return out
}

// String renders the entry back in console form.
func (e Entry) String() string {
	if e.Continuation {
		return e.Message
	}
	cols := []string{e.Time, e.Level.CapitalString()}
	if e.Logger != "" {
		cols = append(cols, e.Logger)
	}
	if e.Caller != "" {
		cols = append(cols, e.Caller)
	}
	cols = append(cols, e.Message)
	if e.Fields != "" {
		cols = append(cols, e.Fields)
	}
	return strings.Join(cols, "\t")
}
