package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// stdLayout matches the prefix written by the log package with LstdFlags.
const stdLayout = "2006/01/02 15:04:05"

// Level is a coarse severity guessed from the message text.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
)

// Entry is one activity log line.
type Entry struct {
	Time    time.Time
	Source  string
	Message string
	Level   Level
}

// HasTime reports whether a timestamp was parsed.
func (e Entry) HasTime() bool { return !e.Time.IsZero() }

// Parse splits a log line into timestamp, source package and message.
// Lines without the standard prefix keep their full text as the message.
func Parse(line string) Entry {
	var e Entry
	rest := line
	if len(line) > len(stdLayout) {
		if ts, err := time.ParseInLocation(stdLayout, line[:len(stdLayout)], time.Local); err == nil {
			e.Time = ts
			rest = strings.TrimPrefix(line[len(stdLayout):], " ")
		}
	}
	if src, msg, ok := strings.Cut(rest, ": "); ok && isSource(src) {
		e.Source = src
		rest = msg
	}
	e.Message = rest
	e.Level = classify(rest)
	return e
}

func isSource(s string) bool {
	if s == "" || len(s) > 16 {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && r != '_' {
			return false
		}
	}
	return true
}

func classify(msg string) Level {
	lower := strings.ToLower(msg)
	for _, w := range []string{"fail", "error", "reject", "duplicate"} {
		if strings.Contains(lower, w) {
			return LevelWarn
		}
	}
	return LevelInfo
}

// Tail returns up to maxLines parsed entries from the end of the file at
// path, oldest first. maxLines <= 0 returns every line. A missing file is
// an empty log.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := readLines(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		entries = append(entries, Parse(l))
	}
	return entries, nil
}

func readLines(path string, maxLines int) ([]string, error) {
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
		var all []string
		for scanner.Scan() {
			all = append(all, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return all, nil
	}

	// Keep only the newest maxLines in a ring.
	ring := make([]string, maxLines)
	count, next := 0, 0
	for scanner.Scan() {
		ring[next] = scanner.Text()
		next = (next + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if count < maxLines {
		return ring[:count], nil
	}
	return append(ring[next:], ring[:next]...), nil
}
