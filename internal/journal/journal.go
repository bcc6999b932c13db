package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const recordSeparator = " | "

// Record is one line-shaped entry in a channel.
type Record struct {
	Timestamp time.Time
	Category  string
	Item      string
	Detail    string
}

func (r Record) line() string {
	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	fields := []string{
		ts.UTC().Format(time.RFC3339),
		sanitizeField(r.Category),
		sanitizeField(r.Item),
		sanitizeField(r.Detail),
	}
	return strings.Join(fields, recordSeparator) + "\n"
}

// sanitizeField keeps records line-shaped: newlines would split one record
// into two and pipes would shift the column a reader parses.
func sanitizeField(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "|", "/")
	return strings.TrimSpace(value)
}

type channel struct {
	mu   sync.Mutex
	path string
	seen map[string]struct{}
}

// Journal manages the named channels under one directory. Channel state is
// created lazily; the zero-record case leaves no file behind.
type Journal struct {
	mu       sync.Mutex
	dir      string
	channels map[string]*channel
}

// New returns a journal rooted at dir.
func New(dir string) *Journal {
	return &Journal{dir: dir, channels: make(map[string]*channel)}
}

// Path returns the file backing the named channel.
func (j *Journal) Path(name string) string {
	return filepath.Join(j.dir, name+".log")
}

func (j *Journal) channelFor(name string) (*channel, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("invalid channel name %q", name)
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	ch, ok := j.channels[name]
	if !ok {
		ch = &channel{path: j.Path(name), seen: make(map[string]struct{})}
		j.channels[name] = ch
	}
	return ch, nil
}

// Append durably adds one record to the named channel. The write happens
// inside the channel's critical section, so concurrent appends to the same
// channel never interleave.
func (j *Journal) Append(name string, rec Record) error {
	ch, err := j.channelFor(name)
	if err != nil {
		return err
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.write(rec)
}

// AppendUnique adds the record only if key has not been appended to this
// channel during the current process. Check and append share the channel's
// critical section, so two workers racing on the same key produce exactly
// one record. Returns true when the record was written.
func (j *Journal) AppendUnique(name, key string, rec Record) (bool, error) {
	ch, err := j.channelFor(name)
	if err != nil {
		return false, err
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if _, dup := ch.seen[key]; dup {
		return false, nil
	}
	if err := ch.write(rec); err != nil {
		return false, err
	}
	ch.seen[key] = struct{}{}
	return true, nil
}

func (ch *channel) write(rec Record) error {
	if err := os.MkdirAll(filepath.Dir(ch.path), 0o755); err != nil {
		return fmt.Errorf("ensure journal dir: %w", err)
	}
	file, err := os.OpenFile(ch.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	if _, err := file.WriteString(rec.line()); err != nil {
		file.Close()
		return fmt.Errorf("append channel: %w", err)
	}
	return file.Close()
}

// Read returns every record in the named channel, oldest first. Intended for
// the single reader after the pool drains; an absent channel reads as empty.
func (j *Journal) Read(name string) ([]Record, error) {
	ch, err := j.channelFor(name)
	if err != nil {
		return nil, err
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()

	file, err := os.Open(ch.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open channel: %w", err)
	}
	defer file.Close()

	var records []Record
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		records = append(records, parseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("read channel: %w", err)
	}
	return records, nil
}

// Count returns the number of records in the named channel.
func (j *Journal) Count(name string) (int, error) {
	records, err := j.Read(name)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Clear removes the named channel's file and forgets its dedup state.
func (j *Journal) Clear(name string) error {
	ch, err := j.channelFor(name)
	if err != nil {
		return err
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.seen = make(map[string]struct{})
	if err := os.Remove(ch.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear channel: %w", err)
	}
	return nil
}

func parseLine(line string) Record {
	parts := strings.SplitN(line, recordSeparator, 4)
	rec := Record{}
	if len(parts) > 0 {
		if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(parts[0])); err == nil {
			rec.Timestamp = ts
		}
	}
	if len(parts) > 1 {
		rec.Category = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		rec.Item = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		rec.Detail = strings.TrimSpace(parts[3])
	}
	return rec
}
