package auditlog

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	_ "github.com/lib/pq"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelError = "error"
)

// Entry is one parsed audit log line.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
}

var lineRe = regexp.MustCompile(`^\[(.*?)\] \[(.*?)\] (.*)$`)

// Log is the durable audit trail of sync attempts. Entries go to a rotated
// flat file and, when a DSN is configured, to a postgres mirror table the
// admin endpoint queries. Debug entries are dropped unless debug mode is on;
// error entries are always written.
type Log struct {
	debug bool
	path  string
	file  *lumberjack.Logger
	db    *sql.DB
	mu    sync.Mutex
}

func New(path string, debug bool, dbDSN string) (*Log, error) {
	l := &Log{
		debug: debug,
		path:  path,
		file: &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
		},
	}

	if dbDSN != "" {
		db, err := sql.Open("postgres", dbDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log database: %w", err)
		}

		createSQL := `
		CREATE TABLE IF NOT EXISTS audit_log (
			id BIGSERIAL PRIMARY KEY,
			logged_at TIMESTAMPTZ DEFAULT NOW(),
			level TEXT NOT NULL,
			message TEXT NOT NULL
		);`
		if _, err := db.Exec(createSQL); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create audit_log table: %w", err)
		}

		l.db = db
	}

	return l, nil
}

// Log writes one entry. Non-error entries are suppressed unless debug mode
// is enabled.
func (l *Log) Log(message, level string) {
	if level != LevelError && !l.debug {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] [%s] %s\n", timestamp, strings.ToUpper(level), message)

	l.mu.Lock()
	l.file.Write([]byte(line))
	l.mu.Unlock()

	if l.db != nil {
		// Mirror failures are swallowed: the flat file already has the entry.
		l.db.Exec(`INSERT INTO audit_log (level, message) VALUES ($1, $2)`, level, message)
	}
}

// Recent returns up to limit entries, newest first.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	if l.db != nil {
		return l.recentFromDB(limit)
	}
	return l.recentFromFile(limit)
}

func (l *Log) recentFromDB(limit int) ([]Entry, error) {
	rows, err := l.db.Query(
		`SELECT logged_at, level, message FROM audit_log ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var loggedAt time.Time
		var entry Entry
		if err := rows.Scan(&loggedAt, &entry.Level, &entry.Message); err != nil {
			return nil, fmt.Errorf("failed to scan audit log row: %w", err)
		}
		entry.Timestamp = loggedAt.Format("2006-01-02 15:04:05")
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (l *Log) recentFromFile(limit int) ([]Entry, error) {
	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log file: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log file: %w", err)
	}

	// Newest first.
	entries := make([]Entry, 0, limit)
	for i := len(lines) - 1; i >= 0 && len(entries) < limit; i-- {
		m := lineRe.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}
		entries = append(entries, Entry{
			Timestamp: m[1],
			Level:     strings.ToLower(m[2]),
			Message:   m[3],
		})
	}
	return entries, nil
}

// Clear truncates the audit trail.
func (l *Log) Clear() error {
	l.mu.Lock()
	err := os.Truncate(l.path, 0)
	l.mu.Unlock()
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear audit log file: %w", err)
	}

	if l.db != nil {
		if _, err := l.db.Exec(`DELETE FROM audit_log`); err != nil {
			return fmt.Errorf("failed to clear audit log table: %w", err)
		}
	}
	return nil
}

// Close releases the database handle, if any.
func (l *Log) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
