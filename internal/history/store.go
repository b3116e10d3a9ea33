package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	cplxerror "github.com/msto63/cplx/foundation/core/error"
	"github.com/msto63/cplx/foundation/core/errors"
	cplxlog "github.com/msto63/cplx/foundation/core/log"
	"github.com/msto63/cplx/internal/calc"
	"github.com/msto63/cplx/pkg/core/config"
)

// Entry is one recorded evaluation
type Entry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id,omitempty"`
	RequestID string        `json:"request_id,omitempty"`
	Function  string        `json:"function"`
	Args      []string      `json:"args"`
	Kind      string        `json:"kind,omitempty"`
	Result    string        `json:"result,omitempty"`
	ErrorCode string        `json:"error_code,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Failed reports whether the evaluation returned an error
func (e *Entry) Failed() bool {
	return e.ErrorCode != "" || e.Error != ""
}

// Expression renders the call as it would be typed, e.g. "add 1+2i 3+0i"
func (e *Entry) Expression() string {
	if len(e.Args) == 0 {
		return e.Function
	}
	return e.Function + " " + strings.Join(e.Args, " ")
}

// FromEvaluation converts an evaluation into an entry. Arguments and
// results use the shortest exact text form, which ParseLine reads back.
func FromEvaluation(ev calc.Evaluation) *Entry {
	entry := &Entry{
		Timestamp: ev.Timestamp,
		SessionID: ev.SessionID,
		RequestID: ev.RequestID,
		Function:  ev.Function,
		Args:      make([]string, len(ev.Args)),
		Duration:  ev.Duration,
	}
	for i, z := range ev.Args {
		entry.Args[i] = z.Text('g', -1)
	}
	if ev.Err != nil {
		entry.ErrorCode = string(cplxerror.GetCode(ev.Err))
		entry.Error = ev.Err.Error()
		return entry
	}
	entry.Kind = ev.Result.Kind.String()
	entry.Result = ev.Result.String()
	return entry
}

// Filter selects entries in Query. Zero fields do not filter.
type Filter struct {
	SessionID  string
	Function   string
	Since      time.Time
	Until      time.Time
	FailedOnly bool
	Limit      int
	Offset     int
}

// Stats summarizes the stored history
type Stats struct {
	Total     int64            `json:"total"`
	Failed    int64            `json:"failed"`
	Sessions  int64            `json:"sessions"`
	Functions map[string]int64 `json:"functions"`
	Oldest    time.Time        `json:"oldest,omitempty"`
	Newest    time.Time        `json:"newest,omitempty"`
}

// Store persists evaluation history
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Recent(ctx context.Context, limit int) ([]*Entry, error)
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (Stats, error)
	Prune(ctx context.Context, olderThan time.Duration, maxEntries int) (int64, error)
	Clear(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
	// Retention and MaxEntries are applied when the store is opened;
	// zero keeps everything
	Retention  time.Duration
	MaxEntries int
	Logger     *cplxlog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path:       "./data/history.db",
		Retention:  30 * 24 * time.Hour,
		MaxEntries: 10000,
	}
}

// ConfigFromSettings maps the [history] section onto Config
func ConfigFromSettings(s config.HistoryConfig) Config {
	return Config{
		Path:       s.Path,
		Retention:  s.Retention,
		MaxEntries: s.MaxEntries,
	}
}

// NewSessionID returns a fresh id for grouping the evaluations of one
// REPL or websocket session
func NewSessionID() string {
	return uuid.New().String()
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *cplxlog.Logger

	mu     sync.RWMutex
	closed bool
}

var _ Store = (*SQLiteStore)(nil)
var _ calc.Recorder = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the history database at cfg.Path
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Logger == nil {
		cfg.Logger = cplxlog.GetDefault()
	}
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}

	dsn := ":memory:"
	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, errors.HistoryStorageFailed("open", err).WithDetail("path", cfg.Path)
		}
		dsn = cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.HistoryStorageFailed("open", err).WithDetail("path", cfg.Path)
	}
	if cfg.Path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	s := &SQLiteStore{
		db:     db,
		path:   cfg.Path,
		logger: cfg.Logger.WithField("component", "history"),
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.HistoryStorageFailed("init", err).WithDetail("path", cfg.Path)
	}

	if cfg.Retention > 0 || cfg.MaxEntries > 0 {
		removed, err := s.Prune(context.Background(), cfg.Retention, cfg.MaxEntries)
		if err != nil {
			db.Close()
			return nil, err
		}
		if removed > 0 {
			s.logger.Info("pruned history", cplxlog.Fields{"removed": removed})
		}
	}

	s.logger.Debug("history store opened", cplxlog.Fields{"path": cfg.Path})
	return s, nil
}

// Path returns the database location
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		session_id TEXT,
		request_id TEXT,
		function TEXT NOT NULL,
		args TEXT NOT NULL,
		kind TEXT,
		result TEXT,
		error_code TEXT,
		error TEXT,
		duration_ns INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_evaluations_session ON evaluations(session_id);
	CREATE INDEX IF NOT EXISTS idx_evaluations_function ON evaluations(function);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores entry, assigning an id and timestamp when missing
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.HistoryClosed("record")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Function = strings.ToLower(entry.Function)

	args, err := json.Marshal(entry.Args)
	if err != nil {
		return errors.HistoryStorageFailed("record", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, created_at, session_id, request_id, function, args, kind, result, error_code, error, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp.UnixNano(), nullString(entry.SessionID), nullString(entry.RequestID),
		entry.Function, string(args), nullString(entry.Kind), nullString(entry.Result),
		nullString(entry.ErrorCode), nullString(entry.Error), int64(entry.Duration))
	if err != nil {
		return errors.HistoryStorageFailed("record", err)
	}
	return nil
}

// RecordEvaluation stores a finished evaluation
func (s *SQLiteStore) RecordEvaluation(ctx context.Context, ev calc.Evaluation) error {
	return s.Record(ctx, FromEvaluation(ev))
}

// failedCondition matches the rows for which Entry.Failed reports true
const failedCondition = `(error_code IS NOT NULL OR error IS NOT NULL)`

const selectColumns = `SELECT id, created_at, session_id, request_id, function, args, kind, result, error_code, error, duration_ns FROM evaluations`

// Get returns the entry with the given id
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.HistoryClosed("get")
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id = ?`, id)
	if err != nil {
		return nil, errors.HistoryStorageFailed("get", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.HistoryNotFound(id)
	}
	return entries[0], nil
}

// Recent returns the newest entries, newest first
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	return s.Query(ctx, Filter{Limit: limit})
}

// Query returns entries matching filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errors.HistoryClosed("query")
	}

	query := selectColumns + ` WHERE 1=1`
	var args []interface{}

	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Function != "" {
		query += " AND function = ?"
		args = append(args, strings.ToLower(filter.Function))
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since.UnixNano())
	}
	if !filter.Until.IsZero() {
		query += " AND created_at <= ?"
		args = append(args, filter.Until.UnixNano())
	}
	if filter.FailedOnly {
		query += " AND " + failedCondition
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.HistoryStorageFailed("query", err)
	}
	return scanEntries(rows)
}

// Stats summarizes the stored entries. Functions holds the five most
// used function names.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Stats{}, errors.HistoryClosed("stats")
	}

	stats := Stats{Functions: make(map[string]int64)}
	var oldest, newest sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(CASE WHEN `+failedCondition+` THEN 1 END),
		       COUNT(DISTINCT session_id),
		       MIN(created_at),
		       MAX(created_at)
		FROM evaluations
	`).Scan(&stats.Total, &stats.Failed, &stats.Sessions, &oldest, &newest)
	if err != nil {
		return Stats{}, errors.HistoryStorageFailed("stats", err)
	}
	if oldest.Valid {
		stats.Oldest = time.Unix(0, oldest.Int64)
	}
	if newest.Valid {
		stats.Newest = time.Unix(0, newest.Int64)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT function, COUNT(*) AS n FROM evaluations
		GROUP BY function ORDER BY n DESC, function LIMIT 5
	`)
	if err != nil {
		return Stats{}, errors.HistoryStorageFailed("stats", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var n int64
		if err := rows.Scan(&name, &n); err != nil {
			return Stats{}, errors.HistoryStorageFailed("stats", err)
		}
		stats.Functions[name] = n
	}
	if err := rows.Err(); err != nil {
		return Stats{}, errors.HistoryStorageFailed("stats", err)
	}
	return stats, nil
}

// Prune removes entries older than olderThan and then all but the newest
// maxEntries. Zero values skip the respective step.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration, maxEntries int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errors.HistoryClosed("prune")
	}

	var removed int64
	if olderThan > 0 {
		cutoff := time.Now().Add(-olderThan).UnixNano()
		res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE created_at < ?`, cutoff)
		if err != nil {
			return removed, errors.HistoryStorageFailed("prune", err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	if maxEntries > 0 {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM evaluations WHERE rowid NOT IN (
				SELECT rowid FROM evaluations ORDER BY created_at DESC, rowid DESC LIMIT ?
			)
		`, maxEntries)
		if err != nil {
			return removed, errors.HistoryStorageFailed("prune", err)
		}
		n, _ := res.RowsAffected()
		removed += n
	}
	return removed, nil
}

// Clear removes every entry and returns how many were deleted
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, errors.HistoryClosed("clear")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations`)
	if err != nil {
		return 0, errors.HistoryStorageFailed("clear", err)
	}
	n, _ := res.RowsAffected()
	s.logger.Info("history cleared", cplxlog.Fields{"removed": n})
	return n, nil
}

// Ping checks that the database is reachable
func (s *SQLiteStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return errors.HistoryClosed("ping")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return errors.HistoryStorageFailed("ping", err)
	}
	return nil
}

// Close closes the database. Later calls return nil.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return errors.HistoryStorageFailed("close", err)
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var (
			entry                                         Entry
			createdAt, durationNs                         int64
			argsJSON                                      string
			sessionID, requestID, kind, result, code, msg sql.NullString
		)
		if err := rows.Scan(&entry.ID, &createdAt, &sessionID, &requestID, &entry.Function,
			&argsJSON, &kind, &result, &code, &msg, &durationNs); err != nil {
			return nil, errors.HistoryStorageFailed("scan", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &entry.Args); err != nil {
			return nil, errors.HistoryStorageFailed("scan", err).
				WithCode(cplxerror.CodeDataCorruption).
				WithDetail("id", entry.ID)
		}

		entry.Timestamp = time.Unix(0, createdAt)
		entry.Duration = time.Duration(durationNs)
		entry.SessionID = sessionID.String
		entry.RequestID = requestID.String
		entry.Kind = kind.String
		entry.Result = result.String
		entry.ErrorCode = code.String
		entry.Error = msg.String
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.HistoryStorageFailed("scan", err)
	}
	return entries, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// FormatDuration renders d in microseconds for listings
func FormatDuration(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Microsecond), 'f', 1, 64) + "µs"
}
