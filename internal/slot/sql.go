package slot

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect holds the driver-specific statements of the SQL slot.
type Dialect struct {
	Driver string
	Schema string
	Select string
	Upsert string
}

var (
	SQLiteDialect = Dialect{
		Driver: "sqlite3",
		Schema: `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`,
		Select: `SELECT value FROM slots WHERE name = ?`,
		Upsert: `INSERT INTO slots (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
	}

	PostgresDialect = Dialect{
		Driver: "postgres",
		Schema: `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`,
		Select: `SELECT value FROM slots WHERE name = $1`,
		Upsert: `INSERT INTO slots (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`,
	}
)

// SQL stores slots as rows of a key/value table.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLite opens (creating if needed) the SQLite database at dbPath.
func NewSQLite(dbPath string) (*SQL, error) {
	return OpenSQL(SQLiteDialect, dbPath)
}

// NewPostgres connects to PostgreSQL with connStr.
func NewPostgres(connStr string) (*SQL, error) {
	if connStr == "" {
		return nil, errors.New("postgres connection string is empty")
	}
	return OpenSQL(PostgresDialect, connStr)
}

// OpenSQL opens a database for d and ensures the slots table exists.
func OpenSQL(d Dialect, dsn string) (*SQL, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}

	s := &SQL{db: db, dialect: d}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQL) createTables() error {
	if _, err := s.db.Exec(s.dialect.Schema); err != nil {
		return fmt.Errorf("failed to create slots table: %w", err)
	}
	return nil
}

func (s *SQL) Get(key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRow(s.dialect.Select, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query slot %q: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQL) Set(key string, data []byte) error {
	if _, err := s.db.Exec(s.dialect.Upsert, key, string(data)); err != nil {
		return fmt.Errorf("failed to upsert slot %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
