package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"tabworks/pxtab/pkg/pcaxis/table"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no dataset matches the lookup.
var ErrNotFound = errors.New("dataset not found")

// StorageError represents an error from the SQLite backend.
type StorageError struct {
	Operation string // Operation that failed ("save", "get", "delete", etc.)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("store error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(operation string, cause error) *StorageError {
	return &StorageError{
		Operation: operation,
		Cause:     cause,
	}
}

// Config contains configuration for the SQLite dataset store.
type Config struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultConfig returns the default store configuration.
func DefaultConfig() *Config {
	return &Config{
		Path:         "data/pxtab.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// Record is a stored dataset together with its catalog identity.
type Record struct {
	// ID is the store-assigned dataset identifier.
	ID string

	// Source is the catalog source name the dataset was parsed for.
	Source string

	// Locator is where the document was fetched from.
	Locator string

	// StoredAt is when the dataset was persisted.
	StoredAt time.Time

	// Dataset is the reconstructed parse result.
	Dataset *table.Dataset
}

// Summary describes a stored dataset without its metadata and rows.
type Summary struct {
	ID       string
	Source   string
	Locator  string
	Title    string
	Units    string
	RowCount int
	StoredAt time.Time
}

// Store persists parsed datasets in SQLite. A Store is safe for
// concurrent use.
type Store struct {
	db     *sql.DB
	config *Config
	logger *slog.Logger

	// prepared statements for the hot insert path
	insertDatasetStmt   *sql.Stmt
	insertMetadataStmt  *sql.Stmt
	insertDimensionStmt *sql.Stmt
	insertRowStmt       *sql.Stmt
}

// Open creates a dataset store backed by the SQLite database at
// config.Path, creating the file and schema as needed. A nil config
// uses the defaults.
func Open(config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Path == "" {
		return nil, NewStorageError("open", errors.New("database path cannot be empty"))
	}
	if config.MaxOpenConns == 0 {
		config.MaxOpenConns = 10
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 5
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "store")

	db, err := sql.Open(driverName, dsn(config.Path, config.WALMode, config.BusyTimeout))
	if err != nil {
		return nil, NewStorageError("open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &Store{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("dataset store opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// initialize creates the schema and verifies the schema version.
func (s *Store) initialize() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return NewStorageError("get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// prepareStatements prepares the insert statements for reuse.
func (s *Store) prepareStatements() error {
	var err error

	s.insertDatasetStmt, err = s.db.Prepare(`
		INSERT INTO datasets (id, source, locator, title, units, row_count, stored_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return NewStorageError("prepare_insert_dataset", err)
	}

	s.insertMetadataStmt, err = s.db.Prepare(`
		INSERT INTO dataset_metadata (dataset_id, position, name, values_json)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return NewStorageError("prepare_insert_metadata", err)
	}

	s.insertDimensionStmt, err = s.db.Prepare(`
		INSERT INTO dataset_dimensions (dataset_id, position, name, role, members_json)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return NewStorageError("prepare_insert_dimension", err)
	}

	s.insertRowStmt, err = s.db.Prepare(`
		INSERT INTO dataset_rows (dataset_id, position, value)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return NewStorageError("prepare_insert_row", err)
	}

	return nil
}

// SaveDataset persists a parsed dataset under the given source name and
// returns the assigned dataset ID. Every save creates a new record;
// GetLatest resolves the most recent one per source.
func (s *Store) SaveDataset(ctx context.Context, source, locator string, ds *table.Dataset) (string, error) {
	if ds == nil {
		return "", NewStorageError("save", errors.New("dataset cannot be nil"))
	}

	id := uuid.NewString()
	storedAt := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", NewStorageError("save", err)
	}
	defer tx.Rollback()

	_, err = tx.StmtContext(ctx, s.insertDatasetStmt).ExecContext(ctx,
		id, source, locator, ds.Title(), ds.Units(), len(ds.Rows), storedAt.Unix(),
	)
	if err != nil {
		return "", NewStorageError("save_dataset", err)
	}

	if ds.Metadata != nil {
		insertMeta := tx.StmtContext(ctx, s.insertMetadataStmt)
		for i, name := range ds.Metadata.Keys() {
			valuesJSON, _ := json.Marshal(ds.Metadata.Get(name))
			if _, err := insertMeta.ExecContext(ctx, id, i, name, string(valuesJSON)); err != nil {
				return "", NewStorageError("save_metadata", err)
			}
		}
	}

	insertDim := tx.StmtContext(ctx, s.insertDimensionStmt)
	for i, dim := range ds.Dimensions {
		membersJSON, _ := json.Marshal(dim.Members)
		if _, err := insertDim.ExecContext(ctx, id, i, dim.Name, string(dim.Role), string(membersJSON)); err != nil {
			return "", NewStorageError("save_dimension", err)
		}
	}

	insertRow := tx.StmtContext(ctx, s.insertRowStmt)
	for i, row := range ds.Rows {
		// NULL encodes NaN so missing cells survive the round trip
		var value interface{}
		if !math.IsNaN(row.Value) {
			value = row.Value
		}
		if _, err := insertRow.ExecContext(ctx, id, i, value); err != nil {
			return "", NewStorageError("save_row", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", NewStorageError("save_commit", err)
	}

	s.logger.Info("dataset stored",
		"id", id,
		"source", source,
		"rows", len(ds.Rows),
	)
	return id, nil
}

// GetDataset reconstructs the stored dataset with the given ID.
// Returns an error wrapping ErrNotFound when the ID is unknown.
func (s *Store) GetDataset(ctx context.Context, id string) (*Record, error) {
	record := &Record{ID: id}
	var storedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT source, locator, stored_at FROM datasets WHERE id = ?`, id,
	).Scan(&record.Source, &record.Locator, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dataset %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, NewStorageError("get", err)
	}
	record.StoredAt = time.Unix(storedAt, 0).UTC()

	meta, err := s.loadMetadata(ctx, id)
	if err != nil {
		return nil, err
	}
	dims, err := s.loadDimensions(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.loadRows(ctx, id, dims)
	if err != nil {
		return nil, err
	}

	record.Dataset = &table.Dataset{
		Metadata:   meta,
		Dimensions: dims,
		Rows:       rows,
	}
	return record, nil
}

// GetLatest reconstructs the most recently stored dataset for a source.
// Returns an error wrapping ErrNotFound when the source has no datasets.
func (s *Store) GetLatest(ctx context.Context, source string) (*Record, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM datasets WHERE source = ? ORDER BY stored_at DESC, rowid DESC LIMIT 1`, source,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("source %q: %w", source, ErrNotFound)
	}
	if err != nil {
		return nil, NewStorageError("get_latest", err)
	}
	return s.GetDataset(ctx, id)
}

// ListDatasets returns summaries of all stored datasets, newest first.
func (s *Store) ListDatasets(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, locator, title, units, row_count, stored_at
		FROM datasets
		ORDER BY stored_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, NewStorageError("list", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var sm Summary
		var storedAt int64
		if err := rows.Scan(&sm.ID, &sm.Source, &sm.Locator, &sm.Title, &sm.Units, &sm.RowCount, &storedAt); err != nil {
			return nil, NewStorageError("scan_summary", err)
		}
		sm.StoredAt = time.Unix(storedAt, 0).UTC()
		summaries = append(summaries, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("list", err)
	}
	return summaries, nil
}

// DeleteDataset removes a stored dataset and all of its rows.
// Returns an error wrapping ErrNotFound when the ID is unknown.
func (s *Store) DeleteDataset(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("delete", err)
	}
	defer tx.Rollback()

	for _, child := range []string{"dataset_rows", "dataset_dimensions", "dataset_metadata"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+child+" WHERE dataset_id = ?", id); err != nil {
			return NewStorageError("delete", err)
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM datasets WHERE id = ?", id)
	if err != nil {
		return NewStorageError("delete", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return NewStorageError("delete", err)
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("delete_commit", err)
	}

	if affected == 0 {
		return fmt.Errorf("dataset %q: %w", id, ErrNotFound)
	}

	s.logger.Info("dataset deleted", "id", id)
	return nil
}

// DeleteBefore removes datasets stored before the cutoff and returns
// how many were deleted.
func (s *Store) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewStorageError("prune", err)
	}
	defer tx.Rollback()

	for _, child := range []string{"dataset_rows", "dataset_dimensions", "dataset_metadata"} {
		_, err := tx.ExecContext(ctx,
			"DELETE FROM "+child+" WHERE dataset_id IN (SELECT id FROM datasets WHERE stored_at < ?)",
			cutoff.Unix(),
		)
		if err != nil {
			return 0, NewStorageError("prune", err)
		}
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM datasets WHERE stored_at < ?", cutoff.Unix())
	if err != nil {
		return 0, NewStorageError("prune", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("prune", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, NewStorageError("prune_commit", err)
	}

	if affected > 0 {
		s.logger.Info("datasets pruned", "count", affected, "cutoff", cutoff)
	}
	return affected, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return NewStorageError("ping", err)
	}
	return nil
}

// Close releases the prepared statements and the database connection.
func (s *Store) Close() error {
	for _, stmt := range []*sql.Stmt{
		s.insertDatasetStmt,
		s.insertMetadataStmt,
		s.insertDimensionStmt,
		s.insertRowStmt,
	} {
		if stmt != nil {
			stmt.Close()
		}
	}

	if err := s.db.Close(); err != nil {
		return NewStorageError("close", err)
	}

	s.logger.Info("dataset store closed")
	return nil
}

// loadMetadata rebuilds the ordered metadata for a dataset.
func (s *Store) loadMetadata(ctx context.Context, id string) (*table.Metadata, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, values_json FROM dataset_metadata WHERE dataset_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, NewStorageError("load_metadata", err)
	}
	defer rows.Close()

	meta := table.NewMetadata()
	for rows.Next() {
		var name, valuesJSON string
		if err := rows.Scan(&name, &valuesJSON); err != nil {
			return nil, NewStorageError("scan_metadata", err)
		}
		var values []string
		if err := json.Unmarshal([]byte(valuesJSON), &values); err != nil {
			return nil, NewStorageError("decode_metadata", err)
		}
		meta.Append(name, values...)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("load_metadata", err)
	}
	return meta, nil
}

// loadDimensions rebuilds the ordered dimension set for a dataset.
func (s *Store) loadDimensions(ctx context.Context, id string) (table.DimensionSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, role, members_json FROM dataset_dimensions WHERE dataset_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, NewStorageError("load_dimensions", err)
	}
	defer rows.Close()

	var dims table.DimensionSet
	for rows.Next() {
		var name, role, membersJSON string
		if err := rows.Scan(&name, &role, &membersJSON); err != nil {
			return nil, NewStorageError("scan_dimension", err)
		}
		var members []string
		if err := json.Unmarshal([]byte(membersJSON), &members); err != nil {
			return nil, NewStorageError("decode_dimension", err)
		}
		dims = append(dims, table.Dimension{
			Name:    name,
			Role:    table.Role(role),
			Members: members,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("load_dimensions", err)
	}
	return dims, nil
}

// loadRows rebuilds the expanded data rows for a dataset, recomputing
// the labels from the dimension set.
func (s *Store) loadRows(ctx context.Context, id string, dims table.DimensionSet) ([]table.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM dataset_rows WHERE dataset_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return nil, NewStorageError("load_rows", err)
	}
	defer rows.Close()

	out := []table.Row{}
	i := 0
	for rows.Next() {
		var value sql.NullFloat64
		if err := rows.Scan(&value); err != nil {
			return nil, NewStorageError("scan_row", err)
		}
		v := math.NaN()
		if value.Valid {
			v = value.Float64
		}
		out = append(out, table.Row{Labels: dims.LabelsAt(i), Value: v})
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("load_rows", err)
	}
	return out, nil
}
