package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the dataset database schema.
const Schema = `
-- Stored dataset index
CREATE TABLE IF NOT EXISTS datasets (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    locator TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    units TEXT NOT NULL DEFAULT '',
    row_count INTEGER NOT NULL,
    stored_at INTEGER NOT NULL
);

-- Ordered metadata attributes per dataset
CREATE TABLE IF NOT EXISTS dataset_metadata (
    dataset_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    values_json TEXT NOT NULL,
    PRIMARY KEY (dataset_id, position)
);

-- Ordered dimensions per dataset, members in declaration order
CREATE TABLE IF NOT EXISTS dataset_dimensions (
    dataset_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL,
    members_json TEXT NOT NULL,
    PRIMARY KEY (dataset_id, position)
);

-- Expanded data cells in row-major order; NULL encodes a missing cell
CREATE TABLE IF NOT EXISTS dataset_rows (
    dataset_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    value REAL,
    PRIMARY KEY (dataset_id, position)
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_datasets_source ON datasets(source);
CREATE INDEX IF NOT EXISTS idx_datasets_stored_at ON datasets(stored_at);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`
