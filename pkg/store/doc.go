// Package store persists parsed PX datasets in SQLite.
//
// # Layout
//
// A dataset is stored across four tables:
//
//   - datasets: one row per stored dataset (source, locator, title,
//     units, row count, timestamp)
//   - dataset_metadata: the ordered attribute list, one row per key,
//     values as a JSON array
//   - dataset_dimensions: the ordered dimension set, members as a JSON
//     array
//   - dataset_rows: the expanded cells in row-major order; a NULL value
//     encodes a missing (NaN) cell
//
// Row labels are not stored. They are recomputed from the dimension set
// on load, which keeps the rows table at one REAL per cell.
//
// # Drivers
//
// The SQLite driver is selected at build time: cgo builds use
// mattn/go-sqlite3, CGO_ENABLED=0 builds fall back to the pure Go
// modernc.org/sqlite. Both receive the journal mode and busy timeout
// through the DSN so every pooled connection is configured alike.
//
// # Basic Usage
//
//	st, err := store.Open(&store.Config{
//	    Path:         "data/pxtab.db",
//	    MaxOpenConns: 10,
//	    MaxIdleConns: 5,
//	    WALMode:      true,
//	    BusyTimeout:  5 * time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	id, err := st.SaveDataset(ctx, "population", locator, dataset)
//	if err != nil {
//	    return err
//	}
//
//	record, err := st.GetLatest(ctx, "population")
//	if err != nil {
//	    return err
//	}
//
// # Thread Safety
//
// A Store is safe for concurrent use. Saves run in transactions, WAL
// mode keeps readers unblocked during writes, and the busy timeout
// bounds lock waits.
//
// # History
//
// Every save creates a new record rather than replacing the previous
// one, so refresh history is queryable; GetLatest resolves the current
// dataset per source and DeleteBefore prunes old records.
package store
