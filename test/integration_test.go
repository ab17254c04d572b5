//go:build integration

package test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tabworks/pxtab/internal/pxtest"
	"tabworks/pxtab/pkg/catalog"
	"tabworks/pxtab/pkg/config"
	"tabworks/pxtab/pkg/fetch"
	pxerrors "tabworks/pxtab/pkg/pcaxis/errors"
	"tabworks/pxtab/pkg/pcaxis/parser"
	"tabworks/pxtab/pkg/store"
	"tabworks/pxtab/pkg/store/retention"
)

// The tests here run the full service pipeline the way the run command
// wires it: fetch -> parse -> store -> catalog snapshot.

func testStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(&store.Config{
		Path:        filepath.Join(t.TempDir(), "pxtab.db"),
		WALMode:     true,
		BusyTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testCatalog(t *testing.T, st *store.Store, sources ...config.SourceConfig) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(
		&config.CatalogConfig{Sources: sources},
		fetch.New(fetch.DefaultConfig()),
		parser.NewParser(),
		st,
		nil,
	)
	if err != nil {
		t.Fatalf("catalog.New() failed: %v", err)
	}
	return cat
}

func TestPipeline_FileSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	path := pxtest.WriteDocument(t, pxtest.SimpleDocument)
	st := testStore(t)
	cat := testCatalog(t, st, config.SourceConfig{Name: "population", Locator: path})

	if err := cat.RefreshAll(ctx); err != nil {
		t.Fatalf("RefreshAll() failed: %v", err)
	}

	entry, ok := cat.GetEntry("population")
	if !ok {
		t.Fatal("GetEntry() found no entry after refresh")
	}
	if entry.Dataset.RowCount() != 6 {
		t.Errorf("RowCount() = %d, want 6", entry.Dataset.RowCount())
	}
	if entry.Dataset.MissingCount() != 1 {
		t.Errorf("MissingCount() = %d, want 1", entry.Dataset.MissingCount())
	}
	if entry.DatasetID == "" {
		t.Fatal("DatasetID is empty with a store configured")
	}

	// The same dataset is retrievable from the store
	record, err := st.GetLatest(ctx, "population")
	if err != nil {
		t.Fatalf("GetLatest() failed: %v", err)
	}
	if record.ID != entry.DatasetID {
		t.Errorf("GetLatest().ID = %q, want %q", record.ID, entry.DatasetID)
	}
	if record.Dataset.RowCount() != 6 {
		t.Errorf("stored RowCount() = %d, want 6", record.Dataset.RowCount())
	}
	if !record.Dataset.Rows[5].IsMissing() {
		t.Error("withheld cell lost its missing marker in the store")
	}
}

func TestPipeline_HTTPSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	srv := pxtest.NewServer()
	defer srv.Close()
	srv.SetDocument("/stats/population.px", pxtest.ThreeDimDocument)

	st := testStore(t)
	cat := testCatalog(t, st, config.SourceConfig{
		Name:    "population",
		Locator: srv.URL() + "/stats/population.px",
	})

	entry, err := cat.Refresh(ctx, "population")
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if entry.Dataset.RowCount() != 12 {
		t.Errorf("RowCount() = %d, want 12", entry.Dataset.RowCount())
	}
	if srv.RequestCount() != 1 {
		t.Errorf("RequestCount() = %d, want 1", srv.RequestCount())
	}
}

func TestPipeline_CharsetDecoding(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	// Latin-1 document: 0xE4 is "ä"
	doc := "TITLE=\"Befolkning\";\n" +
		"STUB=\"area\";\n" +
		"HEADING=\"year\";\n" +
		"VALUES(\"area\")=\"J\xe4mtland\";\n" +
		"VALUES(\"year\")=\"2024\";\n" +
		"DATA=\n130000;\n"

	ctx := context.Background()
	srv := pxtest.NewServer()
	defer srv.Close()
	srv.SetDocument("/befolkning.px", doc)

	cat := testCatalog(t, nil, config.SourceConfig{
		Name:     "befolkning",
		Locator:  srv.URL() + "/befolkning.px",
		Encoding: "ISO-8859-1",
	})

	entry, err := cat.Refresh(ctx, "befolkning")
	if err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	if got := entry.Dataset.Dimensions[0].Members[0]; got != "Jämtland" {
		t.Errorf("member = %q, want %q", got, "Jämtland")
	}
}

func TestPipeline_FailedRefreshKeepsLastGood(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	path := pxtest.WriteDocument(t, pxtest.SimpleDocument)
	cat := testCatalog(t, nil, config.SourceConfig{Name: "population", Locator: path})

	if _, err := cat.Refresh(ctx, "population"); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}

	// The publisher breaks the file; the snapshot must survive
	if err := os.WriteFile(path, []byte(pxtest.NoDataDocument), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, err := cat.Refresh(ctx, "population")
	if !pxerrors.IsMalformedDocument(err) {
		t.Fatalf("Refresh() error = %v, want malformed document", err)
	}

	entry, ok := cat.GetEntry("population")
	if !ok {
		t.Fatal("GetEntry() lost the last good snapshot")
	}
	if entry.Dataset.RowCount() != 6 {
		t.Errorf("RowCount() = %d, want the last good 6", entry.Dataset.RowCount())
	}
}

func TestPipeline_RetentionTrimsHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	path := pxtest.WriteDocument(t, pxtest.SimpleDocument)
	st := testStore(t)
	cat := testCatalog(t, st, config.SourceConfig{Name: "population", Locator: path})

	// Three refreshes store three history records
	for i := 0; i < 3; i++ {
		if _, err := cat.Refresh(ctx, "population"); err != nil {
			t.Fatalf("Refresh() %d failed: %v", i, err)
		}
	}

	pruner := retention.NewPruner(st, &retention.Config{MaxPerSource: 1})
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		t.Fatalf("Prune() failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Prune() deleted %d, want 2", deleted)
	}

	summaries, err := st.ListDatasets(ctx)
	if err != nil {
		t.Fatalf("ListDatasets() failed: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("len(summaries) = %d, want 1", len(summaries))
	}

	// The survivor is the entry the catalog currently points at
	entry, _ := cat.GetEntry("population")
	if summaries[0].ID != entry.DatasetID {
		t.Errorf("surviving ID = %q, want the catalog's %q", summaries[0].ID, entry.DatasetID)
	}
}
