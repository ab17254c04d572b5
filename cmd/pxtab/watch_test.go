package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tabworks/pxtab/pkg/cli"
)

func TestWatchDocumentRejectsURL(t *testing.T) {
	watchFlags.encoding = ""

	err := watchDocument(nil, []string{"https://example.org/population.px"})
	if err == nil {
		t.Fatal("watchDocument() with URL should return error")
	}

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error = %T, want *cli.ConfigError", err)
	}
}

func TestWatchDocumentNonexistentFile(t *testing.T) {
	watchFlags.encoding = ""

	err := watchDocument(nil, []string{"testdata/nonexistent.px"})
	if err == nil {
		t.Error("watchDocument() with nonexistent file should return error")
	}
}

func TestReportParse(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := reportParse(buf, "testdata/population.px", ""); err != nil {
		t.Fatalf("reportParse() error = %v", err)
	}
	got := buf.String()

	if !strings.Contains(got, "parsed testdata/population.px: 6 rows (1 missing)") {
		t.Errorf("summary = %q, want rows and missing count", got)
	}
}

func TestReportParseMalformed(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := reportParse(buf, "testdata/malformed.px", ""); err == nil {
		t.Error("reportParse() with malformed file should return error")
	}
	if buf.Len() != 0 {
		t.Errorf("reportParse() wrote %q on failure, want nothing", buf.String())
	}
}
