package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tabworks/pxtab/pkg/cli"
	"tabworks/pxtab/pkg/pcaxis"
)

func TestParseDocumentValidFile(t *testing.T) {
	parseFlags.output = "text"
	parseFlags.encoding = ""

	err := parseDocument(nil, []string{"testdata/population.px"})
	if err != nil {
		t.Errorf("parseDocument() with valid file returned error: %v", err)
	}
}

func TestParseDocumentJSONFormat(t *testing.T) {
	parseFlags.output = "json"
	parseFlags.encoding = ""

	err := parseDocument(nil, []string{"testdata/population.px"})
	if err != nil {
		t.Errorf("parseDocument() with JSON format returned error: %v", err)
	}
}

func TestParseDocumentCSVFormat(t *testing.T) {
	parseFlags.output = "csv"
	parseFlags.encoding = ""

	err := parseDocument(nil, []string{"testdata/population.px"})
	if err != nil {
		t.Errorf("parseDocument() with CSV format returned error: %v", err)
	}
}

func TestParseDocumentUnknownFormat(t *testing.T) {
	parseFlags.output = "xml"
	parseFlags.encoding = ""

	err := parseDocument(nil, []string{"testdata/population.px"})
	if err == nil {
		t.Fatal("parseDocument() with unknown format should return error")
	}

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("error = %T, want *cli.ConfigError", err)
	}
}

func TestParseDocumentNonexistentFile(t *testing.T) {
	parseFlags.output = "text"
	parseFlags.encoding = ""

	err := parseDocument(nil, []string{"testdata/nonexistent.px"})
	if err == nil {
		t.Error("parseDocument() with nonexistent file should return error")
	}
}

func TestParseDocumentMalformedFile(t *testing.T) {
	parseFlags.output = "text"
	parseFlags.encoding = ""

	err := parseDocument(nil, []string{"testdata/malformed.px"})
	if err == nil {
		t.Error("parseDocument() with malformed file should return error")
	}
}

func TestOutputDatasetText(t *testing.T) {
	ds, err := pcaxis.Load(context.Background(), "testdata/population.px", "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	buf := &bytes.Buffer{}
	if err := outputDatasetText(buf, ds); err != nil {
		t.Fatalf("outputDatasetText() error = %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		"Title: Population by area and year",
		"Units: persons",
		"Dimensions: 2",
		"area (stub, 3 members)",
		"year (heading, 2 members)",
		"Rows: 6 (1 missing)",
		"North, 2020: 1234",
		"East, 2021: ..",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestOutputDatasetCSV(t *testing.T) {
	ds, err := pcaxis.Load(context.Background(), "testdata/population.px", "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	buf := &bytes.Buffer{}
	if err := outputDataset(buf, ds, cli.FormatCSV); err != nil {
		t.Fatalf("outputDataset() error = %v", err)
	}
	got := buf.String()

	if !strings.HasPrefix(got, "area,year,value\n") {
		t.Errorf("CSV output missing header:\n%s", got)
	}
	if !strings.Contains(got, "East,2021,..\n") {
		t.Errorf("CSV output missing record with missing value:\n%s", got)
	}
	if lines := strings.Count(got, "\n"); lines != 7 {
		t.Errorf("CSV output has %d lines, want 7 (header + 6 rows)", lines)
	}
}

func TestOutputDatasetJSON(t *testing.T) {
	ds, err := pcaxis.Load(context.Background(), "testdata/population.px", "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	buf := &bytes.Buffer{}
	if err := outputDataset(buf, ds, cli.FormatJSON); err != nil {
		t.Fatalf("outputDataset() error = %v", err)
	}
	got := buf.String()

	for _, want := range []string{
		`"name": "TITLE"`,
		`"labels"`,
		`"value": null`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON output missing %q:\n%s", want, got)
		}
	}
}
