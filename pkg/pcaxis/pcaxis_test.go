package pcaxis

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tabworks/pxtab/pkg/fetch"
	pxerrors "tabworks/pxtab/pkg/pcaxis/errors"
)

const populationDoc = `CHARSET="ANSI";
AXIS-VERSION="2000";
LANGUAGE="en";
TITLE="Population by region, gender and year";
UNITS="persons";
STUB="region","gender";
HEADING="year";
VALUES("region")="Uusimaa","Lapland";
VALUES("gender")="Male","Female";
VALUES("year")="2019","2020","2021";
SOURCE="Statistics Office";
DATA=
831557 838420 845098
863690 870871 877592
89771 89396 88985
88641 88234 87858;
`

func TestParse_EndToEnd(t *testing.T) {
	ds, err := Parse(populationDoc)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if ds.Title() != "Population by region, gender and year" {
		t.Errorf("Title() = %q", ds.Title())
	}
	if len(ds.Dimensions) != 3 {
		t.Fatalf("len(Dimensions) = %d, want 3", len(ds.Dimensions))
	}
	if ds.RowCount() != 12 {
		t.Fatalf("RowCount() = %d, want 12", ds.RowCount())
	}

	// First cell: first member of every dimension
	first := ds.Rows[0]
	if first.Labels[0] != "Uusimaa" || first.Labels[1] != "Male" || first.Labels[2] != "2019" {
		t.Errorf("Rows[0].Labels = %v", first.Labels)
	}
	if first.Value != 831557 {
		t.Errorf("Rows[0].Value = %v, want 831557", first.Value)
	}

	// Last cell: last member of every dimension
	last := ds.Rows[11]
	if last.Labels[0] != "Lapland" || last.Labels[1] != "Female" || last.Labels[2] != "2021" {
		t.Errorf("Rows[11].Labels = %v", last.Labels)
	}
	if last.Value != 87858 {
		t.Errorf("Rows[11].Value = %v, want 87858", last.Value)
	}
}

func TestParseBytes_EndToEnd(t *testing.T) {
	ds, err := ParseBytes([]byte(populationDoc))
	if err != nil {
		t.Fatalf("ParseBytes() failed: %v", err)
	}
	if ds.RowCount() != 12 {
		t.Errorf("RowCount() = %d, want 12", ds.RowCount())
	}
}

func TestLoad_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(populationDoc))
	}))
	defer server.Close()

	ds, err := Load(context.Background(), server.URL, "")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ds.RowCount() != 12 {
		t.Errorf("RowCount() = %d, want 12", ds.RowCount())
	}
}

func TestLoad_FetchErrorPassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	_, err := Load(context.Background(), server.URL, "")
	if err == nil {
		t.Fatal("Load() succeeded, want fetch error")
	}

	// Transport failures keep their own type, they are not parse errors
	var serr *fetch.StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("error is %T, want *fetch.StatusError", err)
	}
	if pxerrors.TypeOf(err) != "" {
		t.Errorf("fetch error carries parse type %q, want none", pxerrors.TypeOf(err))
	}
}

func TestLoad_ParseErrorAfterFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`TITLE="No data section";`))
	}))
	defer server.Close()

	_, err := Load(context.Background(), server.URL, "")
	if !pxerrors.IsMalformedDocument(err) {
		t.Errorf("error = %v, want malformed document", err)
	}
}
