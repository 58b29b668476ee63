package samplesheet

import (
	"errors"
	"testing"

	"github.com/carbocation/chipqc/qc"
)

var sheetRows = [][]string{
	{"Index", "Array", "Chip ID", "Sample ID"},
	{"1", "HTA2.0", "GSM1", "patient1.N"},
	{"2", "HTA2.0", "GSM2", "patient2.C"},
	{"3", "HTA2.0", "GSM3", "patient3.P"},
	{"4", "HTA2.0", "GSM9", "patient9"},
}

func TestParseDefaultLayout(t *testing.T) {
	records, err := Parse(sheetRows, DefaultLayout)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 || records[1].ChipID != "GSM2" || records[1].GroupLabel != "patient2.C" {
		t.Errorf("Unexpected records %+v", records)
	}
}

func TestParseNamedLayout(t *testing.T) {
	records, err := Parse(sheetRows, Layout{ChipIDColumn: "Chip ID", GroupLabelColumn: "Sample ID"})
	if err != nil {
		t.Fatal(err)
	}
	if records[0].ChipID != "GSM1" || records[0].GroupLabel != "patient1.N" {
		t.Errorf("Unexpected record %+v", records[0])
	}

	for _, layout := range []Layout{
		{ChipIDColumn: "Barcode", GroupLabelColumn: "Sample ID"},
		{ChipIDColumn: "#7", GroupLabelColumn: "#3"},
		{ChipIDColumn: "#x", GroupLabelColumn: "#3"},
	} {
		if _, err := Parse(sheetRows, layout); err == nil {
			t.Errorf("%+v: expected an error", layout)
		}
	}

	if _, err := Parse([][]string{{"a", "b", "Chip ID", "Sample ID"}, {"1", "2"}}, DefaultLayout); err == nil {
		t.Error("Expected an error for a short row")
	}
}

func TestAnnotateInnerJoin(t *testing.T) {
	records, err := Parse(sheetRows, DefaultLayout)
	if err != nil {
		t.Fatal(err)
	}

	// GSM7 is admissible but not in the sheet; GSM3 is in the sheet but not
	// admissible.
	annotated, err := Annotate(qc.NewChipSet("GSM2", "GSM1", "GSM7"), records)
	if err != nil {
		t.Fatal(err)
	}

	expected := []AnnotatedChip{{"GSM1", "N"}, {"GSM2", "C"}}
	if len(annotated) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, annotated)
	}
	for i := range expected {
		if annotated[i] != expected[i] {
			t.Errorf("Position %d: expected %+v, got %+v", i, expected[i], annotated[i])
		}
	}
	if annotated[1].Label() != "GSM2.C" {
		t.Errorf("Unexpected label %s", annotated[1].Label())
	}
}

func TestAnnotateMalformedLabel(t *testing.T) {
	records := []Record{{ChipID: "GSM1", GroupLabel: "X.C"}, {ChipID: "GSM9", GroupLabel: "X"}}

	annotated, err := Annotate(qc.NewChipSet("GSM1"), records)
	if err != nil {
		t.Fatalf("A malformed label on a chip that is not admissible must not abort: %v", err)
	}
	if len(annotated) != 1 || annotated[0].Suffix != "C" {
		t.Errorf("Unexpected annotation %+v", annotated)
	}

	_, err = Annotate(qc.NewChipSet("GSM1", "GSM9"), records)
	var malformed *MalformedLabelError
	if !errors.As(err, &malformed) {
		t.Fatalf("Expected a MalformedLabelError, got %v", err)
	}
	if malformed.ChipID != "GSM9" {
		t.Errorf("Expected the error to name GSM9, got %s", malformed.ChipID)
	}
}

func TestAnnotateUsesRawSheetID(t *testing.T) {
	records := []Record{{ChipID: "GSM1.CEL", GroupLabel: "p1.N"}, {ChipID: "GSM2", GroupLabel: "p2.C"}, {ChipID: "GSM2", GroupLabel: "p2b.N"}}

	annotated, err := Annotate(qc.NewChipSet("GSM1", "GSM2"), records)
	if err != nil {
		t.Fatal(err)
	}
	if len(annotated) != 1 || annotated[0] != (AnnotatedChip{"GSM2", "C"}) {
		t.Errorf("Expected only the first GSM2 record, got %+v", annotated)
	}
}
