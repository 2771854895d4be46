package console

import (
	"bytes"
	"testing"
)

func TestWriteBorrowersCSV(t *testing.T) {
	rows := []BorrowerRow{
		{ID: 1, Name: "Ada Obi", Phone: "08011111111", Address: "12 Market Rd"},
		{ID: 2, Name: `Bola "BJ" Ade`, Phone: "", Address: "3 Mill Lane"},
	}

	var buf bytes.Buffer
	if err := WriteBorrowersCSV(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "ID,Name,Phone,Address\n" +
		"1,Ada Obi,08011111111,12 Market Rd\n" +
		"2,\"Bola \"\"BJ\"\" Ade\",,3 Mill Lane\n"
	if buf.String() != want {
		t.Fatalf("csv mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteBorrowersCSV_EmptyListStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBorrowersCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "ID,Name,Phone,Address\n" {
		t.Fatalf("got %q", buf.String())
	}
}
