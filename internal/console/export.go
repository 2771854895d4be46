package console

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteBorrowersCSV streams the borrower list as CSV with a header row.
func WriteBorrowersCSV(w io.Writer, rows []BorrowerRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Name", "Phone", "Address"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{strconv.FormatUint(uint64(r.ID), 10), r.Name, r.Phone, r.Address}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
