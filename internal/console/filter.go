package console

import "strings"

// The filter functions below recompute a derived subset of a cached list.
// They are pure and order-preserving; an empty query returns the input
// unchanged, and filtering a result again with the same query is a no-op.

func normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// FilterBorrowers matches a case-insensitive substring against name, phone
// and address.
func FilterBorrowers(rows []BorrowerRow, query string) []BorrowerRow {
	q := normalize(query)
	if q == "" {
		return rows
	}
	out := make([]BorrowerRow, 0, len(rows))
	for _, r := range rows {
		if contains(r.Name, q) || contains(r.Phone, q) || contains(r.Address, q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterLoans matches the borrower name as a substring and the status
// exactly; either constraint may be empty.
func FilterLoans(rows []LoanRow, query, status string) []LoanRow {
	q := normalize(query)
	if q == "" && status == "" {
		return rows
	}
	out := make([]LoanRow, 0, len(rows))
	for _, r := range rows {
		if q != "" && !contains(r.BorrowerName, q) {
			continue
		}
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterPayments matches the borrower name as a substring and the payment
// date exactly.
func FilterPayments(rows []PaymentRow, query, date string) []PaymentRow {
	q := normalize(query)
	if q == "" && date == "" {
		return rows
	}
	out := make([]PaymentRow, 0, len(rows))
	for _, r := range rows {
		if q != "" && !contains(r.BorrowerName, q) {
			continue
		}
		if date != "" && r.PaymentDate != date {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterUsers matches username or full name as a substring and the role
// exactly.
func FilterUsers(rows []UserRow, query, role string) []UserRow {
	q := normalize(query)
	if q == "" && role == "" {
		return rows
	}
	out := make([]UserRow, 0, len(rows))
	for _, r := range rows {
		if q != "" && !contains(r.Username, q) && !contains(r.FullName, q) {
			continue
		}
		if role != "" && r.Role != role {
			continue
		}
		out = append(out, r)
	}
	return out
}
