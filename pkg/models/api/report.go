package api

// SalesReport is the JSON shape of a generated report.
type SalesReport struct {
	Columns  []string   `json:"columns"`
	Rows     [][]string `json:"rows"`
	RowCount int        `json:"row_count"`
}
