package domain

// WarnAmountMismatch marks rows whose stated gross total deviates from
// quantity x gross unit price beyond tolerance. Advisory only.
const WarnAmountMismatch = "REVISA"

// Columns is the fixed ordered output header. The names are the contract
// with the spreadsheet consumers of the report and must not be reordered.
var Columns = []string{
	"Tipo de Documento",
	"Numero Documento",
	"Fecha de Emisión",
	"Tracking number",
	"Sucursal",
	"Vendedor",
	"Nombre Cliente",
	"Cliente RUT",
	"Lista de Precio",
	"Moneda",
	"SKU",
	"Producto / Servicio",
	"Precio de Lista",
	"Precio Neto Unitario",
	"Precio Bruto Unitario",
	"Cantidad",
	"Venta Total Neta",
	"Total Impuestos",
	"Venta Total Bruta",
	"Descuento Bruto",
	"% Descuento",
	"Costo neto unitario",
	"Costo Total Neto",
	"Margen",
	"% Margen",
}

// WarnColumn is appended to Columns only when at least one row is flagged.
const WarnColumn = "_warn_monto"

// ReportRow is one line item joined with its parent document's reconciled
// fields plus the computed financial fields. Never mutated after the
// consistency annotation pass.
type ReportRow struct {
	DocumentType   string
	DocumentNumber string
	EmissionDate   string
	TrackingRef    string
	Office         string
	Salesperson    string
	CustomerName   string
	CustomerCode   string
	PriceList      string
	Currency       string
	SKU            string
	Product        string
	ListPrice      float64
	NetUnitPrice   float64
	GrossUnitPrice float64
	Quantity       float64
	NetTotal       float64
	TaxTotal       float64
	GrossTotal     float64
	GrossDiscount  float64
	DiscountPct    float64
	UnitCost       float64
	CostTotal      float64
	Margin         float64
	MarginPct      float64
	Warning        string
}

// SalesReport is the final denormalized table, one row per line item.
type SalesReport struct {
	Rows []ReportRow
}

// HasWarnings reports whether any row carries a consistency annotation.
func (r *SalesReport) HasWarnings() bool {
	for _, row := range r.Rows {
		if row.Warning != "" {
			return true
		}
	}
	return false
}

// Header returns the ordered output header, including the advisory column
// when any row is flagged.
func (r *SalesReport) Header() []string {
	header := append([]string(nil), Columns...)
	if r.HasWarnings() {
		header = append(header, WarnColumn)
	}
	return header
}
