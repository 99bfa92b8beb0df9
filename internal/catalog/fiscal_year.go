package catalog

import "fmt"

// FiscalYear is an id/name pair, e.g. {"2024-2025", "FY 2024/25"}.
type FiscalYear struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const (
	firstFiscalYear = 2020
	numFiscalYears  = 10
)

var fiscalYears = enumerateFiscalYears(firstFiscalYear, numFiscalYears)

func enumerateFiscalYears(start, n int) []FiscalYear {
	out := make([]FiscalYear, 0, n)
	for y := start; y < start+n; y++ {
		out = append(out, FiscalYear{
			ID:   fmt.Sprintf("%d-%d", y, y+1),
			Name: fmt.Sprintf("FY %d/%02d", y, (y+1)%100),
		})
	}
	return out
}

// FiscalYears returns the fixed fiscal year options, oldest first.
// The returned slice is a copy.
func FiscalYears() []FiscalYear {
	out := make([]FiscalYear, len(fiscalYears))
	copy(out, fiscalYears)
	return out
}

// FiscalYearByID looks up a fiscal year option.
func FiscalYearByID(id string) (FiscalYear, bool) {
	for _, fy := range fiscalYears {
		if fy.ID == id {
			return fy, true
		}
	}
	return FiscalYear{}, false
}
