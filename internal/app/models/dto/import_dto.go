package dto

// ImportRowStatus is the outcome of a single CSV row
type ImportRowStatus string

const (
	ImportRowPending ImportRowStatus = "pending"
	ImportRowInvalid ImportRowStatus = "invalid"
	ImportRowSuccess ImportRowStatus = "success"
	ImportRowError   ImportRowStatus = "error"
)

// ImportRow is one parsed CSV row with its validation or import outcome.
// Password comes from the optional password column and never leaves the
// server in a response.
type ImportRow struct {
	Line     int             `json:"line" example:"2"`
	Name     string          `json:"name" example:"Ayşe Yılmaz"`
	Email    string          `json:"email" example:"ayse@akademi.app"`
	Password string          `json:"-"`
	Status   ImportRowStatus `json:"status" example:"success"`
	Errors   []string        `json:"errors,omitempty"`
}

// ImportPreview is the result of parsing and validating an uploaded file
// before any account is created
type ImportPreview struct {
	Rows         []ImportRow `json:"rows"`
	ValidCount   int         `json:"validCount" example:"2"`
	InvalidCount int         `json:"invalidCount" example:"1"`
}

// ImportResult is the outcome of one attempted row
type ImportResult struct {
	Line    int             `json:"line" example:"2"`
	Name    string          `json:"name" example:"Ayşe Yılmaz"`
	Email   string          `json:"email" example:"ayse@akademi.app"`
	Status  ImportRowStatus `json:"status" example:"success"`
	Message string          `json:"message,omitempty"`
}

// ImportReport is the final per-row report of a bulk import run.
// Progress is 100 once every valid row has been attempted; earlier
// successes are never rolled back by later failures.
type ImportReport struct {
	Results   []ImportResult `json:"results"`
	Total     int            `json:"total" example:"2"`
	Succeeded int            `json:"succeeded" example:"2"`
	Failed    int            `json:"failed" example:"0"`
	Skipped   int            `json:"skipped" example:"1"`
	Progress  float64        `json:"progress" example:"100"`
}
