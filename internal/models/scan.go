package models

// Label is the classifier verdict for a piece of text.
type Label string

const (
	LabelFraud Label = "FRAUD"
	LabelSafe  Label = "SAFE"
)

// Valid reports whether l is one of the two known labels.
func (l Label) Valid() bool {
	return l == LabelFraud || l == LabelSafe
}

// ScanRecord is one logged classification.
type ScanRecord struct {
	ID         int64   `json:"id" db:"id"`
	Email      string  `json:"email" db:"email"`
	Result     Label   `json:"result" db:"result"`
	Confidence float64 `json:"confidence" db:"confidence"` // percentage, 0-100
}

// ScanRequest is the JSON body accepted by the scan API.
type ScanRequest struct {
	Email string `json:"email"`
}

// ScanResult is what the scanner hands back to handlers.
type ScanResult struct {
	Record          *ScanRecord `json:"record"`
	HighlightedText string      `json:"highlighted_text"`
}

// ScanStats aggregates the scans table.
type ScanStats struct {
	TotalScans int           `json:"total_scans"`
	ByResult   map[Label]int `json:"by_result"`
	TotalGames int           `json:"total_games"`
}
