package domain

// ReportState is the persisted state of a report manager, suitable for
// embedding in a larger save-file blob.
type ReportState struct {
	HistoricalData   []TurnSnapshot `json:"historical_data"`
	ReportsGenerated int            `json:"reports_generated"`
}
