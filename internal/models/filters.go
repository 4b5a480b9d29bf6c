package models

// ReportFilter represents query parameters for generating a report
type ReportFilter struct {
	EntityID  string `form:"-"`
	StartTime int64  `form:"startTime"` // Unix timestamp in milliseconds, 0 means unbounded
	EndTime   int64  `form:"endTime"`   // Unix timestamp in milliseconds, 0 means unbounded
	Raw       bool   `form:"raw"`       // Skip gap bridging and return the first pass only
}
