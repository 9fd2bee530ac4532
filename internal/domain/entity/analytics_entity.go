package entity

import "time"

// MonthlyCount is one point of an analytics series.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// MonthBucket is a raw per-month count as returned by storage; Start is the
// first instant of the month in UTC.
type MonthBucket struct {
	Start time.Time
	Count int64
}
