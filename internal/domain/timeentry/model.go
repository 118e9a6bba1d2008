package timeentry

import (
	"time"

	"github.com/rpggio/showbill/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// LocationType says where the work happened.
type LocationType string

const (
	LocationOnSite   LocationType = "On-Site"
	LocationInOffice LocationType = "In-Office"
	LocationTravel   LocationType = "Travel"
)

// Valid reports whether l is a known location.
func (l LocationType) Valid() bool {
	switch l {
	case LocationOnSite, LocationInOffice, LocationTravel:
		return true
	}
	return false
}

// WorkType classifies the work performed.
type WorkType string

const (
	WorkVirtualMeeting WorkType = "Virtual Meeting"
	WorkTravelDay      WorkType = "Travel Day"
	WorkSetup          WorkType = "Setup"
	WorkShowDay        WorkType = "Show Day"
	WorkDismantle      WorkType = "Dismantle"
	WorkOther          WorkType = "Other"
)

// Valid reports whether w is a known work type.
func (w WorkType) Valid() bool {
	switch w {
	case WorkVirtualMeeting, WorkTravelDay, WorkSetup, WorkShowDay, WorkDismantle, WorkOther:
		return true
	}
	return false
}

const (
	DefaultDescription = "Work"
	DefaultStartTime   = "09:00"
	DefaultEndTime     = "17:00"
)

// DefaultHourlyRate applies when an entry is added without a rate.
var DefaultHourlyRate = decimal.NewFromInt(60)

// TimeEntry is one block of billable work on a show.
type TimeEntry struct {
	ID           string          `json:"id"`
	ShowID       string          `json:"show_id"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	LocationType LocationType    `json:"location_type"`
	WorkType     WorkType        `json:"work_type"`
	StartTime    string          `json:"start_time"`
	EndTime      string          `json:"end_time"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Hours is the elapsed time between start and end.
func (e TimeEntry) Hours() decimal.Decimal {
	return billing.ElapsedHours(e.StartTime, e.EndTime)
}

// Line adapts the entry for the billing aggregator.
func (e TimeEntry) Line() billing.HoursLine {
	return billing.HoursLine{Start: e.StartTime, End: e.EndTime, Rate: e.HourlyRate}
}

// Lines adapts a slice of entries for the billing aggregator.
func Lines(entries []TimeEntry) []billing.HoursLine {
	lines := make([]billing.HoursLine, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}
	return lines
}
