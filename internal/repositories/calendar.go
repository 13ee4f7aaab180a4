package repositories

import (
	"time"

	"listing-search/internal/models"
)

// annotateRecords resolves each record's calendar for the queried range and drops the
// ones that cannot be booked: a missing or unavailable night, or an average price outside
// the query bounds. dates may span beyond the range; blocked (held but not sold) and
// turnover dates are collected from today onward.
func annotateRecords(records []models.PropertyRecord, dates []models.PropertyDate, q models.ListingQuery, today time.Time) []models.PropertyRecord {
	byProperty := make(map[int64][]models.PropertyDate, len(records))
	for _, d := range dates {
		byProperty[d.PropertyID] = append(byProperty[d.PropertyID], d)
	}

	nights := q.DateRange.Nights()
	today = models.ToDate(today)
	out := make([]models.PropertyRecord, 0, len(records))
	for _, rec := range records {
		var (
			total      int64
			booked     int
			unbookable bool
		)
		rec.BlockedDates, rec.CheckInDates, rec.CheckOutDates = nil, nil, nil
		for _, d := range byProperty[rec.ID] {
			day := models.ToDate(d.Date)
			if q.DateRange.Includes(day) {
				if d.IsBlock || !d.IsAvailable {
					unbookable = true
					break
				}
				total += d.Price
				booked++
			}
			if day.Before(today) {
				continue
			}
			if d.IsBlock && d.IsAvailable {
				rec.BlockedDates = append(rec.BlockedDates, day)
			}
			if d.IsCheckIn {
				rec.CheckInDates = append(rec.CheckInDates, day)
			}
			if d.IsCheckOut {
				rec.CheckOutDates = append(rec.CheckOutDates, day)
			}
		}
		if unbookable || nights <= 0 || booked != nights {
			continue
		}
		rec.AvgNightlyPrice = float64(total) / float64(nights)
		if rec.AvgNightlyPrice < float64(q.MinPrice) || rec.AvgNightlyPrice > float64(q.MaxPrice) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// calendarStart is the earliest date whose calendar rows a query needs.
func calendarStart(dr models.DateRange, today time.Time) time.Time {
	today = models.ToDate(today)
	if dr.Checkin.Before(today) {
		return dr.Checkin
	}
	return today
}
