package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/jengzang/travel-report-go/internal/models"
	"github.com/jengzang/travel-report-go/internal/spatial"
)

var (
	stayColor   = color.New(color.FgGreen)
	travelColor = color.New(color.FgCyan)
	gapColor    = color.New(color.FgHiBlack)
	headColor   = color.New(color.Bold)
)

func render(w io.Writer, rpt *models.TravelReport, loc *time.Location) {
	headColor.Fprintf(w, "Travel report for %s\n", rpt.EntityID)
	fmt.Fprintf(w, "%d samples, %s to %s\n\n", rpt.SampleCount, clock(rpt.WindowStart, loc, true), clock(rpt.WindowEnd, loc, true))

	for _, e := range rpt.Entries {
		span := fmt.Sprintf("%s - %s %8s", clock(e.StartTime, loc, false), clock(e.EndTime, loc, false), duration(e.Duration))
		switch e.Kind {
		case models.EntryKindStationary:
			stayColor.Fprintf(w, "%s  STAY    ", span)
			fmt.Fprintf(w, "%s (%d samples)\n", e.Stationary.Address, e.Stationary.SampleCount)
		case models.EntryKindTravel:
			t := e.Travel
			travelColor.Fprintf(w, "%s  TRAVEL  ", span)
			fmt.Fprintf(w, "%s -> %s, %.1f mi %s @ %.1f mph\n",
				place(t.StartCity, t.StartRegion, t.StartLat, t.StartLon),
				place(t.EndCity, t.EndRegion, t.EndLat, t.EndLon),
				t.DistanceMiles, spatial.Heading(t.StartLat, t.StartLon, t.EndLat, t.EndLon), t.AvgSpeedMPH)
		case models.EntryKindDataGap:
			gapColor.Fprintf(w, "%s  NO DATA\n", span)
		}
	}

	s := rpt.Summary
	fmt.Fprintf(w, "\n%d stays (%s), %d trips (%s, %.1f mi), %d gaps (%s)\n",
		s.StationaryCount, duration(s.StationaryDuration),
		s.TravelCount, duration(s.TravelDuration), s.TotalDistanceMiles,
		s.DataGapCount, duration(s.DataGapDuration))
}

func clock(ms int64, loc *time.Location, withDate bool) string {
	t := time.UnixMilli(ms).In(loc)
	if withDate {
		return t.Format("2006-01-02 15:04")
	}
	return t.Format("15:04")
}

func duration(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Minute).String()
}

func place(city, region *string, lat, lon float64) string {
	switch {
	case city != nil && region != nil:
		return *city + ", " + *region
	case city != nil:
		return *city
	case region != nil:
		return *region
	default:
		return fmt.Sprintf("(%.4f, %.4f)", lat, lon)
	}
}
