package attendance

import (
	"sort"
	"time"

	"github.com/worklens/worklens-backend-go/internal/config"
	"github.com/worklens/worklens-backend-go/internal/domain/attendance"
	"github.com/worklens/worklens-backend-go/internal/pkg/validator"
)

// Calculator folds raw attendance records into weekly compliance. Policy
// (required office days, work week) is injected configuration.
type Calculator struct {
	requiredOfficeDays int
	workWeek           map[time.Weekday]struct{}
}

func NewCalculator(cfg config.ComplianceConfig) *Calculator {
	workWeek := make(map[time.Weekday]struct{}, len(cfg.WorkWeek))
	for _, day := range cfg.WorkWeek {
		workWeek[day] = struct{}{}
	}
	return &Calculator{
		requiredOfficeDays: cfg.RequiredOfficeDays,
		workWeek:           workWeek,
	}
}

// WeekStart returns the Monday of the Monday–Sunday week containing d,
// truncated to midnight UTC. Sunday maps to the preceding Monday, not the
// next one: with Go's weekday numbering (0=Sunday) the offset is
// (weekday+6)%7, which makes Sunday's correction -6.
func WeekStart(d time.Time) time.Time {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// weekStartsIn lists every week start in [WeekStart(rangeStart),
// WeekStart(rangeEnd)], stepping 7 days, oldest first.
func weekStartsIn(rangeStart, rangeEnd time.Time) []time.Time {
	first := WeekStart(rangeStart)
	last := WeekStart(rangeEnd)

	var starts []time.Time
	for ws := first; !ws.After(last); ws = ws.AddDate(0, 0, 7) {
		starts = append(starts, ws)
	}
	return starts
}

// ComputeWeeklyCompliance folds records into per-employee weekly compliance
// for every week intersecting [rangeStart, rangeEnd]. Every employee present
// in records gets a bucket for every week in range, so weeks without data
// still appear with TotalDaysWithData 0. Records whose week falls outside the
// range are dropped; they must not corrupt other weeks. Output is sorted by
// email ascending, then week start descending, so repeated runs over the same
// input are identical.
func (c *Calculator) ComputeWeeklyCompliance(records []attendance.Record, rangeStart, rangeEnd time.Time) []attendance.WeeklyCompliance {
	starts := weekStartsIn(rangeStart, rangeEnd)

	byEmail := make(map[string][]attendance.Record)
	for _, rec := range records {
		email := validator.NormalizeEmail(rec.Email)
		if email == "" || rec.Date.IsZero() {
			continue
		}
		byEmail[email] = append(byEmail[email], rec)
	}

	emails := make([]string, 0, len(byEmail))
	for email := range byEmail {
		emails = append(emails, email)
	}
	sort.Strings(emails)

	var out []attendance.WeeklyCompliance
	for _, email := range emails {
		out = append(out, c.ComputeEmployeeWeeks(email, byEmail[email], starts)...)
	}
	return out
}

// ComputeEmployeeWeeks folds one employee's records into the given week
// buckets, newest week first.
func (c *Calculator) ComputeEmployeeWeeks(email string, records []attendance.Record, weekStarts []time.Time) []attendance.WeeklyCompliance {
	inRange := make(map[time.Time]struct{}, len(weekStarts))
	for _, ws := range weekStarts {
		inRange[ws] = struct{}{}
	}

	// Dedup per calendar day: a day may carry several partial-location
	// entries, the one with the most logged hours decides the day's
	// location. Ties go to the record seen last, which keeps the result
	// deterministic for a given input order.
	type dayKey struct {
		week time.Time
		day  time.Time
	}
	days := make(map[dayKey]attendance.Record)
	for _, rec := range records {
		day := time.Date(rec.Date.Year(), rec.Date.Month(), rec.Date.Day(), 0, 0, 0, 0, time.UTC)
		week := WeekStart(day)
		if _, ok := inRange[week]; !ok {
			continue
		}
		key := dayKey{week: week, day: day}
		if existing, ok := days[key]; ok && existing.HoursLogged > rec.HoursLogged {
			continue
		}
		days[key] = rec
	}

	weeks := make([]attendance.WeeklyCompliance, 0, len(weekStarts))
	for _, ws := range weekStarts {
		weeks = append(weeks, attendance.WeeklyCompliance{Email: email, WeekStart: ws})
	}

	byWeek := make(map[time.Time]*attendance.WeeklyCompliance, len(weeks))
	for i := range weeks {
		byWeek[weeks[i].WeekStart] = &weeks[i]
	}

	for key, rec := range days {
		week := byWeek[key.week]
		week.TotalDaysWithData++
		switch rec.Location {
		case attendance.LocationOffice:
			week.OfficeDays++
		case attendance.LocationRemote:
			week.RemoteDays++
		}
		// Unknown locations count toward TotalDaysWithData only.
	}

	for i := range weeks {
		weeks[i].IsCompliant = weeks[i].OfficeDays >= c.requiredOfficeDays
	}

	// Most recent week first.
	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart.After(weeks[j].WeekStart)
	})
	return weeks
}

// ClassifyCurrentWeek classifies a still-running week. A week with no data is
// NoData; one already at the office-day threshold is Compliant. Otherwise the
// week is AtRisk while enough workdays remain to reach the threshold, and
// NonCompliant once they do not.
func (c *Calculator) ClassifyCurrentWeek(week attendance.WeeklyCompliance, today time.Time) attendance.WeekStatus {
	if week.TotalDaysWithData == 0 {
		return attendance.StatusNoData
	}
	if week.OfficeDays >= c.requiredOfficeDays {
		return attendance.StatusCompliant
	}
	if week.OfficeDays+c.remainingWorkdays(today) >= c.requiredOfficeDays {
		return attendance.StatusAtRisk
	}
	return attendance.StatusNonCompliant
}

// remainingWorkdays counts work-week days strictly after today within today's
// Monday–Sunday week. Zero on and after the last workday of the week.
func (c *Calculator) remainingWorkdays(today time.Time) int {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	weekEnd := WeekStart(day).AddDate(0, 0, 6)

	count := 0
	for d := day.AddDate(0, 0, 1); !d.After(weekEnd); d = d.AddDate(0, 0, 1) {
		if _, ok := c.workWeek[d.Weekday()]; ok {
			count++
		}
	}
	return count
}

// ComplianceRate returns the percentage of data-bearing weeks that were
// compliant, rounded to the nearest whole percent. Zero when no week in range
// had data.
func ComplianceRate(weeks []attendance.WeeklyCompliance) int {
	withData := 0
	compliant := 0
	for _, week := range weeks {
		if week.TotalDaysWithData == 0 {
			continue
		}
		withData++
		if week.IsCompliant {
			compliant++
		}
	}
	if withData == 0 {
		return 0
	}
	return int(float64(compliant)/float64(withData)*100 + 0.5)
}
