package upstream

import (
	"strings"
	"time"

	"regadmin/dashboard/internal/model"
)

const dateLayout = "2006-01-02"

func NormalizeType(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// MatchesType compares registration types case-insensitively. An empty or
// "all" filter matches everything.
func MatchesType(value, filter string) bool {
	f := NormalizeType(filter)
	if f == "" || f == "all" {
		return true
	}
	return NormalizeType(value) == f
}

// InDateRange reports whether t falls on or between the from and to days.
// Bounds that are empty or not YYYY-MM-DD are ignored.
func InDateRange(t time.Time, from, to string) bool {
	t = t.UTC()
	if start, err := time.Parse(dateLayout, strings.TrimSpace(from)); err == nil && t.Before(start) {
		return false
	}
	if end, err := time.Parse(dateLayout, strings.TrimSpace(to)); err == nil && !t.Before(end.AddDate(0, 0, 1)) {
		return false
	}
	return true
}

func FilterJobs(jobs []model.StationJob, q JobQuery) []model.StationJob {
	out := make([]model.StationJob, 0, len(jobs))
	for _, job := range jobs {
		if MatchesType(job.RegistrationType, q.RegistrationType) && InDateRange(job.CreatedAt, q.FromDate, q.ToDate) {
			out = append(out, job)
		}
	}
	return out
}

func FilterRegistrations(regs []model.VehicleRegistration, registrationType string) []model.VehicleRegistration {
	out := make([]model.VehicleRegistration, 0, len(regs))
	for _, reg := range regs {
		if MatchesType(reg.RegistrationType, registrationType) {
			out = append(out, reg)
		}
	}
	return out
}

func FilterPermits(permits []model.LearnerPermit, status string) []model.LearnerPermit {
	out := make([]model.LearnerPermit, 0, len(permits))
	for _, permit := range permits {
		if MatchesType(permit.Status, status) {
			out = append(out, permit)
		}
	}
	return out
}

func FilterPlates(plates []model.Plate, status string) []model.Plate {
	out := make([]model.Plate, 0, len(plates))
	for _, plate := range plates {
		if MatchesType(plate.Status, status) {
			out = append(out, plate)
		}
	}
	return out
}

// Paginate returns the 1-based page of size limit. Non-positive values
// return items unchanged. Pages past the end are empty, however large.
func Paginate[T any](items []T, page, limit int) []T {
	if page <= 0 || limit <= 0 {
		return items
	}
	if len(items) == 0 || page-1 > (len(items)-1)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
