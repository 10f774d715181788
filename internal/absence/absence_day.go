package absence

import "time"

// Cause classifies why an employee missed a work day.
type Cause string

const (
	CauseNoTimeRecord       Cause = "no_time_record"
	CauseMedicalCertificate Cause = "medical_certificate"
	CauseVacation           Cause = "vacation"
	CauseLicense            Cause = "license"
)

// causePriority orders causes for per-date deduplication. A justified
// absence always masks an unjustified one on the same day.
var causePriority = map[Cause]int{
	CauseMedicalCertificate: 4,
	CauseVacation:           3,
	CauseLicense:            2,
	CauseNoTimeRecord:       1,
}

func (c Cause) Priority() int {
	return causePriority[c]
}

// Day is a value object, computed on demand and never persisted on its own.
type Day struct {
	Date        time.Time `json:"date"`
	Cause       Cause     `json:"type"`
	Description string    `json:"description"`
	Justified   bool      `json:"is_justified"`
}

// dedupeByDate keeps the highest-priority cause per calendar date.
func dedupeByDate(days []Day) []Day {
	unique := make(map[string]Day, len(days))
	for _, day := range days {
		key := day.Date.Format("2006-01-02")
		existing, ok := unique[key]
		if !ok || day.Cause.Priority() > existing.Cause.Priority() {
			unique[key] = day
		}
	}
	out := make([]Day, 0, len(unique))
	for _, day := range unique {
		out = append(out, day)
	}
	return out
}

// CountUnjustified returns how many days bear a discount. Only
// unjustified absences reduce the payable amount; justified days are
// informational.
func CountUnjustified(days []Day) int {
	count := 0
	for _, day := range days {
		if !day.Justified {
			count++
		}
	}
	return count
}
