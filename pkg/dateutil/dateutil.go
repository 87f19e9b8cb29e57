package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// CompletedMonths returns the number of whole calendar months from fromDate to toDate
func CompletedMonths(fromDate, toDate time.Time) int {
	if toDate.Before(fromDate) {
		return 0
	}
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()-fromDate.Month())
	if toDate.Day() < fromDate.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// HeldLongerThan reports whether an asset bought on purchase and sold on sale
// was held for more than the given number of months
func HeldLongerThan(purchase, sale time.Time, months int) bool {
	return sale.After(AddMonths(purchase, months))
}

// AddMonths moves t forward by months, clamping to the last day of the target
// month instead of rolling over (31 Aug plus six months is 29 Feb in a leap year)
func AddMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	day := t.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// GratuityServiceYears returns completed years of service, counting a trailing
// part year of more than six months as a full year
func GratuityServiceYears(joinDate, leaveDate time.Time) int {
	months := CompletedMonths(joinDate, leaveDate)
	years := months / 12
	if months%12 > 6 {
		years++
	}
	return years
}

// ParseAssessmentYear parses an assessment year label such as "2025-26" and
// returns its starting calendar year
func ParseAssessmentYear(ay string) (int, error) {
	parts := strings.Split(strings.TrimSpace(ay), "-")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("assessment year %q must look like YYYY-YY", ay)
	}
	start, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("assessment year %q: %w", ay, err)
	}
	end, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("assessment year %q: %w", ay, err)
	}
	if (start+1)%100 != end {
		return 0, fmt.Errorf("assessment year %q does not span consecutive years", ay)
	}
	return start, nil
}

// FinancialYearEnd returns 31 March of the financial year assessed in ay
func FinancialYearEnd(ay string) (time.Time, error) {
	start, err := ParseAssessmentYear(ay)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(start, time.March, 31, 0, 0, 0, 0, time.UTC), nil
}

// AssessmentYearFor returns the assessment year in which income earned on date is assessed
func AssessmentYearFor(date time.Time) string {
	start := date.Year()
	if date.Month() > time.March {
		start++
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
