// Package validation holds the pure input checks run on raw strings before any
// entity is constructed.
package validation

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/errors"
)

const (
	MaxTagLength         = 20
	MaxPasswordLength    = 32
	MaxDescriptionLength = 99

	MinYear            = 1700
	MaxBirthYear       = 2006
	MaxTransactionYear = 9999
)

// IsLettersOnly reports whether s is non-empty and made only of ASCII letters.
func IsLettersOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'z' || (c > 'Z' && c < 'a') {
			return false
		}
	}
	return true
}

// IsDigitsOnly reports whether s is non-empty and made only of 0-9.
func IsDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsDecimalDigitsOnly reports whether s is non-empty and made only of 0-9, '.'
// and ','.
func IsDecimalDigitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' && c != ',' {
			return false
		}
	}
	return true
}

// PasswordsDiffer reports whether a and b are not identical.
func PasswordsDiffer(a, b string) bool {
	return a != b
}

// IsKnownAccountType reports whether s names a sub-account type. Case-sensitive.
func IsKnownAccountType(s string) bool {
	for _, t := range domain.SubAccountTypes {
		if s == t {
			return true
		}
	}
	return false
}

// ParseAmount reads the longest decimal prefix of s. '.' is the only decimal
// separator: a ',' ends the number ("12,5" is 12) and so does a second '.'
// ("1.2.3" is 1.2). A string with no digits before the stop parses as zero.
func ParseAmount(s string) decimal.Decimal {
	end := len(s)
	seenDot := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' && !seenDot {
			seenDot = true
			continue
		}
		if c < '0' || c > '9' {
			end = i
			break
		}
	}

	prefix := strings.TrimSuffix(s[:end], ".")
	if prefix == "" {
		return decimal.Zero
	}
	if strings.HasPrefix(prefix, ".") {
		prefix = "0" + prefix
	}

	amount, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// dateErrors lists the error kinds of one calendar check, in check order.
type dateErrors struct {
	dayNotNumber, monthNotNumber, yearNotNumber error
	yearTooOld, yearTooLarge                    error
	monthOutOfRange, dayOutOfRange              error
	beyondMonthEnd, beyondFebruary, notLeapYear error
}

var birthDateErrors = dateErrors{
	dayNotNumber:    errors.ErrBirthDayNotNumber,
	monthNotNumber:  errors.ErrBirthMonthNotNumber,
	yearNotNumber:   errors.ErrBirthYearNotNumber,
	yearTooOld:      errors.ErrBirthYearTooOld,
	yearTooLarge:    errors.ErrBirthYearUnderage,
	monthOutOfRange: errors.ErrBirthMonthOutOfRange,
	dayOutOfRange:   errors.ErrBirthDayOutOfRange,
	beyondMonthEnd:  errors.ErrBirthDayBeyondMonthEnd,
	beyondFebruary:  errors.ErrBirthDayBeyondFebruary,
	notLeapYear:     errors.ErrBirthDayNotLeapYear,
}

var transactionDateErrors = dateErrors{
	dayNotNumber:    errors.ErrDateDayNotNumber,
	monthNotNumber:  errors.ErrDateMonthNotNumber,
	yearNotNumber:   errors.ErrDateYearNotNumber,
	yearTooOld:      errors.ErrDateYearTooOld,
	yearTooLarge:    errors.ErrDateYearTooLarge,
	monthOutOfRange: errors.ErrDateMonthOutOfRange,
	dayOutOfRange:   errors.ErrDateDayOutOfRange,
	beyondMonthEnd:  errors.ErrDateDayBeyondMonthEnd,
	beyondFebruary:  errors.ErrDateDayBeyondFebruary,
	notLeapYear:     errors.ErrDateDayNotLeapYear,
}

// ValidateBirthDate checks a birthday given as raw strings and returns it.
// The year must fall in [1700, 2006]; 2006 is the fixed minimum-age cutoff.
func ValidateBirthDate(day, month, year string) (domain.Date, error) {
	return validateCalendarDate(day, month, year, MaxBirthYear, birthDateErrors)
}

// ValidateTransactionDate checks a transaction date given as raw strings. The
// date must not precede latest, the account's most recent transaction, when
// there is one.
func ValidateTransactionDate(day, month, year string, latest *domain.Transaction) (domain.Date, error) {
	date, err := validateCalendarDate(day, month, year, MaxTransactionYear, transactionDateErrors)
	if err != nil {
		return domain.Date{}, err
	}
	if latest != nil && date.Before(latest.Date()) {
		return domain.Date{}, errors.ErrDatePrecedesLatest
	}
	return date, nil
}

func validateCalendarDate(day, month, year string, maxYear int, kinds dateErrors) (domain.Date, error) {
	if !IsDigitsOnly(day) {
		return domain.Date{}, kinds.dayNotNumber
	}
	if !IsDigitsOnly(month) {
		return domain.Date{}, kinds.monthNotNumber
	}
	if !IsDigitsOnly(year) {
		return domain.Date{}, kinds.yearNotNumber
	}

	d := parseBounded(day)
	m := parseBounded(month)
	y := parseBounded(year)

	if y < MinYear {
		return domain.Date{}, kinds.yearTooOld
	}
	if y > uint64(maxYear) {
		return domain.Date{}, kinds.yearTooLarge
	}
	if m < 1 || m > 12 {
		return domain.Date{}, kinds.monthOutOfRange
	}
	if d < 1 || d > 31 {
		return domain.Date{}, kinds.dayOutOfRange
	}
	if d == 31 && (m == 2 || m == 4 || m == 6 || m == 9 || m == 11) {
		return domain.Date{}, kinds.beyondMonthEnd
	}
	if d == 30 && m == 2 {
		return domain.Date{}, kinds.beyondFebruary
	}
	// Every fourth year is a leap year; century years are not special-cased.
	if d == 29 && m == 2 && y%4 != 0 {
		return domain.Date{}, kinds.notLeapYear
	}

	return domain.NewDate(int(d), int(m), int(y)), nil
}

// parseBounded parses a digits-only string, saturating on overflow so huge
// inputs still fail the range checks.
func parseBounded(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return ^uint64(0)
	}
	return v
}
