package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gentlix-bank/internal/domain"
	"gentlix-bank/internal/errors"
)

func TestIsLettersOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"johnsmith", true},
		{"JohnSmith", true},
		{"AZaz", true},
		{"", false},
		{"john smith", false},
		{"john1", false},
		{"jo[hn", false},
		{"jo\\hn", false},
		{"jo]hn", false},
		{"jo^hn", false},
		{"jo_hn", false},
		{"jo`hn", false},
		{"jo@hn", false},
		{"jo{hn", false},
		{"jöhn", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsLettersOnly(tt.in), "input %q", tt.in)
	}
}

func TestIsDigitsOnly(t *testing.T) {
	assert.True(t, IsDigitsOnly("0712345678"))
	assert.False(t, IsDigitsOnly(""))
	assert.False(t, IsDigitsOnly("07 12"))
	assert.False(t, IsDigitsOnly("+40"))
	assert.False(t, IsDigitsOnly("1.5"))
}

func TestIsDecimalDigitsOnly(t *testing.T) {
	assert.True(t, IsDecimalDigitsOnly("100"))
	assert.True(t, IsDecimalDigitsOnly("100.50"))
	assert.True(t, IsDecimalDigitsOnly("100,50"))
	assert.True(t, IsDecimalDigitsOnly("."))
	assert.False(t, IsDecimalDigitsOnly(""))
	assert.False(t, IsDecimalDigitsOnly("-5"))
	assert.False(t, IsDecimalDigitsOnly("1e3"))
}

func TestPasswordsDiffer(t *testing.T) {
	assert.False(t, PasswordsDiffer("secret1", "secret1"))
	assert.True(t, PasswordsDiffer("secret1", "Secret1"))
	assert.True(t, PasswordsDiffer("secret1", ""))
}

func TestIsKnownAccountType(t *testing.T) {
	assert.True(t, IsKnownAccountType("savings"))
	assert.True(t, IsKnownAccountType("checking"))
	assert.True(t, IsKnownAccountType("credit"))
	assert.False(t, IsKnownAccountType("Savings"))
	assert.False(t, IsKnownAccountType(""))
	assert.False(t, IsKnownAccountType("loan"))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"100", "100"},
		{"40.25", "40.25"},
		{"12,5", "12"},
		{"1.2.3", "1.2"},
		{".5", "0.5"},
		{"5.", "5"},
		{".", "0"},
		{",5", "0"},
		{"0", "0"},
	}

	for _, tt := range tests {
		want := decimal.RequireFromString(tt.want)
		got := ParseAmount(tt.in)
		assert.True(t, want.Equal(got), "input %q: want %s got %s", tt.in, want, got)
	}
}

func TestValidateBirthDate(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year string
		want             error
	}{
		{"valid", "15", "6", "1990", nil},
		{"leap day divisible by four", "29", "2", "2004", nil},
		{"century leap day accepted", "29", "2", "1900", nil},
		{"lower bound", "1", "1", "1700", nil},
		{"upper bound", "31", "12", "2006", nil},
		{"day not number", "1a", "6", "1990", errors.ErrBirthDayNotNumber},
		{"empty day", "", "6", "1990", errors.ErrBirthDayNotNumber},
		{"month not number", "15", "june", "1990", errors.ErrBirthMonthNotNumber},
		{"year not number", "15", "6", "19-0", errors.ErrBirthYearNotNumber},
		{"year too old", "15", "6", "1699", errors.ErrBirthYearTooOld},
		{"underage", "15", "6", "2010", errors.ErrBirthYearUnderage},
		{"month zero", "15", "0", "1990", errors.ErrBirthMonthOutOfRange},
		{"month thirteen", "15", "13", "1990", errors.ErrBirthMonthOutOfRange},
		{"day zero", "0", "6", "1990", errors.ErrBirthDayOutOfRange},
		{"day thirty two", "32", "1", "1990", errors.ErrBirthDayOutOfRange},
		{"thirty first of april", "31", "4", "1990", errors.ErrBirthDayBeyondMonthEnd},
		{"thirty first of february", "31", "2", "1990", errors.ErrBirthDayBeyondMonthEnd},
		{"thirtieth of february", "30", "2", "1992", errors.ErrBirthDayBeyondFebruary},
		{"leap day in common year", "29", "2", "1990", errors.ErrBirthDayNotLeapYear},
		{"huge year", "1", "1", "99999999999999999999999", errors.ErrBirthYearUnderage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ValidateBirthDate(tt.day, tt.month, tt.year)
			if tt.want == nil {
				require.NoError(t, err)
				assert.False(t, date.IsZero())
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateBirthDateReturnsDate(t *testing.T) {
	date, err := ValidateBirthDate("05", "06", "1990")
	require.NoError(t, err)
	assert.Equal(t, domain.NewDate(5, 6, 1990), date)
}

func TestValidateTransactionDate(t *testing.T) {
	tests := []struct {
		name             string
		day, month, year string
		want             error
	}{
		{"valid", "1", "3", "2024", nil},
		{"far future", "1", "1", "9999", nil},
		{"day not number", "x", "3", "2024", errors.ErrDateDayNotNumber},
		{"month not number", "1", "", "2024", errors.ErrDateMonthNotNumber},
		{"year not number", "1", "3", "twenty", errors.ErrDateYearNotNumber},
		{"year too old", "1", "3", "1500", errors.ErrDateYearTooOld},
		{"five digit year", "1", "3", "10000", errors.ErrDateYearTooLarge},
		{"month out of range", "1", "13", "2024", errors.ErrDateMonthOutOfRange},
		{"day out of range", "32", "3", "2024", errors.ErrDateDayOutOfRange},
		{"thirty first of june", "31", "6", "2024", errors.ErrDateDayBeyondMonthEnd},
		{"thirtieth of february", "30", "2", "2024", errors.ErrDateDayBeyondFebruary},
		{"leap day in common year", "29", "2", "2023", errors.ErrDateDayNotLeapYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTransactionDate(tt.day, tt.month, tt.year, nil)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateTransactionDateOrdering(t *testing.T) {
	latest := domain.NewTransaction(domain.TransactionParams{
		Amount: decimal.NewFromInt(10),
		Type:   domain.TransactionDeposit,
		Date:   domain.NewDate(15, 6, 2024),
	})

	tests := []struct {
		name             string
		day, month, year string
		want             error
	}{
		{"same day", "15", "6", "2024", nil},
		{"next day", "16", "6", "2024", nil},
		{"next month earlier day", "1", "7", "2024", nil},
		{"next year", "1", "1", "2025", nil},
		{"previous day", "14", "6", "2024", errors.ErrDatePrecedesLatest},
		{"previous month later day", "30", "5", "2024", errors.ErrDatePrecedesLatest},
		{"previous year", "31", "12", "2023", errors.ErrDatePrecedesLatest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateTransactionDate(tt.day, tt.month, tt.year, latest)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDateErrorsCarryDistinctResultCodes(t *testing.T) {
	seen := map[int]bool{}
	for _, kinds := range []dateErrors{birthDateErrors, transactionDateErrors} {
		for _, err := range []error{
			kinds.dayNotNumber, kinds.monthNotNumber, kinds.yearNotNumber,
			kinds.yearTooOld, kinds.yearTooLarge, kinds.monthOutOfRange,
			kinds.dayOutOfRange, kinds.beyondMonthEnd, kinds.beyondFebruary, kinds.notLeapYear,
		} {
			code := errors.ResultCode(err)
			assert.False(t, seen[code], "duplicate result code %d", code)
			seen[code] = true
		}
	}
	assert.Len(t, seen, 20)
}
