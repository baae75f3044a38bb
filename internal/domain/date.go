package domain

import "fmt"

// Date is a calendar day. It carries no validity guarantee of its own; the
// validation package checks it where it is used.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func NewDate(day, month, year int) Date {
	return Date{Day: day, Month: month, Year: year}
}

// Before compares dates as (year, month, day) triples.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
