// Package calendar converts between proleptic Gregorian calendar dates and Julian Day Numbers.
//
// A Julian Day Number (JDN) is a continuous count of days. Day 0 is 24 November 4714 BC in the proleptic Gregorian
// calendar, which this package writes as year -4713 (astronomical year numbering: 1 BC is year 0).
package calendar

import (
	"errors"
	"fmt"
)

// ErrInvalidDate indicates that a year, month and day do not name a day of the proleptic Gregorian calendar
var ErrInvalidDate = errors.New("invalid calendar date")

// monthStart[m-1] is the day of the year on which month m begins in a common year
var monthStart = [12]int{1, 32, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}

var monthLength = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year has 366 days: divisible by 4, and not by 100 unless also by 400
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month (1-12) of year. It returns 0 for a month outside 1-12.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}

	if month == 2 && IsLeapYear(year) {
		return 29
	}

	return monthLength[month-1]
}

// DateToJDN returns the Julian Day Number of a proleptic Gregorian date. Any year is accepted, including zero and
// negative years. [ErrInvalidDate] is returned if month is not in 1-12 or day is not a day of that month.
func DateToJDN(year, month, day int) (int64, error) {
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d is not in the range 1-12", ErrInvalidDate, month)
	}

	if days := DaysInMonth(year, month); day < 1 || day > days {
		return 0, fmt.Errorf("%w: day %d is not in the range 1-%d for %d-%02d", ErrInvalidDate, day, days, year, month)
	}

	// Shift the year to start in March, so that the leap day is the last day of the (shifted) year
	a := int64((14 - month) / 12)
	y := int64(year) + 4800 - a
	m := int64(month) + 12*a - 3

	// y can be negative for years before -4800, hence the floored divisions
	return int64(day) + (153*m+2)/5 + 365*y + FloorDiv(y, 4) - FloorDiv(y, 100) + FloorDiv(y, 400) - 32045, nil
}

// JDNToDate returns the proleptic Gregorian date of a Julian Day Number. It is the exact inverse of [DateToJDN].
func JDNToDate(jdn int64) (year, month, day int) {
	a := jdn + 32044

	// 400-year cycles, then the century within the cycle
	b := FloorDiv(4*a+3, 146097)
	c := a - FloorDiv(146097*b, 4)

	// 4-year cycles, then the year within the cycle
	d := FloorDiv(4*c+3, 1461)
	e := c - FloorDiv(1461*d, 4)

	// Month counted from March
	m := (5*e + 2) / 153

	day = int(e - (153*m+2)/5 + 1)
	month = int(m + 3 - 12*(m/10))
	year = int(100*b + d - 4800 + m/10)

	return year, month, day
}

// DayOfWeek returns the day of the week of a Julian Day Number, from 1 (Sunday) to 7 (Saturday)
func DayOfWeek(jdn int64) int {
	return int(FloorMod(jdn+1, 7)) + 1
}

// DayOfYear returns the ordinal day (1-366) within the year of a Julian Day Number
func DayOfYear(jdn int64) int {
	year, month, day := JDNToDate(jdn)

	yday := monthStart[month-1] + day - 1
	if month > 2 && IsLeapYear(year) {
		yday++
	}

	return yday
}

// FloorDiv divides a by b, rounding towards negative infinity. b must be positive.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if a%b < 0 {
		q--
	}

	return q
}

// FloorMod returns the remainder of [FloorDiv], which always lies in [0, b). b must be positive.
func FloorMod(a, b int64) int64 {
	r := a % b
	if r < 0 {
		r += b
	}

	return r
}
