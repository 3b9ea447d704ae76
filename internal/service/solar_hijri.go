package service

import (
	"fmt"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

// gregorianMonthOffsets holds the days before each month in a common year.
var gregorianMonthOffsets = [...]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// solarHijri converts a Gregorian date to the Solar Hijri (Jalali) calendar using the
// 33-year arithmetic cycle.
func solarHijri(d models.Date) (year, month, day int) {
	gy, gm, gd := d.Year, int(d.Month), d.Day
	leapBase := gy
	if gm > 2 {
		leapBase++
	}
	days := 355666 + 365*gy + (leapBase+3)/4 - (leapBase+99)/100 + (leapBase+399)/400 + gd + gregorianMonthOffsets[gm-1]

	year = -1595 + 33*(days/12053)
	days %= 12053
	year += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		year += (days - 1) / 365
		days = (days - 1) % 365
	}
	if days < 186 {
		return year, 1 + days/31, 1 + days%31
	}
	return year, 7 + (days-186)/30, 1 + (days-186)%30
}

func formatSolarHijri(d models.Date) string {
	y, m, day := solarHijri(d)
	return fmt.Sprintf("%04d/%02d/%02d", y, m, day)
}
