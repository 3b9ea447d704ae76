package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

func TestSolarHijri(t *testing.T) {
	cases := []struct {
		date models.Date
		want string
	}{
		{models.NewDate(2024, time.March, 4), "1402/12/14"},
		{models.NewDate(2024, time.March, 20), "1403/01/01"},
		{models.NewDate(2024, time.September, 22), "1403/07/01"},
		{models.NewDate(2025, time.March, 20), "1403/12/30"},
		{models.NewDate(2025, time.March, 21), "1404/01/01"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatSolarHijri(tc.date), tc.date.String())
	}
}
