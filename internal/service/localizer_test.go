package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

func TestLocalizerMatchesLocales(t *testing.T) {
	l := NewLocalizer("en")

	assert.Equal(t, "fa", l.Supported("fa_IR"))
	assert.Equal(t, "fa", l.Supported("fa-IR"))
	assert.Equal(t, "en", l.Supported("en-US"))
	assert.Equal(t, "en", l.Supported(""))
	assert.Equal(t, "en", l.Supported("de-DE"))
	assert.Equal(t, "fa", NewLocalizer("fa").Supported(""))
}

func TestLocalizerFormatsDates(t *testing.T) {
	l := NewLocalizer("en")
	d := models.NewDate(2024, time.March, 4)

	assert.Equal(t, "Mon, Mar 4 2024", l.FormatDate("en", d))
	assert.Equal(t, "1402/12/14", l.FormatDate("fa", d))
}

func TestLocalizerTranslatesReasons(t *testing.T) {
	l := NewLocalizer("en")

	assert.Equal(t, "Requested duration must be positive.", l.InvalidDuration("en"))
	assert.Equal(t, "مدت درخواستی باید مثبت باشد.", l.InvalidDuration("fa"))
	assert.Equal(t, "Capacity could not be evaluated: boom", l.EvaluationFailed("en", errors.New("boom")))
}

func TestLocalizerSearchMessages(t *testing.T) {
	l := NewLocalizer("en")
	today := &models.SearchResult{Outcome: models.OutcomeAvailableToday, ResolvedDate: models.NewDate(2024, time.March, 4)}
	later := &models.SearchResult{
		Outcome:       models.OutcomeAvailableLater,
		RequestedDate: models.NewDate(2024, time.March, 4),
		ResolvedDate:  models.NewDate(2024, time.March, 5),
	}

	assert.Equal(t, "Capacity OK: the requested time fits on Mon, Mar 4 2024.", l.SearchMessage("en", today))
	assert.Equal(t, "No capacity on Mon, Mar 4 2024. First available date is Tue, Mar 5 2024.", l.SearchMessage("en", later))
}

func TestLocalizerNoFreeBlockHugeDuration(t *testing.T) {
	l := NewLocalizer("en")

	reason := l.NoFreeBlock("en", 2e8, "Assembly", models.Shift1, models.NewDate(2024, time.March, 4), 480)

	assert.Equal(t, "No continuous 200000000 minutes available on Assembly, shift 1, Mon, Mar 4 2024. Largest free gap is 480 minutes.", reason)
}
