package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/noah-isme/mrp-capacity-api/internal/models"
)

// Message keys for capacity texts.
const (
	msgReasonFits            = "capacity.reason.fits"
	msgReasonIncomplete      = "capacity.reason.incomplete"
	msgReasonInvalidDuration = "capacity.reason.invalid_duration"
	msgReasonHoliday         = "capacity.reason.holiday"
	msgReasonNoFreeBlock     = "capacity.reason.no_free_block"
	msgReasonFailed          = "capacity.reason.evaluation_failed"
	msgSearchToday           = "capacity.search.today"
	msgSearchLater           = "capacity.search.later"
	msgSearchNotFound        = "capacity.search.not_found"
)

type localizedEntry struct {
	key string
	en  string
	fa  string
}

var capacityMessages = []localizedEntry{
	{msgReasonFits, "Requested time fits in shift %s between %s and %s.", "زمان درخواستی در شیفت %s بین %s و %s جا می‌شود."},
	{msgReasonIncomplete, "Incomplete information: work center, shift and date are required.", "اطلاعات ناقص است: مرکز کاری، شیفت و تاریخ الزامی هستند."},
	{msgReasonInvalidDuration, "Requested duration must be positive.", "مدت درخواستی باید مثبت باشد."},
	{msgReasonHoliday, "Shift %s on %s is a holiday for %s.", "شیفت %s در تاریخ %s برای %s تعطیل است."},
	{msgReasonNoFreeBlock, "No continuous %s minutes available on %s, shift %s, %s. Largest free gap is %d minutes.", "%s دقیقه پیوسته در %s، شیفت %s، %s آزاد نیست. بزرگ‌ترین بازه آزاد %d دقیقه است."},
	{msgReasonFailed, "Capacity could not be evaluated: %s", "ظرفیت قابل ارزیابی نبود: %s"},
	{msgSearchToday, "Capacity OK: the requested time fits on %s.", "ظرفیت کافی است: زمان درخواستی در %s جا می‌شود."},
	{msgSearchLater, "No capacity on %s. First available date is %s.", "در %s ظرفیت وجود ندارد. اولین تاریخ در دسترس %s است."},
	{msgSearchNotFound, "No capacity found within %d days from %s. %s", "در %d روز از %s ظرفیتی پیدا نشد. %s"},
}

var dateLayouts = map[language.Tag]string{
	language.English: "Mon, Jan 2 2006",
}

// Localizer formats verdict reasons and dates for the caller's locale.
// It only affects presentation; no capacity decision reads its output.
type Localizer struct {
	fallback language.Tag
	tags     []language.Tag
	matcher  language.Matcher
	catalog  catalog.Catalog
}

// NewLocalizer builds the English and Persian catalogs. defaultLocale is used when a
// request locale is empty or unsupported.
func NewLocalizer(defaultLocale string) *Localizer {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, entry := range capacityMessages {
		_ = builder.SetString(language.English, entry.key, entry.en)
		_ = builder.SetString(language.Persian, entry.key, entry.fa)
	}

	tags := []language.Tag{language.English, language.Persian}
	l := &Localizer{
		fallback: language.English,
		tags:     tags,
		matcher:  language.NewMatcher(tags),
		catalog:  builder,
	}
	l.fallback = l.match(defaultLocale)
	return l
}

func (l *Localizer) match(locale string) language.Tag {
	if locale == "" {
		return l.fallback
	}
	// Host applications send POSIX style locales such as fa_IR.
	desired, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(locale, "_", "-"))
	if err != nil || len(desired) == 0 {
		return l.fallback
	}
	_, index, confidence := l.matcher.Match(desired...)
	if confidence == language.No {
		return l.fallback
	}
	return l.tags[index]
}

// Supported reports the canonical locale a request locale resolves to.
func (l *Localizer) Supported(locale string) string {
	return l.match(locale).String()
}

func (l *Localizer) sprintf(locale, key string, args ...interface{}) string {
	printer := message.NewPrinter(l.match(locale), message.Catalog(l.catalog))
	return printer.Sprintf(key, args...)
}

// FormatDate renders a calendar date for display. Persian callers see the
// Solar Hijri calendar as YYYY/MM/DD.
func (l *Localizer) FormatDate(locale string, d models.Date) string {
	tag := l.match(locale)
	if tag == language.Persian {
		return formatSolarHijri(d)
	}
	layout, ok := dateLayouts[tag]
	if !ok {
		layout = models.DateLayout
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(layout)
}

// FormatClock renders an instant as a local wall-clock time.
func (l *Localizer) FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("15:04")
}

// Fits describes the matched free block.
func (l *Localizer) Fits(locale string, shiftID models.ShiftID, gap models.TimeInterval, loc *time.Location) string {
	return l.sprintf(locale, msgReasonFits, string(shiftID), l.FormatClock(gap.Start, loc), l.FormatClock(gap.End, loc))
}

// Incomplete is the reason for requests missing a work center, shift or date.
func (l *Localizer) Incomplete(locale string) string {
	return l.sprintf(locale, msgReasonIncomplete)
}

// InvalidDuration is the reason for non-positive durations.
func (l *Localizer) InvalidDuration(locale string) string {
	return l.sprintf(locale, msgReasonInvalidDuration)
}

// Holiday is the reason for a shift blocked by a calendar leave.
func (l *Localizer) Holiday(locale string, shiftID models.ShiftID, d models.Date, workCenter string) string {
	return l.sprintf(locale, msgReasonHoliday, string(shiftID), l.FormatDate(locale, d), workCenter)
}

// NoFreeBlock cites the largest gap so callers see how close the request came.
func (l *Localizer) NoFreeBlock(locale string, minutes float64, workCenter string, shiftID models.ShiftID, d models.Date, largestGap int) string {
	return l.sprintf(locale, msgReasonNoFreeBlock, strconv.FormatFloat(math.Trunc(minutes), 'f', 0, 64), workCenter, string(shiftID), l.FormatDate(locale, d), largestGap)
}

// EvaluationFailed carries the text of an unexpected per-day failure.
func (l *Localizer) EvaluationFailed(locale string, err error) string {
	return l.sprintf(locale, msgReasonFailed, err.Error())
}

// SearchMessage phrases a successful search outcome.
func (l *Localizer) SearchMessage(locale string, result *models.SearchResult) string {
	if result.Outcome == models.OutcomeAvailableToday {
		return l.sprintf(locale, msgSearchToday, l.FormatDate(locale, result.ResolvedDate))
	}
	return l.sprintf(locale, msgSearchLater, l.FormatDate(locale, result.RequestedDate), l.FormatDate(locale, result.ResolvedDate))
}

// NotFound phrases an exhausted search with the requested date's reason.
func (l *Localizer) NotFound(locale string, horizon int, start models.Date, reason string) string {
	return l.sprintf(locale, msgSearchNotFound, horizon, l.FormatDate(locale, start), reason)
}
