package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mrp-capacity-api/internal/middleware"
	"github.com/noah-isme/mrp-capacity-api/internal/service"
	appErrors "github.com/noah-isme/mrp-capacity-api/pkg/errors"
)

// TimezoneHeader lets callers without a tz claim pick the evaluation zone.
const TimezoneHeader = "X-Timezone"

// evaluationContext resolves the caller's zone and locale. An explicit zone wins over the
// token claim, which wins over the X-Timezone header and then the server default.
func evaluationContext(c *gin.Context, explicitTZ string, fallback *time.Location) (service.EvaluationContext, error) {
	ec := service.EvaluationContext{Location: fallback}
	claims := middleware.ClaimsFrom(c)

	tz := explicitTZ
	if tz == "" && claims != nil {
		tz = claims.Timezone
	}
	if tz == "" {
		tz = c.GetHeader(TimezoneHeader)
	}
	if tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return ec, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown time zone "+tz)
		}
		ec.Location = loc
	}

	if claims != nil && claims.Lang != "" {
		ec.Locale = claims.Lang
	} else {
		ec.Locale = c.GetHeader("Accept-Language")
	}
	return ec, nil
}
