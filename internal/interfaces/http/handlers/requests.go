package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

// parseOptionalDate converts a bound YYYY-MM-DD field.
func parseOptionalDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := biztime.ParseDate(raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+field, "expected YYYY-MM-DD")
	}
	return &d, nil
}

// parseMoney converts a decimal request amount into cents.
func parseMoney(field string, d *decimal.Decimal) (*sharedvo.Money, error) {
	if d == nil {
		return nil, nil
	}
	m, err := sharedvo.MoneyFromDecimal(*d)
	if err != nil {
		return nil, errors.NewValidationError("invalid "+field, err.Error())
	}
	return &m, nil
}

// bindOptionalJSON binds a JSON body when one was sent and leaves obj at its
// zero value otherwise.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(obj)
}
