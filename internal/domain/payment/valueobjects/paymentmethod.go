package valueobjects

import (
	"fmt"
	"strings"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOther    PaymentMethod = "other"
)

// AllPaymentMethods lists the methods in reporting order.
var AllPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCard,
	PaymentMethodTransfer,
	PaymentMethodOther,
}

// aliases accepts the Spanish names used at the front desk.
var aliases = map[string]PaymentMethod{
	"efectivo":      PaymentMethodCash,
	"tarjeta":       PaymentMethodCard,
	"transferencia": PaymentMethodTransfer,
	"otro":          PaymentMethodOther,
}

// NewPaymentMethod parses a method name case-insensitively, accepting aliases.
func NewPaymentMethod(method string) (PaymentMethod, error) {
	key := strings.ToLower(strings.TrimSpace(method))
	if alias, ok := aliases[key]; ok {
		return alias, nil
	}
	pm := PaymentMethod(key)
	if !pm.IsValid() {
		return "", fmt.Errorf("invalid payment method: %s", method)
	}
	return pm, nil
}

func (pm PaymentMethod) IsValid() bool {
	switch pm {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	default:
		return false
	}
}

func (pm PaymentMethod) String() string {
	return string(pm)
}
