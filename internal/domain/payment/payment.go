package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	vo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/shared/biztime"
)

const maxReferenceLength = 100

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrMemberMismatch    = errors.New("member does not own the subscription")
	ErrInvalidReference  = errors.New("reference is too long")
)

// Payment is money received against one subscription. Amount, date and the
// owning subscription never change after recording.
type Payment struct {
	id             uint
	subscriptionID uint
	memberID       uint
	amount         sharedvo.Money
	paymentDate    time.Time
	method         vo.PaymentMethod
	reference      string
	notes          string
	createdAt      time.Time
	updatedAt      time.Time
}

// Entry describes a payment to record.
type Entry struct {
	Amount      sharedvo.Money
	PaymentDate time.Time
	Method      vo.PaymentMethod
	Reference   string
	Notes       string
}

func NewPayment(subscriptionID, memberID uint, e Entry, now time.Time) (*Payment, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if memberID == 0 {
		return nil, fmt.Errorf("member ID is required")
	}
	if !e.Amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}
	if !e.Method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", e.Method)
	}
	if e.PaymentDate.IsZero() {
		return nil, fmt.Errorf("payment date is required")
	}
	reference := strings.TrimSpace(e.Reference)
	if len(reference) > maxReferenceLength {
		return nil, ErrInvalidReference
	}

	return &Payment{
		subscriptionID: subscriptionID,
		memberID:       memberID,
		amount:         e.Amount,
		paymentDate:    biztime.Normalize(e.PaymentDate),
		method:         e.Method,
		reference:      reference,
		notes:          e.Notes,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// ReconstructPayment reconstructs a payment from persistence
func ReconstructPayment(
	id, subscriptionID, memberID uint,
	amount sharedvo.Money,
	paymentDate time.Time,
	method vo.PaymentMethod,
	reference, notes string,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	if id == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	return &Payment{
		id:             id,
		subscriptionID: subscriptionID,
		memberID:       memberID,
		amount:         amount,
		paymentDate:    paymentDate,
		method:         method,
		reference:      reference,
		notes:          notes,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (p *Payment) ID() uint                 { return p.id }
func (p *Payment) SubscriptionID() uint     { return p.subscriptionID }
func (p *Payment) MemberID() uint           { return p.memberID }
func (p *Payment) Amount() sharedvo.Money   { return p.amount }
func (p *Payment) PaymentDate() time.Time   { return p.paymentDate }
func (p *Payment) Method() vo.PaymentMethod { return p.method }
func (p *Payment) Reference() string        { return p.reference }
func (p *Payment) Notes() string            { return p.notes }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

// Patch lists the descriptive fields that may change after recording.
type Patch struct {
	Method    *vo.PaymentMethod
	Reference *string
	Notes     *string
}

func (pp Patch) IsEmpty() bool {
	return pp.Method == nil && pp.Reference == nil && pp.Notes == nil
}

func (p *Payment) ApplyPatch(pp Patch, now time.Time) error {
	if pp.Method != nil {
		if !pp.Method.IsValid() {
			return fmt.Errorf("invalid payment method: %s", *pp.Method)
		}
		p.method = *pp.Method
	}
	if pp.Reference != nil {
		ref := strings.TrimSpace(*pp.Reference)
		if len(ref) > maxReferenceLength {
			return ErrInvalidReference
		}
		p.reference = ref
	}
	if pp.Notes != nil {
		p.notes = *pp.Notes
	}
	p.updatedAt = now
	return nil
}

// SetID sets the payment ID after persistence
func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}
