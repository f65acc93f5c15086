package subscription

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/shared/biztime"
)

const (
	maxPlanNameLength = 50
	// maxDurationDays keeps end-date arithmetic inside a sane calendar range.
	maxDurationDays = 36500
)

// Plan is a priced membership template. A duration of zero days means the
// plan is permanent.
type Plan struct {
	id           uint
	name         string
	description  string
	price        sharedvo.Money
	durationDays int
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewPlan creates a new active plan
func NewPlan(name, description string, price sharedvo.Money, durationDays int, now time.Time) (*Plan, error) {
	p := &Plan{
		name:         strings.TrimSpace(name),
		description:  strings.TrimSpace(description),
		price:        price,
		durationDays: durationDays,
		active:       true,
		createdAt:    now,
		updatedAt:    now,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ReconstructPlan reconstructs a plan from persistence
func ReconstructPlan(
	id uint,
	name, description string,
	price sharedvo.Money,
	durationDays int,
	active bool,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	return &Plan{
		id:           id,
		name:         name,
		description:  description,
		price:        price,
		durationDays: durationDays,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Plan) validate() error {
	n := utf8.RuneCountInString(p.name)
	if n == 0 || n > maxPlanNameLength {
		return fmt.Errorf("%w: name must be 1 to %d characters", ErrInvalidPlanName, maxPlanNameLength)
	}
	if p.price.IsNegative() || p.price.Cents() > sharedvo.MaxPriceCents {
		return fmt.Errorf("%w: must be between 0 and 99999999.99", ErrInvalidPrice)
	}
	if p.durationDays < 0 || p.durationDays > maxDurationDays {
		return fmt.Errorf("%w: duration_days must be between 0 and %d", ErrInvalidDuration, maxDurationDays)
	}
	return nil
}

func (p *Plan) ID() uint              { return p.id }
func (p *Plan) Name() string          { return p.name }
func (p *Plan) Description() string   { return p.description }
func (p *Plan) Price() sharedvo.Money { return p.price }
func (p *Plan) DurationDays() int     { return p.durationDays }
func (p *Plan) IsActive() bool        { return p.active }
func (p *Plan) IsPermanent() bool     { return p.durationDays == 0 }
func (p *Plan) CreatedAt() time.Time  { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time  { return p.updatedAt }

// EndDateFor returns the last covered date for a subscription starting on
// start. Permanent plans use permanentDays so the end date stays finite.
func (p *Plan) EndDateFor(start time.Time, permanentDays int) time.Time {
	days := p.durationDays
	if days == 0 {
		days = permanentDays
	}
	return biztime.AddDays(start, days)
}

// PlanPatch lists optional plan changes. Nil fields are left untouched.
type PlanPatch struct {
	Name         *string
	Description  *string
	Price        *sharedvo.Money
	DurationDays *int
	Active       *bool
}

// ChangesTerms reports whether the patch touches price or duration.
func (pp PlanPatch) ChangesTerms(p *Plan) bool {
	return (pp.Price != nil && !pp.Price.Equals(p.price)) ||
		(pp.DurationDays != nil && *pp.DurationDays != p.durationDays)
}

// ApplyPatch applies the provided fields and re-validates. On error the plan
// is left unchanged.
func (p *Plan) ApplyPatch(pp PlanPatch, now time.Time) error {
	next := *p
	if pp.Name != nil {
		next.name = strings.TrimSpace(*pp.Name)
	}
	if pp.Description != nil {
		next.description = strings.TrimSpace(*pp.Description)
	}
	if pp.Price != nil {
		next.price = *pp.Price
	}
	if pp.DurationDays != nil {
		next.durationDays = *pp.DurationDays
	}
	if pp.Active != nil {
		next.active = *pp.Active
	}
	if err := next.validate(); err != nil {
		return err
	}
	next.updatedAt = now
	*p = next
	return nil
}

// Deactivate hides the plan from new subscriptions. Existing subscriptions keep it.
func (p *Plan) Deactivate(now time.Time) {
	if !p.active {
		return
	}
	p.active = false
	p.updatedAt = now
}

// SetID sets the plan ID after persistence
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}
