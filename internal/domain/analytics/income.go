package analytics

import (
	"sort"
	"time"

	"f3manager/internal/domain/payment"
	paymentvo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/domain/subscription"
	vo "f3manager/internal/domain/subscription/valueobjects"
)

// MethodTotal is the income received through one payment method.
type MethodTotal struct {
	Method paymentvo.PaymentMethod
	Count  int64
	Total  sharedvo.Money
}

// SummarizeByMethod totals payments per method. Methods without payments are
// omitted; the rest follow the canonical method order.
func SummarizeByMethod(payments []*payment.Payment) []MethodTotal {
	byMethod := make(map[paymentvo.PaymentMethod]*MethodTotal)
	for _, p := range payments {
		t, ok := byMethod[p.Method()]
		if !ok {
			t = &MethodTotal{Method: p.Method(), Total: sharedvo.Zero()}
			byMethod[p.Method()] = t
		}
		t.Count++
		t.Total = t.Total.Add(p.Amount())
	}

	result := make([]MethodTotal, 0, len(byMethod))
	for _, m := range paymentvo.AllPaymentMethods {
		if t, ok := byMethod[m]; ok {
			result = append(result, *t)
		}
	}
	return result
}

// TotalIncome sums payment amounts.
func TotalIncome(payments []*payment.Payment) sharedvo.Money {
	total := sharedvo.Zero()
	for _, p := range payments {
		total = total.Add(p.Amount())
	}
	return total
}

// IncomeOn sums the payments dated on day.
func IncomeOn(payments []*payment.Payment, day time.Time) sharedvo.Money {
	total := sharedvo.Zero()
	for _, p := range payments {
		if p.PaymentDate().Equal(day) {
			total = total.Add(p.Amount())
		}
	}
	return total
}

// PlanIncome is the income attributed to one plan through its subscriptions.
type PlanIncome struct {
	PlanID   uint
	PlanName string
	Count    int64
	Total    sharedvo.Money
	Average  sharedvo.Money
}

// IncomeByPlan groups payments by the plan of their subscription, ordered by
// total descending then plan name. Payments whose subscription or plan is not
// in the lookup maps are skipped.
func IncomeByPlan(
	payments []*payment.Payment,
	subs map[uint]*subscription.Subscription,
	plans map[uint]*subscription.Plan,
) []PlanIncome {
	byPlan := make(map[uint]*PlanIncome)
	for _, p := range payments {
		s, ok := subs[p.SubscriptionID()]
		if !ok {
			continue
		}
		plan, ok := plans[s.PlanID()]
		if !ok {
			continue
		}
		pi, ok := byPlan[plan.ID()]
		if !ok {
			pi = &PlanIncome{PlanID: plan.ID(), PlanName: plan.Name(), Total: sharedvo.Zero()}
			byPlan[plan.ID()] = pi
		}
		pi.Count++
		pi.Total = pi.Total.Add(p.Amount())
	}

	result := make([]PlanIncome, 0, len(byPlan))
	for _, pi := range byPlan {
		pi.Average = pi.Total.DivideRound(int(pi.Count))
		result = append(result, *pi)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Total.Equals(result[j].Total) {
			return result[j].Total.LessThan(result[i].Total)
		}
		return result[i].PlanName < result[j].PlanName
	})
	return result
}

// PendingBalance is what active subscriptions with pending or partial payment
// still owe, measured against the price copied at creation.
func PendingBalance(subs []*subscription.Subscription) sharedvo.Money {
	total := sharedvo.Zero()
	for _, s := range subs {
		if s.Status() != vo.StatusActive || !s.PaymentStatus().IsOutstanding() {
			continue
		}
		total = total.Add(s.Balance())
	}
	return total
}
