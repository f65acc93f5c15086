package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subdto "f3manager/internal/application/subscription/dto"
	subUsecases "f3manager/internal/application/subscription/usecases"
	"f3manager/internal/domain/payment"
	paymentvo "f3manager/internal/domain/payment/valueobjects"
	sharedvo "f3manager/internal/domain/shared/valueobjects"
	"f3manager/internal/interfaces/http/handlers/testutil"
	"f3manager/internal/shared/authorization"
	"f3manager/internal/shared/errors"
)

type mockCreateSubscriptionUC struct {
	result *subUsecases.CreateSubscriptionResult
	err    error
	got    subUsecases.CreateSubscriptionCommand
}

func (m *mockCreateSubscriptionUC) Execute(ctx context.Context, cmd subUsecases.CreateSubscriptionCommand) (*subUsecases.CreateSubscriptionResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockRenewSubscriptionUC struct {
	result *subUsecases.RenewSubscriptionResult
	err    error
	got    subUsecases.RenewSubscriptionCommand
}

func (m *mockRenewSubscriptionUC) Execute(ctx context.Context, cmd subUsecases.RenewSubscriptionCommand) (*subUsecases.RenewSubscriptionResult, error) {
	m.got = cmd
	return m.result, m.err
}

type mockCancelSubscriptionUC struct {
	result *subdto.SubscriptionDTO
	err    error
	got    subUsecases.CancelSubscriptionCommand
}

func (m *mockCancelSubscriptionUC) Execute(ctx context.Context, cmd subUsecases.CancelSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.got = cmd
	return m.result, m.err
}

func newTestPayment(t *testing.T, id uint, cents int64) *payment.Payment {
	t.Helper()
	p, err := payment.ReconstructPayment(
		id, 10, 1,
		sharedvo.NewMoney(cents),
		handlerToday,
		paymentvo.PaymentMethodCash,
		"", "",
		handlerToday, handlerToday,
	)
	require.NoError(t, err)
	return p
}

func TestSubscriptionHandler_CreateSubscription_Success(t *testing.T) {
	mockUC := &mockCreateSubscriptionUC{result: &subUsecases.CreateSubscriptionResult{
		Subscription: &subdto.SubscriptionDTO{ID: 10, MemberID: 1, PlanID: 2, Status: "active", PaymentStatus: "partial"},
		Payment:      newTestPayment(t, 5, 20000),
	}}
	handler := NewSubscriptionHandler(mockUC, nil, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions",
		`{"member_id":1,"plan_id":2,"start_date":"2024-03-01","amount_paid":200.00,"payment_method":"cash"}`)

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(1), mockUC.got.MemberID)
	require.NotNil(t, mockUC.got.StartDate)
	assert.Equal(t, time.March, mockUC.got.StartDate.Month())
	require.NotNil(t, mockUC.got.Payment.AmountPaid)
	assert.Equal(t, int64(20000), mockUC.got.Payment.AmountPaid.Cents())
	assert.Equal(t, "cash", mockUC.got.Payment.Method)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data struct {
		Subscription subdto.SubscriptionDTO `json:"subscription"`
		Payment      struct {
			ID     uint        `json:"id"`
			Amount json.Number `json:"amount"`
		} `json:"payment"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "partial", data.Subscription.PaymentStatus)
	assert.Equal(t, uint(5), data.Payment.ID)
	assert.Equal(t, "200.00", data.Payment.Amount.String())
}

func TestSubscriptionHandler_CreateSubscription_OmittedAmount(t *testing.T) {
	mockUC := &mockCreateSubscriptionUC{result: &subUsecases.CreateSubscriptionResult{
		Subscription: &subdto.SubscriptionDTO{ID: 10},
	}}
	handler := NewSubscriptionHandler(mockUC, nil, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", `{"member_id":1,"plan_id":2}`)

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Nil(t, mockUC.got.Payment.AmountPaid)
	assert.Nil(t, mockUC.got.StartDate)
	assert.Contains(t, w.Body.String(), `"payment":null`)
}

func TestSubscriptionHandler_CreateSubscription_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing plan", `{"member_id":1}`},
		{"unknown method", `{"member_id":1,"plan_id":2,"payment_method":"bitcoin"}`},
		{"three decimals", `{"member_id":1,"plan_id":2,"amount_paid":10.555}`},
		{"bad start date", `{"member_id":1,"plan_id":2,"start_date":"2024-02-30"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateSubscriptionUC{}
			handler := NewSubscriptionHandler(mockUC, nil, nil, nil, nil, nil, nil, testutil.NewMockLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", tt.body)

			handler.CreateSubscription(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Zero(t, mockUC.got.MemberID)
		})
	}
}

func TestSubscriptionHandler_CreateSubscription_InactivePlan(t *testing.T) {
	mockUC := &mockCreateSubscriptionUC{err: errors.NewPreconditionFailedError("plan is not active")}
	handler := NewSubscriptionHandler(mockUC, nil, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions", `{"member_id":1,"plan_id":2}`)

	handler.CreateSubscription(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestSubscriptionHandler_RenewSubscription_EmptyBody(t *testing.T) {
	mockUC := &mockRenewSubscriptionUC{result: &subUsecases.RenewSubscriptionResult{
		Subscription: &subdto.SubscriptionDTO{ID: 11, Status: "active"},
		Previous:     &subdto.SubscriptionDTO{ID: 10, Status: "expired"},
	}}
	handler := NewSubscriptionHandler(nil, mockUC, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/10/renew", nil)
	testutil.SetURLParam(c, "id", "10")

	handler.RenewSubscription(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(10), mockUC.got.SubscriptionID)
	assert.Nil(t, mockUC.got.PlanID)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data SubscriptionSaleResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotNil(t, data.Previous)
	assert.Equal(t, "expired", data.Previous.Status)
}

func TestSubscriptionHandler_RenewSubscription_WithPlan(t *testing.T) {
	mockUC := &mockRenewSubscriptionUC{result: &subUsecases.RenewSubscriptionResult{
		Subscription: &subdto.SubscriptionDTO{ID: 11},
	}}
	handler := NewSubscriptionHandler(nil, mockUC, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/10/renew", `{"plan_id":3,"amount_paid":0}`)
	testutil.SetURLParam(c, "id", "10")

	handler.RenewSubscription(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, mockUC.got.PlanID)
	assert.Equal(t, uint(3), *mockUC.got.PlanID)
	require.NotNil(t, mockUC.got.Payment.AmountPaid)
	assert.True(t, mockUC.got.Payment.AmountPaid.IsZero())
}

func TestSubscriptionHandler_CancelSubscription(t *testing.T) {
	mockUC := &mockCancelSubscriptionUC{result: &subdto.SubscriptionDTO{ID: 10, Status: "cancelled"}}
	handler := NewSubscriptionHandler(nil, nil, nil, nil, mockUC, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/subscriptions/10/cancel", nil)
	testutil.SetURLParam(c, "id", "10")
	testutil.SetAuthContext(c, 3, authorization.RoleOperator)

	handler.CancelSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(10), mockUC.got.SubscriptionID)
	assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
}
