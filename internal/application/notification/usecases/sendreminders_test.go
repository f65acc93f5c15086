package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"f3manager/internal/application/apptest"
	"f3manager/internal/domain/member"
	"f3manager/internal/infrastructure/email"
	"f3manager/internal/shared/biztime"
	"f3manager/internal/shared/errors"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) SendExpiryReminder(r email.Reminder) error {
	return m.Called(r).Error(0)
}

func withEmail(t *testing.T, h *apptest.Harness, m *member.Member, address string) {
	t.Helper()
	require.NoError(t, m.ApplyPatch(member.Patch{Email: &address}, member.Policy{Today: h.Today()}, h.Clock.Now()))
	require.NoError(t, h.Members.Update(context.Background(), m))
}

func TestSendExpiryReminders(t *testing.T) {
	h := apptest.New(t)
	ctx := context.Background()
	today := h.Today()
	weekly := h.Plan(t, "Semanal", 15000, 7)

	ana := h.Member(t, "Ana")
	withEmail(t, h, ana, "ana@example.com")
	h.Subscription(t, ana, weekly, biztime.AddDays(today, -5))

	beto := h.Member(t, "Beto")
	withEmail(t, h, beto, "beto@example.com")
	h.Subscription(t, beto, weekly, biztime.AddDays(today, -6))

	carla := h.Member(t, "Carla")
	h.Subscription(t, carla, weekly, today)

	diego := h.Member(t, "Diego")
	withEmail(t, h, diego, "diego@example.com")
	h.Subscription(t, diego, weekly, biztime.AddDays(today, -20))

	sender := &mockSender{}
	sender.On("SendExpiryReminder", mock.MatchedBy(func(r email.Reminder) bool { return r.To == "ana@example.com" })).
		Return(nil).Once()
	sender.On("SendExpiryReminder", mock.MatchedBy(func(r email.Reminder) bool { return r.To == "beto@example.com" })).
		Return(fmt.Errorf("smtp down")).Once()

	uc := NewSendExpiryRemindersUseCase(h.Members, h.Plans, h.Subscriptions, sender, h.Clock, 7, h.Logger)
	res, err := uc.Execute(ctx, SendRemindersCommand{})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Candidates)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	sender.AssertExpectations(t)

	// calls follow end date order, so beto's one day comes first
	require.Len(t, sender.Calls, 2)
	assert.Equal(t, "beto@example.com", sender.Calls[0].Arguments.Get(0).(email.Reminder).To)
	sent := sender.Calls[1].Arguments.Get(0).(email.Reminder)
	assert.Equal(t, "Ana", sent.MemberName)
	assert.Equal(t, "Semanal", sent.PlanName)
	assert.Equal(t, 2, sent.DaysLeft)
}

func TestSendExpiryReminders_DryRunAndValidation(t *testing.T) {
	h := apptest.New(t)
	ctx := context.Background()
	m := h.Member(t, "Ana")
	withEmail(t, h, m, "ana@example.com")
	h.Subscription(t, m, h.Plan(t, "Semanal", 15000, 7), h.Today())

	sender := &mockSender{}
	uc := NewSendExpiryRemindersUseCase(h.Members, h.Plans, h.Subscriptions, sender, h.Clock, 7, h.Logger)

	res, err := uc.Execute(ctx, SendRemindersCommand{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	sender.AssertNotCalled(t, "SendExpiryReminder", mock.Anything)

	res, err = uc.Execute(ctx, SendRemindersCommand{Days: 3})
	require.NoError(t, err)
	assert.Zero(t, res.Candidates)

	_, err = uc.Execute(ctx, SendRemindersCommand{Days: 45})
	assert.True(t, errors.IsValidationError(err))
}
