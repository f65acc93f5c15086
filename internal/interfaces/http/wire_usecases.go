package http

import (
	"fmt"

	attendanceUsecases "f3manager/internal/application/attendance/usecases"
	dashboardUsecases "f3manager/internal/application/dashboard/usecases"
	memberUsecases "f3manager/internal/application/member/usecases"
	notificationUsecases "f3manager/internal/application/notification/usecases"
	paymentUsecases "f3manager/internal/application/payment/usecases"
	reportUsecases "f3manager/internal/application/report/usecases"
	staffUsecases "f3manager/internal/application/staff/usecases"
	subscriptionServices "f3manager/internal/application/subscription/services"
	subscriptionUsecases "f3manager/internal/application/subscription/usecases"
	paymentvo "f3manager/internal/domain/payment/valueobjects"
)

// allUseCases holds every use case instance.
type allUseCases struct {
	// Members
	createMember     *memberUsecases.CreateMemberUseCase
	getMember        *memberUsecases.GetMemberUseCase
	listMembers      *memberUsecases.ListMembersUseCase
	updateMember     *memberUsecases.UpdateMemberUseCase
	deactivateMember *memberUsecases.DeactivateMemberUseCase
	purgeMember      *memberUsecases.PurgeMemberUseCase

	// Plans
	createPlan     *subscriptionUsecases.CreatePlanUseCase
	updatePlan     *subscriptionUsecases.UpdatePlanUseCase
	getPlan        *subscriptionUsecases.GetPlanUseCase
	listPlans      *subscriptionUsecases.ListPlansUseCase
	deactivatePlan *subscriptionUsecases.DeactivatePlanUseCase
	deletePlan     *subscriptionUsecases.DeletePlanUseCase

	// Subscriptions
	createSubscription *subscriptionUsecases.CreateSubscriptionUseCase
	renewSubscription  *subscriptionUsecases.RenewSubscriptionUseCase
	getSubscription    *subscriptionUsecases.GetSubscriptionUseCase
	listSubscriptions  *subscriptionUsecases.ListSubscriptionsUseCase
	cancelSubscription *subscriptionUsecases.CancelSubscriptionUseCase
	updateSubscription *subscriptionUsecases.UpdateSubscriptionUseCase
	deleteSubscription *subscriptionUsecases.DeleteSubscriptionUseCase

	// Payments
	recordPayment  *paymentUsecases.RecordPaymentUseCase
	getPayment     *paymentUsecases.GetPaymentUseCase
	listPayments   *paymentUsecases.ListPaymentsUseCase
	updatePayment  *paymentUsecases.UpdatePaymentUseCase
	deletePayment  *paymentUsecases.DeletePaymentUseCase
	paymentSummary *paymentUsecases.GetPaymentSummaryUseCase

	// Attendance
	checkIn          *attendanceUsecases.CheckInUseCase
	checkOut         *attendanceUsecases.CheckOutUseCase
	getAttendance    *attendanceUsecases.GetAttendanceUseCase
	listAttendance   *attendanceUsecases.ListAttendanceUseCase
	currentlyPresent *attendanceUsecases.ListCurrentlyPresentUseCase
	dailyStats       *attendanceUsecases.GetDailyStatsUseCase
	deleteAttendance *attendanceUsecases.DeleteAttendanceUseCase

	// Dashboard and reports
	dashboard         *dashboardUsecases.DashboardUseCase
	reportSummary     *reportUsecases.GetReportSummaryUseCase
	retentionReport   *reportUsecases.GetRetentionReportUseCase
	monthlyComparison *reportUsecases.GetMonthlyComparisonUseCase

	// Staff
	login         *staffUsecases.LoginUseCase
	registerStaff *staffUsecases.RegisterStaffUseCase
	getStaff      *staffUsecases.GetStaffUseCase

	// Notifications
	sendReminders *notificationUsecases.SendExpiryRemindersUseCase
}

// ============================================================
// Section 2: Use Cases
// ============================================================

func (c *Container) initUseCases() error {
	cfg := c.cfg
	log := c.log
	r := c.repos
	s := c.svcs

	defaultMethod, err := paymentvo.NewPaymentMethod(cfg.Membership.DefaultPaymentMethod)
	if err != nil {
		return fmt.Errorf("invalid membership.default_payment_method: %w", err)
	}
	terms := subscriptionUsecases.Terms{
		PermanentDays: cfg.Membership.PermanentDurationDays,
		DefaultMethod: defaultMethod,
	}
	minimumAge := cfg.Membership.MinimumAge

	reconciler := subscriptionServices.NewExpiryReconciler(r.subscriptionRepo, s.clock, log)
	ledger := paymentUsecases.NewLedger(r.paymentRepo, r.subscriptionRepo, s.clock, log)

	c.ucs = &allUseCases{
		createMember:     memberUsecases.NewCreateMemberUseCase(r.memberRepo, s.clock, minimumAge, log),
		getMember:        memberUsecases.NewGetMemberUseCase(r.memberRepo, r.subscriptionRepo, r.planRepo, s.clock, log),
		listMembers:      memberUsecases.NewListMembersUseCase(r.memberRepo, log),
		updateMember:     memberUsecases.NewUpdateMemberUseCase(r.memberRepo, s.clock, minimumAge, log),
		deactivateMember: memberUsecases.NewDeactivateMemberUseCase(r.memberRepo, s.clock, log),
		purgeMember:      memberUsecases.NewPurgeMemberUseCase(r.memberRepo, s.txManager, s.gate, log),

		createPlan:     subscriptionUsecases.NewCreatePlanUseCase(r.planRepo, s.gate, s.clock, log),
		updatePlan:     subscriptionUsecases.NewUpdatePlanUseCase(r.planRepo, r.subscriptionRepo, s.txManager, s.gate, s.clock, log),
		getPlan:        subscriptionUsecases.NewGetPlanUseCase(r.planRepo, log),
		listPlans:      subscriptionUsecases.NewListPlansUseCase(r.planRepo, log),
		deactivatePlan: subscriptionUsecases.NewDeactivatePlanUseCase(r.planRepo, s.gate, s.clock, log),
		deletePlan:     subscriptionUsecases.NewDeletePlanUseCase(r.planRepo, r.subscriptionRepo, s.txManager, s.gate, log),

		createSubscription: subscriptionUsecases.NewCreateSubscriptionUseCase(
			r.memberRepo, r.planRepo, r.subscriptionRepo, ledger, s.txManager, s.clock, terms, log,
		),
		renewSubscription: subscriptionUsecases.NewRenewSubscriptionUseCase(
			r.memberRepo, r.planRepo, r.subscriptionRepo, ledger, reconciler, s.txManager, s.clock, terms, log,
		),
		getSubscription: subscriptionUsecases.NewGetSubscriptionUseCase(
			r.subscriptionRepo, r.planRepo, r.memberRepo, reconciler, s.clock, log,
		),
		listSubscriptions: subscriptionUsecases.NewListSubscriptionsUseCase(
			r.subscriptionRepo, r.planRepo, r.memberRepo, reconciler, s.clock, log,
		),
		cancelSubscription: subscriptionUsecases.NewCancelSubscriptionUseCase(
			r.subscriptionRepo, r.memberRepo, reconciler, s.txManager, s.gate, s.clock, log,
		),
		updateSubscription: subscriptionUsecases.NewUpdateSubscriptionUseCase(r.subscriptionRepo, s.gate, s.clock, log),
		deleteSubscription: subscriptionUsecases.NewDeleteSubscriptionUseCase(
			r.subscriptionRepo, r.paymentRepo, r.attendanceRepo, s.txManager, s.gate, log,
		),

		recordPayment: paymentUsecases.NewRecordPaymentUseCase(
			r.memberRepo, r.subscriptionRepo, ledger, s.txManager, s.clock, defaultMethod, log,
		),
		getPayment:    paymentUsecases.NewGetPaymentUseCase(r.paymentRepo, log),
		listPayments:  paymentUsecases.NewListPaymentsUseCase(r.paymentRepo, r.memberRepo, log),
		updatePayment: paymentUsecases.NewUpdatePaymentUseCase(r.paymentRepo, s.clock, log),
		deletePayment: paymentUsecases.NewDeletePaymentUseCase(
			r.paymentRepo, r.memberRepo, r.subscriptionRepo, ledger, s.txManager, s.gate, log,
		),
		paymentSummary: paymentUsecases.NewGetPaymentSummaryUseCase(r.paymentRepo, s.clock, log),

		checkIn: attendanceUsecases.NewCheckInUseCase(
			r.memberRepo, r.subscriptionRepo, r.attendanceRepo, s.txManager, s.clock, log,
		),
		checkOut:      attendanceUsecases.NewCheckOutUseCase(r.attendanceRepo, s.clock, log),
		getAttendance: attendanceUsecases.NewGetAttendanceUseCase(r.attendanceRepo, r.memberRepo, log),
		listAttendance: attendanceUsecases.NewListAttendanceUseCase(
			r.attendanceRepo, r.memberRepo, s.clock, cfg.Membership.HistoryDays, log,
		),
		currentlyPresent: attendanceUsecases.NewListCurrentlyPresentUseCase(r.attendanceRepo, r.memberRepo, s.clock, log),
		dailyStats:       attendanceUsecases.NewGetDailyStatsUseCase(r.attendanceRepo, s.clock, log),
		deleteAttendance: attendanceUsecases.NewDeleteAttendanceUseCase(r.attendanceRepo, s.gate, log),

		dashboard: dashboardUsecases.NewDashboardUseCase(
			r.memberRepo, r.planRepo, r.subscriptionRepo, r.paymentRepo, r.attendanceRepo,
			s.txManager, s.clock,
			dashboardUsecases.Settings{
				ExpiringDays: cfg.Membership.ExpiringWindowDays,
				Locale:       cfg.Membership.Locale,
			},
			log,
		),
		reportSummary: reportUsecases.NewGetReportSummaryUseCase(
			r.memberRepo, r.planRepo, r.subscriptionRepo, r.paymentRepo, r.attendanceRepo, s.txManager, s.clock, log,
		),
		retentionReport: reportUsecases.NewGetRetentionReportUseCase(r.memberRepo, r.subscriptionRepo, s.txManager, s.clock, log),
		monthlyComparison: reportUsecases.NewGetMonthlyComparisonUseCase(
			r.memberRepo, r.subscriptionRepo, r.paymentRepo, r.attendanceRepo, s.txManager, s.clock, log,
		),

		login:         staffUsecases.NewLoginUseCase(r.staffRepo, s.hasher, s.jwtSvc, s.clock, log),
		registerStaff: staffUsecases.NewRegisterStaffUseCase(r.staffRepo, s.hasher, s.gate, s.clock, log),
		getStaff:      staffUsecases.NewGetStaffUseCase(r.staffRepo, s.gate, log),

		sendReminders: notificationUsecases.NewSendExpiryRemindersUseCase(
			r.memberRepo, r.planRepo, r.subscriptionRepo, s.mailer, s.clock, cfg.Membership.ExpiringWindowDays, log,
		),
	}

	return nil
}
