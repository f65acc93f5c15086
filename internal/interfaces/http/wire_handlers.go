package http

import (
	"f3manager/internal/interfaces/http/handlers"
)

// allHandlers holds every HTTP handler.
type allHandlers struct {
	authHandler         *handlers.AuthHandler
	memberHandler       *handlers.MemberHandler
	planHandler         *handlers.PlanHandler
	subscriptionHandler *handlers.SubscriptionHandler
	paymentHandler      *handlers.PaymentHandler
	attendanceHandler   *handlers.AttendanceHandler
	dashboardHandler    *handlers.DashboardHandler
	reportHandler       *handlers.ReportHandler
	healthHandler       *handlers.HealthHandler
}

// ============================================================
// Section 3: Handlers
// ============================================================

func (c *Container) initHandlers() {
	log := c.log
	u := c.ucs

	// A nil pinger skips the database probe.
	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	}

	c.hdlrs = &allHandlers{
		authHandler: handlers.NewAuthHandler(u.login, u.registerStaff, u.getStaff, c.cfg.Auth.Cookie, log),
		memberHandler: handlers.NewMemberHandler(
			u.createMember,
			u.getMember,
			u.listMembers,
			u.updateMember,
			u.deactivateMember,
			u.purgeMember,
			u.getSubscription,
			u.listPayments,
			u.listAttendance,
			c.svcs.clock,
			log,
		),
		planHandler: handlers.NewPlanHandler(
			u.createPlan, u.updatePlan, u.getPlan, u.listPlans, u.deactivatePlan, u.deletePlan, log,
		),
		subscriptionHandler: handlers.NewSubscriptionHandler(
			u.createSubscription,
			u.renewSubscription,
			u.getSubscription,
			u.listSubscriptions,
			u.cancelSubscription,
			u.updateSubscription,
			u.deleteSubscription,
			log,
		),
		paymentHandler: handlers.NewPaymentHandler(
			u.recordPayment, u.getPayment, u.listPayments, u.updatePayment, u.deletePayment, u.paymentSummary, log,
		),
		attendanceHandler: handlers.NewAttendanceHandler(
			u.checkIn,
			u.checkOut,
			u.getAttendance,
			u.listAttendance,
			u.currentlyPresent,
			u.dailyStats,
			u.deleteAttendance,
			log,
		),
		dashboardHandler: handlers.NewDashboardHandler(u.dashboard, log),
		reportHandler:    handlers.NewReportHandler(u.reportSummary, u.retentionReport, u.monthlyComparison, log),
		healthHandler:    handlers.NewHealthHandler(pinger, log),
	}
}
