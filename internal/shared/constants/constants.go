package constants

const (
	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyStaffID   = "staff_id"
	ContextKeyUsername  = "username"
	ContextKeyRole      = "staff_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableMembers       = "members"
	TablePlans         = "plans"
	TableSubscriptions = "subscriptions"
	TablePayments      = "payment_records"
	TableAttendance    = "attendance"
	TableStaffUsers    = "staff_users"

	// Dashboard and feed defaults
	DefaultRecentFeedLimit = 5
	MaxRecentFeedLimit     = 50
	DefaultExpiringDays    = 7
	MaxExpiringDays        = 30
	ExpiringSoonThreshold  = 7
	DefaultSeriesDays      = 7
	DefaultTopMembersLimit = 10
	DefaultHistoryDays     = 30
	DefaultPermanentDays   = 36500

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgValidationFailed    = "Validation failed"
)
