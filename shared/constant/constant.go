package constant

import (
	"time"
)

// Actors written to created_by/modified_by when no staff member is behind a change.
const (
	ContextGuest  = "guest"
	ContextSystem = "system"
)

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

// Roles of the guest house. Anyone who signs up is a guest until an owner
// promotes them.
const (
	RoleGuest        = "guest"
	RoleReceptionist = "receptionist"
	RoleOwner        = "owner"
)

const (
	RequestParamID      = "id"
	RequestParamCode    = "code"
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	RequestMaxMemory = 10 << 20
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

// Postgres SQLSTATE codes mapped to conflicts.
const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
	PqErrorCodeExclusion       = "23P01"
)

const (
	DateFormat = time.RFC3339
	DayFormat  = time.DateOnly
)

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelEventScopeName      = "event"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const ContentTypeJSON = "application/json"

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const ServerEnvDevelopment = "development"

const (
	Asterix = "*"
	Empty   = ""
)
