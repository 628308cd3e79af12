package util

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ariebrainware/biosecure-portal/model"
	"gorm.io/datatypes"
)

// ActivityEventType represents different types of portal events
type ActivityEventType string

const (
	EventRegisterSuccess    ActivityEventType = "REGISTER_SUCCESS"
	EventLoginSuccess       ActivityEventType = "LOGIN_SUCCESS"
	EventLoginFailure       ActivityEventType = "LOGIN_FAILURE"
	EventLogout             ActivityEventType = "LOGOUT"
	EventIdentitySkipped    ActivityEventType = "IDENTITY_SKIPPED"
	EventFarmerAdded        ActivityEventType = "FARMER_ADDED"
	EventQueryRecorded      ActivityEventType = "QUERY_RECORDED"
	EventPredictionFailure  ActivityEventType = "PREDICTION_FAILURE"
	EventUnauthorizedAccess ActivityEventType = "UNAUTHORIZED_ACCESS"
	EventRateLimitExceeded  ActivityEventType = "RATE_LIMIT_EXCEEDED"
	EventSuspiciousActivity ActivityEventType = "SUSPICIOUS_ACTIVITY"
	EventEndpointCall       ActivityEventType = "ENDPOINT_CALL"
)

// ActivityEvent represents an event to be logged
type ActivityEvent struct {
	EventType ActivityEventType
	Actor     string
	Role      model.Role
	IP        string
	UserAgent string
	Message   string
	Details   map[string]interface{}
}

// ActivityRecorder persists activity events. The record store implements it.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, entry *model.ActivityLog) error
}

var (
	activityRecorder ActivityRecorder
	activityMu       sync.RWMutex
)

// SetActivityRecorder sets the sink used to persist events.
// Call this during application startup after the store is opened; nil disables persistence.
func SetActivityRecorder(r ActivityRecorder) {
	activityMu.Lock()
	defer activityMu.Unlock()
	activityRecorder = r
}

func getActivityRecorder() ActivityRecorder {
	activityMu.RLock()
	defer activityMu.RUnlock()
	return activityRecorder
}

const maxLogValueBytes = 200

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding, never inside a multi-byte character
	if len(value) > maxLogValueBytes {
		cut := maxLogValueBytes
		for cut > 0 && !utf8.RuneStart(value[cut]) {
			cut--
		}
		value = value[:cut] + "..."
	}
	return value
}

// LogActivity writes the event to the application log and persists it when a recorder is set.
// Persistence is best-effort; failures are logged and never returned.
func LogActivity(ctx context.Context, event ActivityEvent) {
	logEvent := Logger.Info().
		Str("event", string(event.EventType)).
		Str("actor", sanitizeLogValue(event.Actor)).
		Str("role", string(event.Role)).
		Str("ip", sanitizeLogValue(event.IP))
	if len(event.Details) > 0 {
		// Don't log Details map directly to avoid injection
		logEvent = logEvent.Int("details_count", len(event.Details))
	}
	logEvent.Msg(sanitizeLogValue(event.Message))

	recorder := getActivityRecorder()
	if recorder == nil {
		return
	}

	city, country := GetIPLocation(event.IP)
	var location string
	switch {
	case city != "" && country != "":
		location = fmt.Sprintf("%s/%s", city, country)
	case country != "":
		location = country
	default:
		location = city
	}

	entry := model.ActivityLog{
		EventType: string(event.EventType),
		Actor:     sanitizeLogValue(event.Actor),
		Role:      string(event.Role),
		IP:        sanitizeLogValue(event.IP),
		Location:  sanitizeLogValue(location),
		UserAgent: sanitizeLogValue(event.UserAgent),
		Message:   sanitizeLogValue(event.Message),
		CreatedAt: time.Now().UTC(),
	}
	if event.Details != nil {
		entry.Details = datatypes.JSONMap(event.Details)
	}

	// detach from request cancellation so the write survives a client disconnect
	if err := recorder.RecordActivity(context.WithoutCancel(ctx), &entry); err != nil {
		Logger.Warn().Err(err).Str("event", string(event.EventType)).Msg("failed to persist activity event")
	}
}

// ClientInfo is the request origin attached to activity events.
type ClientInfo struct {
	IP    string
	Agent string
}

// LogLoginSuccess logs a successful login event
func LogLoginSuccess(ctx context.Context, phone string, role model.Role, ci ClientInfo) {
	LogActivity(ctx, ActivityEvent{
		EventType: EventLoginSuccess,
		Actor:     phone,
		Role:      role,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "User logged in successfully",
	})
}

// LogLoginFailure logs a failed login attempt
func LogLoginFailure(ctx context.Context, phone string, role model.Role, ci ClientInfo, reason string) {
	LogActivity(ctx, ActivityEvent{
		EventType: EventLoginFailure,
		Actor:     phone,
		Role:      role,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   fmt.Sprintf("Login failed: %s", reason),
	})
}

// LogRegistration logs a new vet shop or vet doctor account
func LogRegistration(ctx context.Context, phone string, role model.Role, ci ClientInfo) {
	LogActivity(ctx, ActivityEvent{
		EventType: EventRegisterSuccess,
		Actor:     phone,
		Role:      role,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   fmt.Sprintf("%s registered", role),
	})
}

// LogIdentitySkipped logs a registration that continued without an identity provider account
func LogIdentitySkipped(ctx context.Context, phone string, role model.Role, ci ClientInfo, err error) {
	LogActivity(ctx, ActivityEvent{
		EventType: EventIdentitySkipped,
		Actor:     phone,
		Role:      role,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   fmt.Sprintf("Identity account creation skipped: %v", err),
	})
}

// LogLogout logs a logout event
func LogLogout(ctx context.Context, phone string, role model.Role, ci ClientInfo) {
	LogActivity(ctx, ActivityEvent{
		EventType: EventLogout,
		Actor:     phone,
		Role:      role,
		IP:        ci.IP,
		UserAgent: ci.Agent,
		Message:   "User logged out",
	})
}

// LogUnauthorizedAccess logs attempts to use a route without the required session or role
func LogUnauthorizedAccess(ctx context.Context, actor string, role model.Role, ip, resource, reason string) {
	LogActivity(ctx, ActivityEvent{
		EventType: EventUnauthorizedAccess,
		Actor:     actor,
		Role:      role,
		IP:        ip,
		Message:   fmt.Sprintf("Unauthorized access to %s: %s", resource, reason),
	})
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ctx context.Context, ip, endpoint string) {
	LogActivity(ctx, ActivityEvent{
		EventType: EventRateLimitExceeded,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}
