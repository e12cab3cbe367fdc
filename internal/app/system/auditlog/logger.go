// Package auditlog records security-relevant events to MongoDB and to the
// structured log. Every application status transition, institution
// mutation, role change, and auth event passes through here.
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/enrollhub/internal/app/store/audit"
	"github.com/dalemusser/enrollhub/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Config controls where each event category is written.
// Values: "all" (MongoDB + zap), "db", "log", or "off".
type Config struct {
	Auth  string
	Admin string
}

// Logger provides convenience methods for recording audit events.
type Logger struct {
	store  *audit.Store
	zapLog *zap.Logger
	config Config
}

// New creates an audit Logger.
func New(store *audit.Store, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{store: store, zapLog: zapLog, config: config}
}

func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != nil {
		fields = append(fields, zap.String("user_id", event.UserID.Hex()))
	}
	if event.ActorID != nil {
		fields = append(fields, zap.String("actor_id", event.ActorID.Hex()))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event according to configuration. A nil Logger is a
// no-op so tests can pass nil.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryAdmin:
		setting = l.config.Admin
	default:
		setting = "all"
	}
	if setting == "off" {
		return
	}

	if setting == "all" || setting == "log" {
		l.logToZap(event)
	}
	if setting == "all" || setting == "db" {
		if err := l.store.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType))
		}
	}
}

// --- Authentication events ---

// LoginSuccess logs a successful login.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// LoginFailed logs a failed login attempt with the given event type.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, eventType, email, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     eventType,
		IP:            ratelimit.ClientIP(r),
		UserAgent:     r.UserAgent(),
		Success:       false,
		FailureReason: reason,
		Details:       map[string]string{"email": email},
	})
}

// Logout logs a session termination.
func (l *Logger) Logout(ctx context.Context, r *http.Request, userID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLogout,
		UserID:    &userID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
	})
}

// UserRegistered logs a new account registration.
func (l *Logger) UserRegistered(ctx context.Context, r *http.Request, userID primitive.ObjectID, email string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventUserRegistered,
		UserID:    &userID,
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Success:   true,
		Details:   map[string]string{"email": email},
	})
}

// --- Admin events ---

// StatusChanged logs an application status transition.
func (l *Logger) StatusChanged(ctx context.Context, r *http.Request, actorID, applicationID primitive.ObjectID, from, to string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventApplicationStatusChanged,
		ActorID:   &actorID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
		Details: map[string]string{
			"application_id": applicationID.Hex(),
			"from":           from,
			"to":             to,
		},
	})
}

// InstitutionEvent logs a create/update/deactivate on an institution.
func (l *Logger) InstitutionEvent(ctx context.Context, r *http.Request, eventType string, actorID, institutionID primitive.ObjectID) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: eventType,
		ActorID:   &actorID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
		Details:   map[string]string{"institution_id": institutionID.Hex()},
	})
}

// RoleChanged logs an admin changing another user's role.
func (l *Logger) RoleChanged(ctx context.Context, r *http.Request, actorID, userID primitive.ObjectID, from, to string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAdmin,
		EventType: audit.EventUserRoleChanged,
		ActorID:   &actorID,
		UserID:    &userID,
		IP:        ratelimit.ClientIP(r),
		Success:   true,
		Details:   map[string]string{"from": from, "to": to},
	})
}
