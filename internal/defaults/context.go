// Package defaults implements the smart defaults engine: given an asset and
// a per-request user context it recommends an export configuration
// (format, size, background, color) with a confidence score.
package defaults

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/b-ciq/brand-assets-server/internal/models"
)

// Time of day buckets
const (
	timeMorning   = "morning"
	timeAfternoon = "afternoon"
	timeEvening   = "evening"
	timeNight     = "night"
)

// DetectContext back-fills missing UserContext fields from request signals.
// Fields the caller already provided are left untouched; nothing is
// persisted between requests.
func DetectContext(r *http.Request, ctx models.UserContext, now time.Time) models.UserContext {
	if ctx.Source == "" {
		ctx.Source = "web"
	}
	if ctx.SessionID == "" {
		ctx.SessionID = uuid.NewString()
	}
	if ctx.UserAgent == "" && r != nil {
		ctx.UserAgent = r.UserAgent()
	}
	if ctx.TimeOfDay == "" {
		ctx.TimeOfDay = timeOfDay(now)
	}
	if ctx.DeviceTheme == "" {
		ctx.DeviceTheme = detectTheme(r, ctx.TimeOfDay)
	}
	if ctx.UserRole == "" {
		ctx.UserRole = detectRole(ctx.UserAgent, ctx.TimeOfDay)
	}
	return ctx
}

// timeOfDay buckets the local hour
func timeOfDay(now time.Time) string {
	switch hour := now.Hour(); {
	case hour >= 5 && hour < 12:
		return timeMorning
	case hour >= 12 && hour < 17:
		return timeAfternoon
	case hour >= 17 && hour < 22:
		return timeEvening
	default:
		return timeNight
	}
}

// detectTheme infers the device theme from the client hint header when the
// browser sends one, falling back to time of day.
func detectTheme(r *http.Request, tod string) string {
	if r != nil {
		if hint := r.Header.Get("Sec-CH-Prefers-Color-Scheme"); hint == "dark" || hint == "light" {
			return hint
		}
	}
	if tod == timeEvening || tod == timeNight {
		return "dark"
	}
	return "light"
}

// detectRole guesses the user role from user-agent and time-of-day signals.
// The guess only nudges defaults, so a wrong guess is harmless.
func detectRole(userAgent, tod string) string {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "curl"),
		strings.Contains(ua, "wget"),
		strings.Contains(ua, "python-requests"),
		strings.Contains(ua, "go-http-client"):
		return "developer"
	case strings.Contains(ua, "figma"),
		strings.Contains(ua, "sketch"):
		return "designer"
	case tod == timeNight:
		return "developer"
	default:
		return "general"
	}
}
