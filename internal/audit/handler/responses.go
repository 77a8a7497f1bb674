package handler

import (
	"time"

	audit "propertyguard/pkg/platform/audit"
)

// TrailEventEntry is one audit event as rendered on the trail endpoints.
type TrailEventEntry struct {
	Category   string `json:"category"`
	Action     string `json:"action"`
	Subject    string `json:"subject"`
	Detail     string `json:"detail"`
	PropertyID string `json:"property_id"`
	// UserID is null for events recorded without an acting user,
	// such as scheduled council imports.
	UserID    *string   `json:"user_id"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// TrailResponse is the envelope for both trail endpoints.
type TrailResponse struct {
	Events []TrailEventEntry `json:"events"`
	Count  int               `json:"count"`
}

// TrailResponseFrom converts stored events into the API representation.
func TrailResponseFrom(events []audit.Event) TrailResponse {
	entries := make([]TrailEventEntry, 0, len(events))
	for _, ev := range events {
		entry := TrailEventEntry{
			Category:   string(ev.Category),
			Action:     ev.Action,
			Subject:    ev.Subject,
			Detail:     ev.Detail,
			PropertyID: ev.PropertyID.String(),
			RequestID:  ev.RequestID,
			Timestamp:  ev.Timestamp,
		}
		if !ev.UserID.IsNil() {
			userID := ev.UserID.String()
			entry.UserID = &userID
		}
		entries = append(entries, entry)
	}
	return TrailResponse{Events: entries, Count: len(entries)}
}
