// Package lifecycle implements the incident state machine: creation,
// status transitions with their append-only audit timeline, resolution photo
// appends, and the visibility rules gating all of them. Every operation here
// is pure — persistence happens in the callers around these functions.
package lifecycle

import (
	"fmt"
	"time"

	"sirrs-be/categorizer"
	"sirrs-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	// MaxPhotosPerRequest bounds photo uploads per call, matching the
	// upload collaborator's own cap.
	MaxPhotosPerRequest = 5

	creationNote = "Incident reported"
)

// NewIncidentInput carries the caller-supplied fields for incident creation.
// Category is optional; when empty the categorizer fills it from the
// description. Latitude/Longitude are pointers so that absent coordinates are
// distinguishable from the zero coordinate.
type NewIncidentInput struct {
	ReporterID  primitive.ObjectID
	Title       string
	Description string
	Category    models.Category
	Photos      []string
	Latitude    *float64
	Longitude   *float64
	Address     string
	Deadline    *time.Time
}

// NewIncident validates the input and assembles a pending incident with its
// seed timeline entry. The returned bool reports whether the category was
// auto-suggested rather than supplied by the reporter. No field is touched on
// a validation failure.
func NewIncident(in NewIncidentInput, now time.Time) (*models.Incident, bool, error) {
	if err := validateInput(in); err != nil {
		return nil, false, err
	}

	suggested := false
	category := in.Category
	if category == "" {
		category = categorizer.Categorize(in.Description)
		suggested = true
	}

	photos := in.Photos
	if photos == nil {
		photos = []string{}
	}

	inc := &models.Incident{
		ID:               primitive.NewObjectID(),
		Title:            in.Title,
		Description:      in.Description,
		Category:         category,
		Photos:           photos,
		Latitude:         *in.Latitude,
		Longitude:        *in.Longitude,
		Address:          in.Address,
		Status:           models.StatusPending,
		ReporterID:       in.ReporterID,
		Deadline:         in.Deadline,
		Timeline:         []models.TimelineEntry{},
		ResolutionPhotos: []string{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	inc.AppendTimelineEntry(models.TimelineEntry{
		Status:    models.StatusPending,
		Note:      creationNote,
		UpdatedBy: in.ReporterID,
		Timestamp: now,
	})

	return inc, suggested, nil
}

func validateInput(in NewIncidentInput) error {
	if in.Title == "" {
		return &ValidationError{Field: "title", Reason: "required"}
	}
	if len(in.Title) > maxTitleLen {
		return &ValidationError{Field: "title", Reason: fmt.Sprintf("must be between 1 and %d characters", maxTitleLen)}
	}
	if in.Description == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if len(in.Description) > maxDescriptionLen {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("must be between 1 and %d characters", maxDescriptionLen)}
	}
	if in.Latitude == nil || in.Longitude == nil {
		return &ValidationError{Field: "location", Reason: "coordinates are required"}
	}
	if in.Category != "" && !in.Category.Valid() {
		return &ValidationError{Field: "category", Reason: "unknown category"}
	}
	if len(in.Photos) > MaxPhotosPerRequest {
		return &ValidationError{Field: "photos", Reason: fmt.Sprintf("at most %d photos per request", MaxPhotosPerRequest)}
	}
	return nil
}

// ApplyTransition moves the incident to newStatus and appends the matching
// timeline entry. The transition graph is deliberately unrestricted: any
// authority or admin may set any of the five statuses from any current
// status. The structural rule is that every change appends exactly one entry
// and the current status always equals the last entry's status.
func ApplyTransition(inc *models.Incident, actor models.Actor, newStatus models.Status, note string, now time.Time) (models.TimelineEntry, error) {
	if !CanManage(actor) {
		return models.TimelineEntry{}, &AuthorizationError{
			Reason: fmt.Sprintf("role %q is not allowed to update incident status", actor.Role),
		}
	}
	if !newStatus.Valid() {
		return models.TimelineEntry{}, &ValidationError{Field: "status", Reason: "unknown status"}
	}

	if note == "" {
		note = "Status changed to " + string(newStatus)
	}

	entry := models.TimelineEntry{
		Status:    newStatus,
		Note:      note,
		UpdatedBy: actor.ID,
		Timestamp: now,
	}
	inc.AppendTimelineEntry(entry)
	return entry, nil
}

// AppendResolutionPhotos attaches evidence of resolution work. It never
// touches the timeline or the status.
func AppendResolutionPhotos(inc *models.Incident, actor models.Actor, refs []string, now time.Time) error {
	if !CanManage(actor) {
		return &AuthorizationError{
			Reason: fmt.Sprintf("role %q is not allowed to upload resolution photos", actor.Role),
		}
	}
	if len(refs) == 0 {
		return &ValidationError{Field: "photos", Reason: "required"}
	}
	if len(refs) > MaxPhotosPerRequest {
		return &ValidationError{Field: "photos", Reason: fmt.Sprintf("at most %d photos per request", MaxPhotosPerRequest)}
	}
	inc.AppendResolutionPhotos(refs)
	inc.UpdatedAt = now
	return nil
}

// CanView reports whether the actor may read the incident. Citizens see only
// their own reports; authority and admin see everything.
func CanView(actor models.Actor, inc *models.Incident) bool {
	if CanManage(actor) {
		return true
	}
	return inc.ReporterID == actor.ID
}

// CanManage reports whether the actor may mutate incidents beyond creation.
func CanManage(actor models.Actor) bool {
	return actor.Role == models.RoleAuthority || actor.Role == models.RoleAdmin
}
