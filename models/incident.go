package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category enum
type Category string

const (
	CategoryRoad        Category = "road"
	CategoryWater       Category = "water"
	CategoryElectricity Category = "electricity"
	CategoryWaste       Category = "waste"
	CategorySafety      Category = "safety"
	CategoryOther       Category = "other"
)

// Categories lists every valid category value.
var Categories = []Category{
	CategoryRoad, CategoryWater, CategoryElectricity,
	CategoryWaste, CategorySafety, CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Status enum
type Status string

const (
	StatusPending      Status = "pending"
	StatusAcknowledged Status = "acknowledged"
	StatusInProgress   Status = "in-progress"
	StatusResolved     Status = "resolved"
	StatusRejected     Status = "rejected"
)

var Statuses = []Status{
	StatusPending, StatusAcknowledged, StatusInProgress,
	StatusResolved, StatusRejected,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// TimelineEntry is one audit record in an incident's history. Entries are
// immutable once appended.
type TimelineEntry struct {
	Status    Status             `bson:"status" json:"status"`
	Note      string             `bson:"note" json:"note"`
	UpdatedBy primitive.ObjectID `bson:"updatedBy" json:"updatedBy"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}

// Incident represents a citizen-reported incident
type Incident struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	Category         Category           `bson:"category" json:"category"`
	Photos           []string           `bson:"photos" json:"photos"`
	Latitude         float64            `bson:"latitude" json:"latitude"`
	Longitude        float64            `bson:"longitude" json:"longitude"`
	Address          string             `bson:"address,omitempty" json:"address,omitempty"`
	Status           Status             `bson:"status" json:"status"`
	ReporterID       primitive.ObjectID `bson:"reporterId" json:"reporterId"`
	Deadline         *time.Time         `bson:"deadline,omitempty" json:"deadline,omitempty"`
	Timeline         []TimelineEntry    `bson:"timeline" json:"timeline"`
	ResolutionPhotos []string           `bson:"resolutionPhotos" json:"resolutionPhotos"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AppendTimelineEntry records a status change. Status and the last timeline
// entry stay in lock-step; this is the only mutation path for either field.
func (i *Incident) AppendTimelineEntry(entry TimelineEntry) {
	i.Timeline = append(i.Timeline, entry)
	i.Status = entry.Status
	i.UpdatedAt = entry.Timestamp
}

// AppendResolutionPhotos adds photo references in the order given.
func (i *Incident) AppendResolutionPhotos(refs []string) {
	i.ResolutionPhotos = append(i.ResolutionPhotos, refs...)
}

// LastTimelineEntry returns the most recent audit record, or nil for an
// incident that has not been through creation yet.
func (i *Incident) LastTimelineEntry() *TimelineEntry {
	if len(i.Timeline) == 0 {
		return nil
	}
	return &i.Timeline[len(i.Timeline)-1]
}
