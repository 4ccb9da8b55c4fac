package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"sirrs-be/config"
	"sirrs-be/lifecycle"
	"sirrs-be/middlewares"
	"sirrs-be/models"
	"sirrs-be/storage"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func incidentCollection() *mongo.Collection { return config.GetCollection("incidents") }
func userCollection() *mongo.Collection { return config.GetCollection("users") }

// incidentResponse embeds the incident with the reporter's public details.
type incidentResponse struct {
	models.Incident
	Reporter map[string]interface{} `json:"reporter,omitempty"`
}

// reporterInfo looks up the public fields of the reporting user. A missing
// user record just leaves the embed nil rather than failing the request.
func reporterInfo(ctx context.Context, reporterID primitive.ObjectID) map[string]interface{} {
	var reporter models.User
	if err := userCollection().FindOne(ctx, bson.M{"_id": reporterID}).Decode(&reporter); err != nil {
		return nil
	}
	return map[string]interface{}{
		"name":  reporter.Name,
		"email": reporter.Email,
	}
}

// respondLifecycleError maps the engine's typed failures onto HTTP statuses.
func respondLifecycleError(c *gin.Context, err error) {
	var vErr *lifecycle.ValidationError
	var aErr *lifecycle.AuthorizationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.As(err, &aErr):
		c.JSON(http.StatusForbidden, gin.H{"error": aErr.Error()})
	case errors.Is(err, lifecycle.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
	case errors.Is(err, lifecycle.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// CreateIncident handles a citizen filing a new incident. Photos arrive as
// multipart files; the category is auto-suggested from the description when
// the reporter does not pick one.
func CreateIncident(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	photos, err := storage.SavePhotos(c, "photos")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := lifecycle.NewIncidentInput{
		ReporterID:  actor.ID,
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Category:    models.Category(c.PostForm("category")),
		Photos:      photos,
		Address:     c.PostForm("address"),
	}

	if lat, err := strconv.ParseFloat(c.PostForm("lat"), 64); err == nil {
		input.Latitude = &lat
	}
	if lng, err := strconv.ParseFloat(c.PostForm("lng"), 64); err == nil {
		input.Longitude = &lng
	}
	if deadlineStr := c.PostForm("deadline"); deadlineStr != "" {
		deadline, err := parseDeadline(deadlineStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid deadline"})
			return
		}
		input.Deadline = &deadline
	}

	incident, suggested, err := lifecycle.NewIncident(input, time.Now())
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := incidentCollection().InsertOne(ctx, incident); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create incident"})
		return
	}

	var aiSuggestion interface{}
	if suggested {
		aiSuggestion = incident.Category
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"incident": incidentResponse{
			Incident: *incident,
			Reporter: reporterInfo(ctx, incident.ReporterID),
		},
		"aiSuggestion": aiSuggestion,
	})
}

func parseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// GetIncidents lists incidents with filtering and pagination. Citizens only
// ever see their own reports, whatever filters they send.
func GetIncidents(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	status := c.Query("status")
	category := c.Query("category")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if category != "" {
		filter["category"] = category
	}
	if !lifecycle.CanManage(actor) {
		filter["reporterId"] = actor.ID
	}

	skip := (page - 1) * limit

	total, err := incidentCollection().CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count incidents"})
		return
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := incidentCollection().Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve incidents"})
		return
	}
	defer cursor.Close(ctx)

	var incidents []models.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode incidents"})
		return
	}

	responses := make([]incidentResponse, 0, len(incidents))
	for _, incident := range incidents {
		responses = append(responses, incidentResponse{
			Incident: incident,
			Reporter: reporterInfo(ctx, incident.ReporterID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"incidents": responses,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": Pages(total, limit),
		},
	})
}

// Pages computes the page count for a result set.
func Pages(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

// GetIncident retrieves a single incident, enforcing visibility.
func GetIncident(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	incidentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	incident, err := loadIncident(ctx, incidentID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	if !lifecycle.CanView(actor, incident) {
		respondLifecycleError(c, &lifecycle.AuthorizationError{
			Reason: "Not authorized to view this incident",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"incident": incidentResponse{
			Incident: *incident,
			Reporter: reporterInfo(ctx, incident.ReporterID),
		},
	})
}

func loadIncident(ctx context.Context, id primitive.ObjectID) (*models.Incident, error) {
	var incident models.Incident
	err := incidentCollection().FindOne(ctx, bson.M{"_id": id}).Decode(&incident)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, lifecycle.ErrNotFound
		}
		return nil, err
	}
	return &incident, nil
}

// UpdateStatus moves an incident to a new status and appends the matching
// timeline entry. Both land in one document update, so status and timeline
// can never diverge under concurrent transitions.
func UpdateStatus(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	incidentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
		Note   string `json:"note"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	incident, err := loadIncident(ctx, incidentID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	entry, err := lifecycle.ApplyTransition(incident, actor, models.Status(input.Status), input.Note, time.Now())
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	update := bson.M{
		"$set":  bson.M{"status": entry.Status, "updatedAt": entry.Timestamp},
		"$push": bson.M{"timeline": entry},
	}
	if _, err := incidentCollection().UpdateOne(ctx, bson.M{"_id": incidentID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incident"})
		return
	}

	updated, err := loadIncident(ctx, incidentID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"incident": incidentResponse{
			Incident: *updated,
			Reporter: reporterInfo(ctx, updated.ReporterID),
		},
	})
}

// UploadResolutionPhotos attaches photos documenting resolution work. The
// timeline and status are untouched.
func UploadResolutionPhotos(c *gin.Context) {
	actor, ok := middlewares.Actor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	incidentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	incident, err := loadIncident(ctx, incidentID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	photos, err := storage.SavePhotos(c, "photos")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	if err := lifecycle.AppendResolutionPhotos(incident, actor, photos, now); err != nil {
		respondLifecycleError(c, err)
		return
	}

	update := bson.M{
		"$set":  bson.M{"updatedAt": now},
		"$push": bson.M{"resolutionPhotos": bson.M{"$each": photos}},
	}
	if _, err := incidentCollection().UpdateOne(ctx, bson.M{"_id": incidentID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incident"})
		return
	}

	updated, err := loadIncident(ctx, incidentID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"photos":  photos,
		"incident": incidentResponse{
			Incident: *updated,
			Reporter: reporterInfo(ctx, updated.ReporterID),
		},
	})
}
