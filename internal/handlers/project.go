package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guilhermetechmakers/autopilot-studio/internal/models"
	"github.com/guilhermetechmakers/autopilot-studio/internal/utils"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft active completed cancelled"`
	Budget      float64    `json:"budget"`
	Currency    string     `json:"currency"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=draft active completed cancelled"`
	Budget      float64    `json:"budget"`
	Currency    string     `json:"currency"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type GetProjectResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Budget      float64    `json:"budget"`
	Currency    string     `json:"currency"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	OwnerID     uint       `json:"owner_id"`
}

type ProjectsHandler struct {
	DB *gorm.DB
}

func NewProjectsHandler(database *gorm.DB) *ProjectsHandler {
	return &ProjectsHandler{DB: database}
}

func projectResponse(project models.Project) GetProjectResponse {
	return GetProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Budget:      project.Budget,
		Currency:    project.Currency,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
		OwnerID:     project.OwnerID,
	}
}

func (h *ProjectsHandler) CreateProject(ctx *gin.Context) {
	var body CreateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	status := body.Status
	if status == "" {
		status = "draft"
	}

	currency := body.Currency
	if currency == "" {
		currency = "USD"
	}

	project := models.Project{
		Name:        body.Name,
		Description: body.Description,
		Status:      status,
		Budget:      body.Budget,
		Currency:    currency,
		StartDate:   body.StartDate,
		EndDate:     body.EndDate,
		OwnerID:     userID,
	}

	if err := h.DB.Create(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	ctx.JSON(http.StatusCreated, projectResponse(project))
}

func (h *ProjectsHandler) ListProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := h.DB.Where("owner_id = ?", userID).Find(&projects).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]GetProjectResponse, 0, len(projects))

	for _, project := range projects {
		response = append(response, projectResponse(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *ProjectsHandler) GetProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectsHandler) UpdateProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateProjectRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	project.Name = body.Name
	project.Description = body.Description
	project.Budget = body.Budget
	project.StartDate = body.StartDate
	project.EndDate = body.EndDate

	if body.Status != "" {
		project.Status = body.Status
	}

	if body.Currency != "" {
		project.Currency = body.Currency
	}

	if err := h.DB.Save(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	ctx.JSON(http.StatusOK, projectResponse(project))
}

func (h *ProjectsHandler) DeleteProject(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	if err := h.DB.Delete(&project).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ownedProject loads the project in the URL if the user owns it, writing the
// error response otherwise.
func ownedProject(database *gorm.DB, ctx *gin.Context, userID uint) (models.Project, bool) {
	var project models.Project
	projectID := ctx.Param("project_id")

	if err := database.Where("id = ? AND owner_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return models.Project{}, false
	}

	return project, true
}
