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

// WorkspaceHandler serves the milestone and task surface of a project.
type WorkspaceHandler struct {
	DB *gorm.DB
}

func NewWorkspaceHandler(database *gorm.DB) *WorkspaceHandler {
	return &WorkspaceHandler{DB: database}
}

type CreateMilestoneRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
	DueDate     *time.Time `json:"due_date"`
	Budget      float64    `json:"budget"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress review completed"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	MilestoneID *uint      `json:"milestone_id"`
	AssigneeID  *uint      `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=todo in_progress review completed"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	MilestoneID *uint      `json:"milestone_id"`
	AssigneeID  *uint      `json:"assignee_id"`
	DueDate     *time.Time `json:"due_date"`
}

func (h *WorkspaceHandler) CreateMilestone(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateMilestoneRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	status := body.Status
	if status == "" {
		status = "pending"
	}

	milestone := models.Milestone{
		ProjectID:   project.ID,
		Name:        body.Name,
		Description: body.Description,
		Status:      status,
		DueDate:     body.DueDate,
		Budget:      body.Budget,
	}

	if err := h.DB.Create(&milestone).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create milestone"})
		return
	}

	ctx.JSON(http.StatusCreated, milestone)
}

func (h *WorkspaceHandler) ListMilestones(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	var milestones []models.Milestone

	if err := h.DB.Where("project_id = ?", project.ID).Order("due_date ASC").Find(&milestones).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestones"})
		return
	}

	ctx.JSON(http.StatusOK, milestones)
}

func (h *WorkspaceHandler) UpdateMilestone(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateMilestoneRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	var milestone models.Milestone

	if err := h.DB.Where("id = ? AND project_id = ?", ctx.Param("milestone_id"), project.ID).First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve milestone"})
		}
		return
	}

	milestone.Name = body.Name
	milestone.Description = body.Description
	milestone.DueDate = body.DueDate
	milestone.Budget = body.Budget

	if body.Status != "" {
		milestone.Status = body.Status
	}

	if err := h.DB.Save(&milestone).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update milestone"})
		return
	}

	ctx.JSON(http.StatusOK, milestone)
}

func (h *WorkspaceHandler) DeleteMilestone(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	tx := h.DB.Where("project_id = ?", project.ID).Delete(&models.Milestone{}, "id = ?", ctx.Param("milestone_id"))

	if tx.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete milestone"})
		return
	}

	if tx.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Milestone not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *WorkspaceHandler) CreateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	status := body.Status
	if status == "" {
		status = "todo"
	}

	priority := body.Priority
	if priority == "" {
		priority = "medium"
	}

	task := models.Task{
		ProjectID:   project.ID,
		MilestoneID: body.MilestoneID,
		Title:       body.Title,
		Description: body.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  body.AssigneeID,
		DueDate:     body.DueDate,
	}

	if err := h.DB.Create(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func (h *WorkspaceHandler) ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	q := h.DB.Where("project_id = ?", project.ID)

	if status := ctx.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if milestoneID := ctx.Query("milestone_id"); milestoneID != "" {
		q = q.Where("milestone_id = ?", milestoneID)
	}

	var tasks []models.Task

	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *WorkspaceHandler) UpdateTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateTaskRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	var task models.Task

	if err := h.DB.Where("id = ? AND project_id = ?", ctx.Param("task_id"), project.ID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return
	}

	task.Title = body.Title
	task.Description = body.Description
	task.MilestoneID = body.MilestoneID
	task.AssigneeID = body.AssigneeID
	task.DueDate = body.DueDate

	if body.Status != "" {
		task.Status = body.Status
	}

	if body.Priority != "" {
		task.Priority = body.Priority
	}

	if err := h.DB.Save(&task).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *WorkspaceHandler) DeleteTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, ok := ownedProject(h.DB, ctx, userID)
	if !ok {
		return
	}

	tx := h.DB.Where("project_id = ?", project.ID).Delete(&models.Task{}, "id = ?", ctx.Param("task_id"))

	if tx.Error != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	if tx.RowsAffected == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

