package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/htw-hub/questboard-api/internal/errors"
	"github.com/htw-hub/questboard-api/internal/services"
)

// AIHandler serves the assistant endpoints. Each one answers even when the
// model is unreachable.
type AIHandler struct {
	aiService *services.AIService
}

func NewAIHandler(aiService *services.AIService) *AIHandler {
	return &AIHandler{
		aiService: aiService,
	}
}

// TaskHelp answers a tasker's question about a task
func (h *AIHandler) TaskHelp(c *gin.Context) {
	type TaskHelpRequest struct {
		TaskID          string `json:"taskId"`
		UserInput       string `json:"userInput" binding:"required"`
		TaskTitle       string `json:"taskTitle" binding:"required"`
		TaskDescription string `json:"taskDescription"`
	}

	var req TaskHelpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	reply := h.aiService.TaskHelp(c.Request.Context(), services.TaskHelpInput{
		TaskTitle:       req.TaskTitle,
		TaskDescription: req.TaskDescription,
		UserInput:       req.UserInput,
	})

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// OrganizationAssistant answers an organizer's question
func (h *AIHandler) OrganizationAssistant(c *gin.Context) {
	type Performance struct {
		CompletionRate int    `json:"completionRate"`
		ActiveMembers  int    `json:"activeMembers"`
		AvgTaskTime    string `json:"avgTaskTime"`
		TotalTasks     int    `json:"totalTasks"`
		CompletedTasks int    `json:"completedTasks"`
	}
	type AssistantContext struct {
		OrganizationName string            `json:"organizationName"`
		UserName         string            `json:"userName"`
		UserRole         string            `json:"userRole"`
		Performance      Performance       `json:"performance"`
		RecentTasks      []json.RawMessage `json:"recentTasks"`
	}
	type AssistantRequest struct {
		Message string           `json:"message" binding:"required"`
		Context AssistantContext `json:"context"`
	}

	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	p := req.Context.Performance
	reply := h.aiService.OrganizationAssistant(c.Request.Context(), req.Message, services.OrganizationContext{
		OrganizationName: req.Context.OrganizationName,
		UserName:         req.Context.UserName,
		UserRole:         req.Context.UserRole,
		Performance: services.OrganizationPerformance{
			CompletionRate: p.CompletionRate,
			ActiveMembers:  p.ActiveMembers,
			AvgTaskTime:    p.AvgTaskTime,
			TotalTasks:     p.TotalTasks,
			CompletedTasks: p.CompletedTasks,
		},
		RecentTaskCount: len(req.Context.RecentTasks),
	})

	c.JSON(http.StatusOK, gin.H{"response": reply})
}

// GenerateInfographic renders an infographic for a task
func (h *AIHandler) GenerateInfographic(c *gin.Context) {
	type InfographicRequest struct {
		TaskTitle       string `json:"taskTitle" binding:"required"`
		TaskDescription string `json:"taskDescription"`
		TaskCategory    string `json:"taskCategory"`
		Iteration       int    `json:"iteration" binding:"min=0"`
		UserFeedback    string `json:"userFeedback"`
		CurrentPrompt   string `json:"currentPrompt"`
	}

	var req InfographicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	out := h.aiService.GenerateInfographic(c.Request.Context(), services.InfographicInput{
		TaskTitle:       req.TaskTitle,
		TaskDescription: req.TaskDescription,
		TaskCategory:    req.TaskCategory,
		Iteration:       req.Iteration,
		UserFeedback:    req.UserFeedback,
		CurrentPrompt:   req.CurrentPrompt,
	})

	c.JSON(http.StatusOK, out)
}
