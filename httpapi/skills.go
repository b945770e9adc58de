package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"chatcore.dev/chatstream/reqctx"
	"chatcore.dev/chatstream/skill"
)

type skillRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

type skillResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
}

func toSkillResponse(s skill.Skill) skillResponse {
	return skillResponse{ID: s.ID, Name: s.Name, Description: s.Description, Content: s.Content}
}

func (ctrl Controller) listSkillsHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	rows, err := ctrl.Skills.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list skills"})
		return
	}
	out := make([]skillResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toSkillResponse(row))
	}
	c.JSON(http.StatusOK, gin.H{"skills": out})
}

func (ctrl Controller) createSkillHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	row, err := ctrl.Skills.Create(c.Request.Context(), userID, req.Name, req.Description, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, toSkillResponse(row))
}

func (ctrl Controller) getSkillHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	row, found, err := ctrl.Skills.Get(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get skill"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
		return
	}
	c.JSON(http.StatusOK, toSkillResponse(row))
}

func (ctrl Controller) updateSkillHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var description, content *string
	if req.Description != "" {
		description = &req.Description
	}
	if req.Content != "" {
		content = &req.Content
	}

	row, found, err := ctrl.Skills.Update(c.Request.Context(), id, userID, description, content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update skill"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
		return
	}
	c.JSON(http.StatusOK, toSkillResponse(row))
}

func (ctrl Controller) deleteSkillHandler(c *gin.Context) {
	userID, _ := reqctx.Caller(c.Request.Context())
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	deleted, err := ctrl.Skills.Delete(c.Request.Context(), id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete skill"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
