package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
)

// GET /subtopics?topicId=&page=&limit=
func ListSubtopics(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Subtopic{})
	if topicID := c.Query("topicId"); topicID != "" {
		query = query.Where("topic_id = ?", topicID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count subtopics: %v", err)
		utils.InternalServerError(c, "Failed to list subtopics", nil)
		return
	}
	pagination.SetTotal(total)

	var subtopics []models.Subtopic
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&subtopics).Error; err != nil {
		utils.LogError("Failed to list subtopics: %v", err)
		utils.InternalServerError(c, "Failed to list subtopics", nil)
		return
	}
	utils.SendPaginatedResponse(c, subtopics, pagination)
}

// GET /subtopics/:id
func GetSubtopic(c *gin.Context) {
	var subtopic models.Subtopic
	if err := config.DB.First(&subtopic, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Subtopic not found")
		return
	}
	utils.Success(c, "Subtopic retrieved successfully", subtopic)
}

// POST /subtopics
func CreateSubtopic(c *gin.Context) {
	var req struct {
		TopicID     string `json:"topic_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. topic_id and name are required", err.Error())
		return
	}

	if err := config.DB.First(&models.Topic{}, "id = ?", req.TopicID).Error; err != nil {
		utils.NotFound(c, "Topic not found")
		return
	}

	subtopic := models.Subtopic{
		TopicID:     req.TopicID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := config.DB.Create(&subtopic).Error; err != nil {
		utils.LogError("Failed to create subtopic: %v", err)
		utils.InternalServerError(c, "Failed to create subtopic", nil)
		return
	}
	utils.Created(c, "Subtopic created successfully", subtopic)
}

// PUT /subtopics/:id
func UpdateSubtopic(c *gin.Context) {
	var subtopic models.Subtopic
	if err := config.DB.First(&subtopic, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Subtopic not found")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := config.DB.Model(&subtopic).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update subtopic %s: %v", subtopic.ID, err)
		utils.InternalServerError(c, "Failed to update subtopic", nil)
		return
	}
	utils.Success(c, "Subtopic updated successfully", subtopic)
}

// DELETE /subtopics/:id
func DeleteSubtopic(c *gin.Context) {
	if err := config.DB.Delete(&models.Subtopic{}, "id = ?", c.Param("id")).Error; err != nil {
		utils.LogError("Failed to delete subtopic %s: %v", c.Param("id"), err)
		utils.InternalServerError(c, "Failed to delete subtopic", nil)
		return
	}
	utils.Success(c, "Subtopic deleted successfully", nil)
}
