package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
)

// GET /topics?page=&limit=
func ListTopics(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Topic{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count topics: %v", err)
		utils.InternalServerError(c, "Failed to list topics", nil)
		return
	}
	pagination.SetTotal(total)

	var topics []models.Topic
	if err := config.DB.Offset(pagination.Offset).Limit(pagination.Limit).Find(&topics).Error; err != nil {
		utils.LogError("Failed to list topics: %v", err)
		utils.InternalServerError(c, "Failed to list topics", nil)
		return
	}
	utils.SendPaginatedResponse(c, topics, pagination)
}

// GET /topics/:id
func GetTopic(c *gin.Context) {
	var topic models.Topic
	if err := config.DB.First(&topic, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Topic not found")
		return
	}
	utils.Success(c, "Topic retrieved successfully", topic)
}

// POST /topics
func CreateTopic(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. name is required", err.Error())
		return
	}

	topic := models.Topic{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	if err := config.DB.Create(&topic).Error; err != nil {
		utils.LogError("Failed to create topic: %v", err)
		utils.InternalServerError(c, "Failed to create topic", nil)
		return
	}
	utils.Created(c, "Topic created successfully", topic)
}

// PUT /topics/:id
func UpdateTopic(c *gin.Context) {
	var topic models.Topic
	if err := config.DB.First(&topic, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Topic not found")
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Icon        *string `json:"icon"`
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
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if err := config.DB.Model(&topic).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update topic %s: %v", topic.ID, err)
		utils.InternalServerError(c, "Failed to update topic", nil)
		return
	}
	utils.Success(c, "Topic updated successfully", topic)
}

// DELETE /topics/:id
func DeleteTopic(c *gin.Context) {
	if err := config.DB.Delete(&models.Topic{}, "id = ?", c.Param("id")).Error; err != nil {
		utils.LogError("Failed to delete topic %s: %v", c.Param("id"), err)
		utils.InternalServerError(c, "Failed to delete topic", nil)
		return
	}
	utils.Success(c, "Topic deleted successfully", nil)
}
