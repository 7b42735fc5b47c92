package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
	"gorm.io/datatypes"
)

// GET /tests?topicId=&createdBy=&page=&limit=
func ListTests(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Test{})
	if topicID := c.Query("topicId"); topicID != "" {
		query = query.Where("topic_id = ?", topicID)
	}
	if createdBy := c.Query("createdBy"); createdBy != "" {
		query = query.Where("created_by = ?", createdBy)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count tests: %v", err)
		utils.InternalServerError(c, "Failed to list tests", nil)
		return
	}
	pagination.SetTotal(total)

	var tests []models.Test
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&tests).Error; err != nil {
		utils.LogError("Failed to list tests: %v", err)
		utils.InternalServerError(c, "Failed to list tests", nil)
		return
	}
	utils.SendPaginatedResponse(c, tests, pagination)
}

// GET /tests/:id
func GetTest(c *gin.Context) {
	var test models.Test
	if err := config.DB.First(&test, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Test not found")
		return
	}
	utils.Success(c, "Test retrieved successfully", test)
}

// POST /tests
func CreateTest(c *gin.Context) {
	var req struct {
		Title           string   `json:"title" binding:"required"`
		Description     string   `json:"description"`
		TopicID         string   `json:"topic_id"`
		QuestionIDs     []string `json:"question_ids"`
		DurationMinutes int      `json:"duration_minutes"`
		IsPremium       bool     `json:"is_premium"`
		CreatedBy       string   `json:"created_by"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. title is required", err.Error())
		return
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = 60
	}
	questionIDs, _ := json.Marshal(req.QuestionIDs)

	test := models.Test{
		Title:           req.Title,
		Description:     req.Description,
		TopicID:         req.TopicID,
		QuestionIDs:     datatypes.JSON(questionIDs),
		DurationMinutes: req.DurationMinutes,
		IsPremium:       req.IsPremium,
		CreatedBy:       req.CreatedBy,
	}
	if err := config.DB.Create(&test).Error; err != nil {
		utils.LogError("Failed to create test: %v", err)
		utils.InternalServerError(c, "Failed to create test", nil)
		return
	}
	utils.Created(c, "Test created successfully", test)
}

// PUT /tests/:id
func UpdateTest(c *gin.Context) {
	var test models.Test
	if err := config.DB.First(&test, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Test not found")
		return
	}

	var req struct {
		Title           *string   `json:"title"`
		Description     *string   `json:"description"`
		QuestionIDs     *[]string `json:"question_ids"`
		DurationMinutes *int      `json:"duration_minutes"`
		IsPremium       *bool     `json:"is_premium"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.QuestionIDs != nil {
		questionIDs, _ := json.Marshal(*req.QuestionIDs)
		updates["question_ids"] = datatypes.JSON(questionIDs)
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.IsPremium != nil {
		updates["is_premium"] = *req.IsPremium
	}
	if err := config.DB.Model(&test).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update test %s: %v", test.ID, err)
		utils.InternalServerError(c, "Failed to update test", nil)
		return
	}
	utils.Success(c, "Test updated successfully", test)
}

// DELETE /tests/:id
func DeleteTest(c *gin.Context) {
	if err := config.DB.Delete(&models.Test{}, "id = ?", c.Param("id")).Error; err != nil {
		utils.LogError("Failed to delete test %s: %v", c.Param("id"), err)
		utils.InternalServerError(c, "Failed to delete test", nil)
		return
	}
	utils.Success(c, "Test deleted successfully", nil)
}
