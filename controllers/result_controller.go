package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
)

// POST /results
func SubmitResult(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		TestID           string `json:"test_id" binding:"required"`
		Score            int    `json:"score"`
		TotalPoints      int    `json:"total_points" binding:"required"`
		CorrectCount     int    `json:"correct_count"`
		TotalQuestions   int    `json:"total_questions"`
		TimeTakenSeconds int    `json:"time_taken_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. test_id and total_points are required", err.Error())
		return
	}
	if req.Score < 0 || req.TotalPoints <= 0 || req.Score > req.TotalPoints {
		utils.BadRequest(c, "Score must be between 0 and total_points", nil)
		return
	}

	var test models.Test
	if err := config.DB.First(&test, "id = ?", req.TestID).Error; err != nil {
		utils.NotFound(c, "Test not found")
		return
	}

	var attempts int64
	err := config.DB.Model(&models.Result{}).
		Where("user_id = ? AND test_id = ?", user.ID, req.TestID).
		Count(&attempts).Error
	if err != nil {
		utils.LogError("Failed to check attempts for user %s, test %s: %v", user.ID, req.TestID, err)
		utils.InternalServerError(c, "Failed to submit result", nil)
		return
	}
	if attempts > 0 {
		utils.Error(c, http.StatusConflict, "Test already attempted", nil)
		return
	}

	result := models.Result{
		UserID:           user.ID,
		TestID:           req.TestID,
		Score:            req.Score,
		TotalPoints:      req.TotalPoints,
		CorrectCount:     req.CorrectCount,
		TotalQuestions:   req.TotalQuestions,
		TimeTakenSeconds: req.TimeTakenSeconds,
	}
	if err := config.DB.Create(&result).Error; err != nil {
		utils.LogError("Failed to save result for user %s, test %s: %v", user.ID, req.TestID, err)
		utils.InternalServerError(c, "Failed to submit result", nil)
		return
	}

	utils.LogInfo("Result saved for user %s, test %s: %d/%d", user.ID, req.TestID, req.Score, req.TotalPoints)
	utils.Created(c, "Result submitted successfully", gin.H{
		"result":     result,
		"percentage": result.Percentage(),
	})
}

// GET /results/me
func MyResults(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var results []models.Result
	err := config.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		utils.LogError("Failed to list results for user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list results", nil)
		return
	}
	utils.Success(c, "Results retrieved successfully", results)
}

// GET /results/test/:id?since= (admin)
func TestResults(c *gin.Context) {
	query := config.DB.Where("test_id = ?", c.Param("id"))
	if since := c.Query("since"); since != "" {
		cutoff, err := time.Parse(time.RFC3339, since)
		if err != nil {
			utils.BadRequest(c, "since must be an RFC3339 timestamp", err.Error())
			return
		}
		query = query.Where("created_at > ?", cutoff)
	}

	var results []models.Result
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		utils.LogError("Failed to list results for test %s: %v", c.Param("id"), err)
		utils.InternalServerError(c, "Failed to list results", nil)
		return
	}
	utils.Success(c, "Results retrieved successfully", results)
}

// GET /results/test/:id/leaderboard
func TestLeaderboard(c *gin.Context) {
	pagination := utils.NewPagination(c)

	var results []models.Result
	err := config.DB.Where("test_id = ?", c.Param("id")).
		Order("score DESC, time_taken_seconds ASC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&results).Error
	if err != nil {
		utils.LogError("Failed to build leaderboard for test %s: %v", c.Param("id"), err)
		utils.InternalServerError(c, "Failed to build leaderboard", nil)
		return
	}
	utils.Success(c, "Leaderboard retrieved successfully", results)
}
