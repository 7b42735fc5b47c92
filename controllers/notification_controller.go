package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
)

// GET /notifications?page=&limit=
func ListNotifications(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Notification{}).Where("user_id = ?", user.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count notifications for user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list notifications", nil)
		return
	}
	pagination.SetTotal(total)

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&notifications).Error
	if err != nil {
		utils.LogError("Failed to list notifications for user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to list notifications", nil)
		return
	}
	utils.SendPaginatedResponse(c, notifications, pagination)
}

// GET /notifications/unread-count
func UnreadNotificationCount(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var count int64
	err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", user.ID, false).
		Count(&count).Error
	if err != nil {
		utils.LogError("Failed to count notifications for user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to count notifications", nil)
		return
	}
	utils.Success(c, "Unread count retrieved successfully", gin.H{"count": count})
}

// PUT /notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	result := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), user.ID).
		Update("read", true)
	if result.Error != nil {
		utils.LogError("Failed to mark notification %s read: %v", c.Param("id"), result.Error)
		utils.InternalServerError(c, "Failed to update notification", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "Notification not found")
		return
	}
	utils.Success(c, "Notification marked as read", nil)
}

// POST /notifications (admin)
func CreateNotification(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id" binding:"required"`
		Title  string `json:"title" binding:"required"`
		Body   string `json:"body"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. user_id and title are required", err.Error())
		return
	}

	notification := models.Notification{
		UserID: req.UserID,
		Title:  req.Title,
		Body:   req.Body,
	}
	if err := config.DB.Create(&notification).Error; err != nil {
		utils.LogError("Failed to create notification: %v", err)
		utils.InternalServerError(c, "Failed to create notification", nil)
		return
	}
	utils.Created(c, "Notification created successfully", notification)
}
