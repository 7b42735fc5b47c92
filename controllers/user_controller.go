package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
)

// GET /users/me
func GetProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var unlocks []models.UserUnlock
	if err := config.DB.Where("user_id = ?", user.ID).Find(&unlocks).Error; err != nil {
		utils.LogError("Failed to load unlocks for user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load profile", nil)
		return
	}

	unlockedItems := make([]string, 0, len(unlocks))
	for _, unlock := range unlocks {
		unlockedItems = append(unlockedItems, unlock.ItemID)
	}

	utils.Success(c, "Profile retrieved successfully", gin.H{
		"user":           user,
		"unlocked_items": unlockedItems,
	})
}

// PUT /users/me
func UpdateProfile(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		Name        *string `json:"name"`
		PhoneNumber *string `json:"phone_number"`
		Language    *string `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if ok, msg := utils.ValidateName(*req.Name); !ok {
			utils.BadRequest(c, msg, nil)
			return
		}
		updates["name"] = utils.SanitizeString(*req.Name)
	}
	if req.PhoneNumber != nil {
		phone, err := utils.FormatPhoneNumber(*req.PhoneNumber)
		if err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		updates["phone_number"] = phone
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if len(updates) == 0 {
		utils.Success(c, "Nothing to update", user)
		return
	}

	if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update profile for user %s: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update profile", nil)
		return
	}
	utils.Success(c, "Profile updated successfully", user)
}

// GET /users/:id (admin)
func GetUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, "User retrieved successfully", user)
}
