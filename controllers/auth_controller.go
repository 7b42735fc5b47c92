package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
	"gorm.io/gorm"
)

// POST /auth/request-otp
func RequestOTP(c *gin.Context) {
	utils.LogInfo("RequestOTP called")

	var req struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "A valid email is required", err.Error())
		return
	}

	// Find or create the account for this email
	var user models.User
	err := config.DB.Where("email = ?", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: req.Email, Name: req.Name, Tier: models.TierFree}
		if err := config.DB.Create(&user).Error; err != nil {
			utils.LogError("Failed to create user for %s: %v", req.Email, err)
			utils.InternalServerError(c, "Failed to create account", nil)
			return
		}
	} else if err != nil {
		utils.LogError("Failed to look up user %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to look up account", nil)
		return
	}

	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		utils.LogError("Failed to generate OTP: %v", err)
		utils.InternalServerError(c, "Failed to generate code", nil)
		return
	}
	hash, err := utils.HashOTP(code)
	if err != nil {
		utils.LogError("Failed to hash OTP: %v", err)
		utils.InternalServerError(c, "Failed to generate code", nil)
		return
	}

	otp := models.UserOTP{
		Email:     req.Email,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(utils.OTPExpiration),
	}
	if err := config.DB.Create(&otp).Error; err != nil {
		utils.LogError("Failed to store OTP for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to generate code", nil)
		return
	}

	if err := utils.SendOTP(req.Email, code); err != nil {
		utils.LogError("Failed to email OTP to %s: %v", req.Email, err)
		utils.InternalServerError(c, "Failed to send code", nil)
		return
	}

	utils.LogInfo("OTP sent to %s", req.Email)
	utils.Success(c, "Login code sent", gin.H{"email": req.Email})
}

// POST /auth/verify-otp
func VerifyOTP(c *gin.Context) {
	utils.LogInfo("VerifyOTP called")

	var req struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "email and code are required", err.Error())
		return
	}

	var otp models.UserOTP
	err := config.DB.Where("email = ? AND consumed = ? AND expires_at > ?", req.Email, false, time.Now()).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		utils.LogError("No active OTP for %s: %v", req.Email, err)
		utils.Unauthorized(c, "Invalid or expired code")
		return
	}

	if !utils.CheckOTP(req.Code, otp.CodeHash) {
		utils.LogError("OTP mismatch for %s", req.Email)
		utils.Unauthorized(c, "Invalid or expired code")
		return
	}

	if err := config.DB.Model(&otp).Update("consumed", true).Error; err != nil {
		utils.LogError("Failed to consume OTP for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("User not found for %s: %v", req.Email, err)
		utils.Unauthorized(c, "Account not found")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.LogError("Failed to issue token for %s: %v", req.Email, err)
		utils.InternalServerError(c, "Login failed", nil)
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())

	utils.LogInfo("User %s logged in", user.ID)
	utils.Success(c, "Login successful", gin.H{"token": token, "user": user})
}
