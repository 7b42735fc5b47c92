package controllers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/config"
	"github.com/mockanytime/dakplus/models"
	"github.com/mockanytime/dakplus/utils"
	"gorm.io/datatypes"
)

// GET /questions?topicId=&subtopicId=&page=&limit=
func ListQuestions(c *gin.Context) {
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Question{})
	if topicID := c.Query("topicId"); topicID != "" {
		query = query.Where("topic_id = ?", topicID)
	}
	if subtopicID := c.Query("subtopicId"); subtopicID != "" {
		query = query.Where("subtopic_id = ?", subtopicID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count questions: %v", err)
		utils.InternalServerError(c, "Failed to list questions", nil)
		return
	}
	pagination.SetTotal(total)

	var questions []models.Question
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&questions).Error; err != nil {
		utils.LogError("Failed to list questions: %v", err)
		utils.InternalServerError(c, "Failed to list questions", nil)
		return
	}
	utils.SendPaginatedResponse(c, questions, pagination)
}

// GET /questions/:id
func GetQuestion(c *gin.Context) {
	var question models.Question
	if err := config.DB.First(&question, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Question not found")
		return
	}
	utils.Success(c, "Question retrieved successfully", question)
}

type questionRequest struct {
	Text          string   `json:"text" binding:"required"`
	TextTe        string   `json:"text_te"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	OptionsTe     []string `json:"options_te"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Explanation   string   `json:"explanation"`
	ExplanationTe string   `json:"explanation_te"`
	Points        int      `json:"points"`
	TopicID       string   `json:"topic_id"`
	SubtopicID    string   `json:"subtopic_id"`
	ImageURL      string   `json:"image_url"`
}

func marshalOptions(options []string) datatypes.JSON {
	if len(options) == 0 {
		return datatypes.JSON("[]")
	}
	raw, _ := json.Marshal(options)
	return datatypes.JSON(raw)
}

// POST /questions
func CreateQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request. text and correct_answer are required", err.Error())
		return
	}

	if req.Type == "" {
		req.Type = "mcq"
	}
	if req.Points == 0 {
		req.Points = 1
	}

	question := models.Question{
		Text:          req.Text,
		TextTe:        req.TextTe,
		Type:          req.Type,
		Options:       marshalOptions(req.Options),
		OptionsTe:     marshalOptions(req.OptionsTe),
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
		ExplanationTe: req.ExplanationTe,
		Points:        req.Points,
		TopicID:       req.TopicID,
		SubtopicID:    req.SubtopicID,
		ImageURL:      req.ImageURL,
	}
	if err := config.DB.Create(&question).Error; err != nil {
		utils.LogError("Failed to create question: %v", err)
		utils.InternalServerError(c, "Failed to create question", nil)
		return
	}
	utils.Created(c, "Question created successfully", question)
}

// PUT /questions/:id
func UpdateQuestion(c *gin.Context) {
	var question models.Question
	if err := config.DB.First(&question, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Question not found")
		return
	}

	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	question.Text = req.Text
	question.TextTe = req.TextTe
	if req.Type != "" {
		question.Type = req.Type
	}
	question.Options = marshalOptions(req.Options)
	question.OptionsTe = marshalOptions(req.OptionsTe)
	question.CorrectAnswer = req.CorrectAnswer
	question.Explanation = req.Explanation
	question.ExplanationTe = req.ExplanationTe
	if req.Points > 0 {
		question.Points = req.Points
	}
	question.TopicID = req.TopicID
	question.SubtopicID = req.SubtopicID
	question.ImageURL = req.ImageURL

	if err := config.DB.Save(&question).Error; err != nil {
		utils.LogError("Failed to update question %s: %v", question.ID, err)
		utils.InternalServerError(c, "Failed to update question", nil)
		return
	}
	utils.Success(c, "Question updated successfully", question)
}

// DELETE /questions/:id
func DeleteQuestion(c *gin.Context) {
	if err := config.DB.Delete(&models.Question{}, "id = ?", c.Param("id")).Error; err != nil {
		utils.LogError("Failed to delete question %s: %v", c.Param("id"), err)
		utils.InternalServerError(c, "Failed to delete question", nil)
		return
	}
	utils.Success(c, "Question deleted successfully", nil)
}
