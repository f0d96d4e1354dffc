package surveyControllers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	surveyModels "lms/models/survey"
	surveyValidator "lms/validators/survey"
)

// CreateQuestion appends a question to a survey
func CreateQuestion(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	surveyID := c.Locals("surveyID").(uint)

	survey, errResp := requireSurveyOwner(c, user, surveyID)
	if survey == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedQuestion").(*surveyValidator.CreateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	options, err := json.Marshal(reqData.Options)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
	}

	var maxIndex int
	database.Database.Db.
		Model(&surveyModels.SurveyQuestion{}).
		Where("survey_id = ? AND is_deleted = ?", surveyID, false).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&maxIndex)

	question := surveyModels.SurveyQuestion{
		SurveyID:   surveyID,
		Prompt:     reqData.Prompt,
		Type:       reqData.Type,
		Options:    options,
		IsRequired: reqData.IsRequired,
		OrderIndex: maxIndex + 1,
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", question)
}

// UpdateQuestion updates an existing question
func UpdateQuestion(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	questionID := c.Locals("questionID").(uint)

	var question surveyModels.SurveyQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if survey, errResp := requireSurveyOwner(c, user, question.SurveyID); survey == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedQuestionUpdate").(*surveyValidator.UpdateQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Prompt != "" {
		question.Prompt = reqData.Prompt
	}
	if reqData.Type != "" {
		question.Type = reqData.Type
	}
	if reqData.Options != nil {
		options, err := json.Marshal(reqData.Options)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid options!", nil)
		}
		question.Options = options
	}
	if reqData.IsRequired != nil {
		question.IsRequired = *reqData.IsRequired
	}

	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question updated successfully!", question)
}

// DeleteQuestion soft deletes a question
func DeleteQuestion(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	questionID := c.Locals("questionID").(uint)

	var question surveyModels.SurveyQuestion
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	if survey, errResp := requireSurveyOwner(c, user, question.SurveyID); survey == nil {
		return errResp
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

// ReorderQuestions persists the given question order as sequential indices
func ReorderQuestions(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	surveyID := c.Locals("surveyID").(uint)

	survey, errResp := requireSurveyOwner(c, user, surveyID)
	if survey == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedReorder").(*surveyValidator.ReorderQuestionsRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Every id must belong to this survey
	var count int64
	database.Database.Db.
		Model(&surveyModels.SurveyQuestion{}).
		Where("id IN ? AND survey_id = ? AND is_deleted = ?", reqData.QuestionIDs, surveyID, false).
		Count(&count)
	if count != int64(len(reqData.QuestionIDs)) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown question id in order list!", nil)
	}

	for i, id := range reqData.QuestionIDs {
		if err := database.Database.Db.
			Model(&surveyModels.SurveyQuestion{}).
			Where("id = ?", id).
			Update("order_index", i+1).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder questions!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions reordered successfully!", nil)
}
