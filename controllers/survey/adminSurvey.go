package surveyControllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	surveyModels "lms/models/survey"
	"lms/utils"
	surveyValidator "lms/validators/survey"
)

// requireSurveyOwner loads a survey and enforces the ownership rule: only
// the creator or an admin may touch it. On failure the response is already
// written and the returned survey is nil.
func requireSurveyOwner(c *fiber.Ctx, user *models.User, surveyID uint) (*surveyModels.Survey, error) {
	var survey surveyModels.Survey
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", surveyID, false).First(&survey).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Survey not found!", nil)
	}

	if !user.IsAdmin() && survey.CreatedByID != user.ID {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this survey!", nil)
	}

	return &survey, nil
}

// CreateSurvey creates a new draft survey owned by the caller
func CreateSurvey(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedSurvey").(*surveyValidator.CreateSurveyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// An attached course must be owned by the caller
	if reqData.CourseID != nil {
		var course struct{ InstructorID uint }
		err := database.Database.Db.
			Table("courses").
			Select("instructor_id").
			Where("id = ? AND is_deleted = ?", *reqData.CourseID, false).
			Scan(&course).Error
		if err != nil || course.InstructorID == 0 {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		if !user.IsAdmin() && course.InstructorID != user.ID {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
		}
	}

	survey := surveyModels.Survey{
		Title:       reqData.Title,
		Description: reqData.Description,
		CourseID:    reqData.CourseID,
		CreatedByID: user.ID,
		Status:      surveyModels.StatusDraft,
		StartsAt:    reqData.StartsAt,
		EndsAt:      reqData.EndsAt,
		IsAnonymous: reqData.IsAnonymous,
	}

	if err := database.Database.Db.Create(&survey).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create survey!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Survey created successfully!", survey)
}

// ListSurveys lists the caller's surveys; admins see every survey
func ListSurveys(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*surveyValidator.ListRequest)

	var pagePtr, limitPtr *int
	if reqData != nil {
		pagePtr, limitPtr = reqData.Page, reqData.Limit
	}
	page, limit, offset := utils.Pagination(pagePtr, limitPtr)

	db := database.Database.Db.Model(&surveyModels.Survey{}).Where("is_deleted = ?", false)
	if !user.IsAdmin() {
		db = db.Where("created_by_id = ?", user.ID)
	}

	var total int64
	db.Count(&total)

	var surveys []surveyModels.Survey
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&surveys).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch surveys!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Surveys fetched successfully!", fiber.Map{
		"surveys": surveys,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetSurveyDetails gets a single survey with its questions and response count
func GetSurveyDetails(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	surveyID := c.Locals("surveyID").(uint)

	survey, errResp := requireSurveyOwner(c, user, surveyID)
	if survey == nil {
		return errResp
	}

	var questions []surveyModels.SurveyQuestion
	database.Database.Db.
		Where("survey_id = ? AND is_deleted = ?", surveyID, false).
		Order("order_index asc").
		Find(&questions)

	var responseCount int64
	database.Database.Db.
		Model(&surveyModels.SurveyResponse{}).
		Where("survey_id = ? AND is_deleted = ?", surveyID, false).
		Count(&responseCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Survey details fetched successfully!", fiber.Map{
		"survey":         survey,
		"questions":      questions,
		"response_count": responseCount,
	})
}

// UpdateSurvey updates an existing survey
func UpdateSurvey(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	surveyID := c.Locals("surveyID").(uint)

	survey, errResp := requireSurveyOwner(c, user, surveyID)
	if survey == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedSurveyUpdate").(*surveyValidator.UpdateSurveyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		survey.Title = reqData.Title
	}
	if reqData.Description != "" {
		survey.Description = reqData.Description
	}
	if reqData.StartsAt != nil {
		survey.StartsAt = reqData.StartsAt
	}
	if reqData.EndsAt != nil {
		survey.EndsAt = reqData.EndsAt
	}
	if reqData.IsAnonymous != nil {
		survey.IsAnonymous = *reqData.IsAnonymous
	}

	if err := database.Database.Db.Save(survey).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update survey!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Survey updated successfully!", survey)
}

// DeleteSurvey soft deletes a survey
func DeleteSurvey(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	surveyID := c.Locals("surveyID").(uint)

	survey, errResp := requireSurveyOwner(c, user, surveyID)
	if survey == nil {
		return errResp
	}

	survey.IsDeleted = true
	if err := database.Database.Db.Save(survey).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete survey!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Survey deleted successfully!", nil)
}

// SetSurveyStatus activates or closes a survey. Activation requires at
// least one question.
func SetSurveyStatus(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	surveyID := c.Locals("surveyID").(uint)
	status := c.Locals("surveyStatus").(string)

	survey, errResp := requireSurveyOwner(c, user, surveyID)
	if survey == nil {
		return errResp
	}

	if status == surveyModels.StatusActive {
		var questionCount int64
		database.Database.Db.
			Model(&surveyModels.SurveyQuestion{}).
			Where("survey_id = ? AND is_deleted = ?", surveyID, false).
			Count(&questionCount)
		if questionCount == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot activate a survey without questions!", nil)
		}
	}

	survey.Status = status
	if err := database.Database.Db.Save(survey).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update survey!", nil)
	}

	message := "Survey closed successfully!"
	if status == surveyModels.StatusActive {
		message = "Survey activated successfully!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, survey)
}
