package surveyControllers

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lms/database"
	"lms/middleware"
	surveyModels "lms/models/survey"
	"lms/utils"
	surveyValidator "lms/validators/survey"
)

// SubmitResponse records a survey submission. Anonymous surveys accept
// unauthenticated callers; otherwise a login is required and each user may
// submit once.
func SubmitResponse(c *fiber.Ctx) error {
	surveyID := c.Locals("surveyID").(uint)

	var survey surveyModels.Survey
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", surveyID, false).First(&survey).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Survey not found!", nil)
	}

	if survey.Status != surveyModels.StatusActive {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Survey is not accepting responses!", nil)
	}
	now := time.Now()
	if survey.StartsAt != nil && now.Before(*survey.StartsAt) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Survey has not opened yet!", nil)
	}
	if survey.EndsAt != nil && now.After(*survey.EndsAt) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Survey is closed!", nil)
	}

	var userID *uint
	if id, ok := c.Locals("userId").(uint); ok {
		userID = &id
	}
	if !survey.IsAnonymous {
		if userID == nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Login required to answer this survey!", nil)
		}
		var existing int64
		database.Database.Db.
			Model(&surveyModels.SurveyResponse{}).
			Where("survey_id = ? AND user_id = ? AND is_deleted = ?", surveyID, *userID, false).
			Count(&existing)
		if existing > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already answered this survey!", nil)
		}
	}

	reqData, ok := c.Locals("validatedResponse").(*surveyValidator.SubmitResponseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var questions []surveyModels.SurveyQuestion
	database.Database.Db.
		Where("survey_id = ? AND is_deleted = ?", surveyID, false).
		Find(&questions)

	known := make(map[string]surveyModels.SurveyQuestion, len(questions))
	for _, q := range questions {
		known[strconv.FormatUint(uint64(q.ID), 10)] = q
	}

	errors := make(map[string]string)
	for key := range reqData.Answers {
		if _, ok := known[key]; !ok {
			errors[key] = "Unknown question!"
		}
	}
	for key, q := range known {
		if !q.IsRequired {
			continue
		}
		if v, ok := reqData.Answers[key]; !ok || v == nil || fmt.Sprint(v) == "" {
			errors[key] = "This question is required!"
		}
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	answers, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers!", nil)
	}

	response := surveyModels.SurveyResponse{
		SurveyID:    surveyID,
		UserID:      userID,
		Answers:     answers,
		SubmittedAt: now,
	}
	// Anonymous surveys never record the caller, even when logged in
	if survey.IsAnonymous {
		response.UserID = nil
	}

	if err := database.Database.Db.Create(&response).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit response!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Response submitted successfully!", fiber.Map{
		"response_id": response.ID,
	})
}

// ListResponses lists a survey's responses with per-question answer counts
func ListResponses(c *fiber.Ctx) error {
	user, ok := middleware.AuthUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	surveyID := c.Locals("surveyID").(uint)

	survey, errResp := requireSurveyOwner(c, user, surveyID)
	if survey == nil {
		return errResp
	}

	reqData, _ := c.Locals("validatedList").(*surveyValidator.ListRequest)

	var pagePtr, limitPtr *int
	if reqData != nil {
		pagePtr, limitPtr = reqData.Page, reqData.Limit
	}
	page, limit, offset := utils.Pagination(pagePtr, limitPtr)

	db := database.Database.Db.
		Model(&surveyModels.SurveyResponse{}).
		Where("survey_id = ? AND is_deleted = ?", surveyID, false)

	var total int64
	db.Count(&total)

	var responses []surveyModels.SurveyResponse
	if err := db.Offset(offset).Limit(limit).Order("submitted_at desc").Find(&responses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch responses!", nil)
	}

	// Aggregate answer counts per question over every response (not just
	// the current page)
	var all []surveyModels.SurveyResponse
	database.Database.Db.
		Where("survey_id = ? AND is_deleted = ?", surveyID, false).
		Find(&all)

	aggregates := make(map[string]map[string]int)
	for _, r := range all {
		var answers map[string]interface{}
		if err := json.Unmarshal(r.Answers, &answers); err != nil {
			continue
		}
		for qid, v := range answers {
			if aggregates[qid] == nil {
				aggregates[qid] = make(map[string]int)
			}
			aggregates[qid][fmt.Sprint(v)]++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Responses fetched successfully!", fiber.Map{
		"responses":  responses,
		"aggregates": aggregates,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ExportResponses streams every response of a survey as CSV, one column per
// question in display order
func ExportResponses(c *fiber.Ctx) error {
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

	var responses []surveyModels.SurveyResponse
	if err := database.Database.Db.
		Where("survey_id = ? AND is_deleted = ?", surveyID, false).
		Order("submitted_at asc").
		Find(&responses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch responses!", nil)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"response_id", "user_id", "submitted_at"}
	for _, q := range questions {
		header = append(header, q.Prompt)
	}
	if err := w.Write(header); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build export!", nil)
	}

	for _, r := range responses {
		var answers map[string]interface{}
		if err := json.Unmarshal(r.Answers, &answers); err != nil {
			answers = map[string]interface{}{}
		}

		userCol := "anonymous"
		if r.UserID != nil {
			userCol = strconv.FormatUint(uint64(*r.UserID), 10)
		}

		row := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			userCol,
			r.SubmittedAt.Format(time.RFC3339),
		}
		for _, q := range questions {
			v, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]
			if !ok || v == nil {
				row = append(row, "")
				continue
			}
			row = append(row, fmt.Sprint(v))
		}
		if err := w.Write(row); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build export!", nil)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build export!", nil)
	}

	filename := fmt.Sprintf("survey-%d-responses-%s.csv", survey.ID, uuid.NewString()[:8])
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
