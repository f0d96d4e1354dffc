package surveyValidator

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	surveyModels "lms/models/survey"
	"lms/utils"
)

type CreateSurveyRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	CourseID    *uint      `json:"course_id"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsAnonymous bool       `json:"is_anonymous"`
}

type UpdateSurveyRequest struct {
	Title       string     `json:"title" validate:"omitempty,min=3,max=200"`
	Description string     `json:"description" validate:"omitempty,max=2000"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	IsAnonymous *bool      `json:"is_anonymous"`
}

type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE CLOSED"`
}

type ListRequest struct {
	Page  *int `query:"page"`
	Limit *int `query:"limit"`
}

// paramID parses a positive integer route param
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id < 1 {
		return 0, false
	}
	return uint(id), true
}

// SurveyID validates the :id route param
func SurveyID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid survey id!", nil)
		}
		c.Locals("surveyID", id)
		return c.Next()
	}
}

func CreateSurvey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateSurveyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		errors := utils.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.StartsAt != nil && reqData.EndsAt != nil && !reqData.EndsAt.After(*reqData.StartsAt) {
			errors["ends_at"] = "End time must be after start time!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSurvey", reqData)
		return c.Next()
	}
}

func UpdateSurvey() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid survey id!", nil)
		}

		reqData := new(UpdateSurveyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := utils.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.StartsAt != nil && reqData.EndsAt != nil && !reqData.EndsAt.After(*reqData.StartsAt) {
			errors["ends_at"] = "End time must be after start time!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("surveyID", id)
		c.Locals("validatedSurveyUpdate", reqData)
		return c.Next()
	}
}

func SetStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid survey id!", nil)
		}

		reqData := new(StatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("surveyID", id)
		c.Locals("surveyStatus", reqData.Status)
		return c.Next()
	}
}

func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// known question types, kept here so the question validator and the
// response validator agree
func validQuestionType(t string) bool {
	switch t {
	case surveyModels.QuestionText, surveyModels.QuestionMCQ, surveyModels.QuestionRating, surveyModels.QuestionBoolean:
		return true
	}
	return false
}
