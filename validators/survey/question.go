package surveyValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	surveyModels "lms/models/survey"
	"lms/utils"
)

type CreateQuestionRequest struct {
	Prompt     string   `json:"prompt" validate:"required,min=3,max=500"`
	Type       string   `json:"type"`
	Options    []string `json:"options"`
	IsRequired bool     `json:"is_required"`
}

type UpdateQuestionRequest struct {
	Prompt     string   `json:"prompt" validate:"omitempty,min=3,max=500"`
	Type       string   `json:"type"`
	Options    []string `json:"options"`
	IsRequired *bool    `json:"is_required"`
}

func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		surveyID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid survey id!", nil)
		}

		reqData := new(CreateQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Prompt = strings.TrimSpace(reqData.Prompt)
		if reqData.Type == "" {
			reqData.Type = surveyModels.QuestionText
		}

		errors := utils.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if !validQuestionType(reqData.Type) {
			errors["type"] = "Unknown question type!"
		}
		if reqData.Type == surveyModels.QuestionMCQ && len(reqData.Options) < 2 {
			errors["options"] = "MCQ questions need at least 2 options!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("surveyID", surveyID)
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func UpdateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, ok := paramID(c, "question_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}

		reqData := new(UpdateQuestionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := utils.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		if reqData.Type != "" && !validQuestionType(reqData.Type) {
			errors["type"] = "Unknown question type!"
		}
		if reqData.Type == surveyModels.QuestionMCQ && len(reqData.Options) < 2 {
			errors["options"] = "MCQ questions need at least 2 options!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("questionID", questionID)
		c.Locals("validatedQuestionUpdate", reqData)
		return c.Next()
	}
}

// QuestionID validates the :question_id route param
func QuestionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		questionID, ok := paramID(c, "question_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
		}
		c.Locals("questionID", questionID)
		return c.Next()
	}
}

type ReorderQuestionsRequest struct {
	QuestionIDs []uint `json:"question_ids" validate:"required,min=1,dive,gt=0"`
}

// ReorderQuestions validates the :id survey param plus the ordered id list
func ReorderQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		surveyID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid survey id!", nil)
		}

		reqData := new(ReorderQuestionsRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("surveyID", surveyID)
		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
