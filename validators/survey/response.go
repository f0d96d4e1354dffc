package surveyValidator

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

type SubmitResponseRequest struct {
	// question ID (as string key) -> answer value
	Answers map[string]interface{} `json:"answers"`
}

func SubmitResponse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		surveyID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid survey id!", nil)
		}

		reqData := new(SubmitResponseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"answers": "At least one answer is required!"})
		}

		c.Locals("surveyID", surveyID)
		c.Locals("validatedResponse", reqData)
		return c.Next()
	}
}

// ListResponses validates the :id survey param plus pagination query
func ListResponses() fiber.Handler {
	return func(c *fiber.Ctx) error {
		surveyID, ok := paramID(c, "id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid survey id!", nil)
		}

		reqData := new(ListRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("surveyID", surveyID)
		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
