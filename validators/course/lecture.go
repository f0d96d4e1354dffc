package courseValidator

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type CreateLectureRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=TEXT VIDEO MCQ"`
	TextContent string `json:"text_content"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	Duration    int    `json:"duration" validate:"omitempty,gte=0"`
}

type UpdateLectureRequest struct {
	Title       string `json:"title" validate:"omitempty,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=TEXT VIDEO MCQ"`
	TextContent string `json:"text_content"`
	VideoURL    string `json:"video_url" validate:"omitempty,url"`
	Duration    int    `json:"duration" validate:"omitempty,gte=0"`
}

type PublishLectureRequest struct {
	Publish *bool `json:"publish" validate:"required"`
}

type CreateSectionRequest struct {
	Heading string `json:"heading" validate:"required,min=1,max=200"`
	Body    string `json:"body" validate:"required"`
}

type UpdateSectionRequest struct {
	Heading string `json:"heading" validate:"omitempty,min=1,max=200"`
	Body    string `json:"body"`
}

func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		moduleID, ok := paramID(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		reqData := new(CreateLectureRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		errors := utils.ValidateStruct(reqData)
		if errors == nil {
			errors = make(map[string]string)
		}
		// Content fields must match the declared type
		switch reqData.ContentType {
		case "VIDEO":
			if reqData.VideoURL == "" {
				errors["video_url"] = "Video URL is required for VIDEO lectures!"
			}
		case "TEXT", "":
			if strings.TrimSpace(reqData.TextContent) == "" {
				errors["text_content"] = "Text content is required for TEXT lectures!"
			}
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

func UpdateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, ok := paramID(c, "lecture_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
		}

		reqData := new(UpdateLectureRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lectureID", lectureID)
		c.Locals("validatedLectureUpdate", reqData)
		return c.Next()
	}
}

// LectureID validates the :lecture_id route param
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, ok := paramID(c, "lecture_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
		}
		c.Locals("lectureID", lectureID)
		return c.Next()
	}
}

func PublishLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, ok := paramID(c, "lecture_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
		}

		reqData := new(PublishLectureRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lectureID", lectureID)
		c.Locals("publishStatus", *reqData.Publish)
		return c.Next()
	}
}

// ReorderLectures validates module params plus the ordered id list
func ReorderLectures() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := paramID(c, "course_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
		}
		moduleID, ok := paramID(c, "module_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}

		reqData := new(ReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("courseID", courseID)
		c.Locals("moduleID", moduleID)
		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, ok := paramID(c, "lecture_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
		}

		reqData := new(CreateSectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Heading = strings.TrimSpace(reqData.Heading)

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lectureID", lectureID)
		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

func UpdateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sectionID, ok := paramID(c, "section_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
		}

		reqData := new(UpdateSectionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("sectionID", sectionID)
		c.Locals("validatedSectionUpdate", reqData)
		return c.Next()
	}
}

// SectionID validates the :section_id route param
func SectionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sectionID, ok := paramID(c, "section_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
		}
		c.Locals("sectionID", sectionID)
		return c.Next()
	}
}

// ReorderSections validates the :lecture_id param plus the ordered id list
func ReorderSections() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lectureID, ok := paramID(c, "lecture_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture id!", nil)
		}

		reqData := new(ReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("lectureID", lectureID)
		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

// AttachmentID validates the :attachment_id route param
func AttachmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		attachmentID, ok := paramID(c, "attachment_id")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attachment id!", nil)
		}
		c.Locals("attachmentID", attachmentID)
		return c.Next()
	}
}
