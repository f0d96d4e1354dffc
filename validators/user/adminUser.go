package userValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/utils"
)

type ListUsersRequest struct {
	Page   *int   `query:"page"`
	Limit  *int   `query:"limit"`
	Role   string `query:"role"`
	Search string `query:"search"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=STUDENT INSTRUCTOR ADMIN"`
}

type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=100"`
	Bio      string `json:"bio" validate:"omitempty,max=2000"`
	Role     string `json:"role" validate:"omitempty,oneof=STUDENT INSTRUCTOR ADMIN"`
	IsActive *bool  `json:"is_active"`
}

type PutUserSettingRequest struct {
	Key   string `json:"key" validate:"required,min=1,max=100"`
	Value string `json:"value" validate:"max=5000"`
}

// UserID parses and validates the :id route param
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}
		c.Locals("targetUserID", uint(id))
		return c.Next()
	}
}

func ListUsers() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListUsersRequest)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		if reqData.Role != "" {
			switch reqData.Role {
			case "STUDENT", "INSTRUCTOR", "ADMIN":
			default:
				return middleware.ValidationErrorResponse(c, map[string]string{"role": "Unknown role!"})
			}
		}

		c.Locals("validatedUserList", reqData)
		return c.Next()
	}
}

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Name = strings.TrimSpace(reqData.Name)

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserCreate", reqData)
		return c.Next()
	}
}

func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
		}

		reqData := new(UpdateUserRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("targetUserID", uint(id))
		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}

func PutUserSetting() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PutUserSettingRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Key = strings.TrimSpace(reqData.Key)

		if errors := utils.ValidateStruct(reqData); errors != nil {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserSetting", reqData)
		return c.Next()
	}
}
