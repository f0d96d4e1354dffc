package userControllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	userValidator "lms/validators/user"
)

// countOtherAdmins counts active, non-deleted admins excluding the given user
func countOtherAdmins(excludeID uint) int64 {
	var count int64
	database.Database.Db.
		Model(&models.User{}).
		Where("role = ? AND is_deleted = ? AND is_active = ? AND id != ?", "ADMIN", false, true, excludeID).
		Count(&count)
	return count
}

// AdminListUsers lists users with optional role and name/email filters
func AdminListUsers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserList").(*userValidator.ListUsersRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page, limit, offset := utils.Pagination(reqData.Page, reqData.Limit)

	db := database.Database.Db.Model(&models.User{}).Where("is_deleted = ?", false)
	if reqData.Role != "" {
		db = db.Where("role = ?", reqData.Role)
	}
	if reqData.Search != "" {
		like := "%" + reqData.Search + "%"
		db = db.Where("name LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	db.Count(&total)

	var users []models.User
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch user list!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User list.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminGetUser fetches a single user
func AdminGetUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User fetched successfully.", user)
}

// AdminCreateUser creates a user with an explicit role and emails the
// temporary password
func AdminCreateUser(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserCreate").(*userValidator.CreateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := utils.HashPassword(reqData.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: hashedPassword,
		Role:     reqData.Role,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create user!", nil)
	}

	// Notify the new user (async)
	go func(name, email, password string) {
		if err := utils.SendWelcomeEmail(name, email, password); err != nil {
			log.Printf("Error sending welcome email to %s: %v", email, err)
		}
	}(newUser.Name, newUser.Email, reqData.Password)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully.", newUser)
}

// AdminUpdateUser updates profile fields, role and active flag. Demoting or
// deactivating the last remaining admin is rejected.
func AdminUpdateUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	reqData, ok := c.Locals("validatedUserUpdate").(*userValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	demotes := user.Role == "ADMIN" && reqData.Role != "" && reqData.Role != "ADMIN"
	deactivates := user.Role == "ADMIN" && reqData.IsActive != nil && !*reqData.IsActive
	if (demotes || deactivates) && countOtherAdmins(user.ID) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot remove the last admin!", nil)
	}

	// Update only provided fields
	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Bio != "" {
		user.Bio = reqData.Bio
	}
	if reqData.Role != "" {
		user.Role = reqData.Role
	}
	if reqData.IsActive != nil {
		user.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully.", user)
}

// AdminDeleteUser soft deletes a user. Deleting the last remaining admin is
// rejected.
func AdminDeleteUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if user.Role == "ADMIN" && countOtherAdmins(user.ID) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Cannot delete the last admin!", nil)
	}

	user.IsDeleted = true
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully.", nil)
}
