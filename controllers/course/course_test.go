package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	courseRoutes "lms/routers/courseRoutes"
	"lms/utils"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTest(t *testing.T) *fiber.App {
	t.Helper()

	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func createUser(t *testing.T, name, email, role string) (models.User, string) {
	t.Helper()

	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := models.User{Name: name, Email: email, Password: hashed, Role: role, IsActive: true}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, instructorID uint) courseModels.Course {
	t.Helper()

	course := courseModels.Course{Title: "Go for Backend", InstructorID: instructorID, Status: "ACTIVE"}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func createModule(t *testing.T, courseID uint, title string, orderIndex int) courseModels.CourseModule {
	t.Helper()

	module := courseModels.CourseModule{CourseID: courseID, Title: title, OrderIndex: orderIndex}
	require.NoError(t, database.Database.Db.Create(&module).Error)
	return module
}

func createLecture(t *testing.T, courseID, moduleID uint, title string, orderIndex int) courseModels.Lecture {
	t.Helper()

	lecture := courseModels.Lecture{
		CourseID:    courseID,
		ModuleID:    moduleID,
		Title:       title,
		ContentType: "TEXT",
		TextContent: "some content",
		OrderIndex:  orderIndex,
	}
	require.NoError(t, database.Database.Db.Create(&lecture).Error)
	return lecture
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestCourseRoutesRejectStudents(t *testing.T) {
	app := setupTest(t)

	_, studentToken := createUser(t, "Student", "student@example.com", "STUDENT")

	resp, _ := doRequest(t, app, http.MethodPost, "/admin/course/create", studentToken, fiber.Map{
		"title": "Not allowed",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateCourse(t *testing.T) {
	app := setupTest(t)

	instructor, token := createUser(t, "Teacher", "teacher@example.com", "INSTRUCTOR")

	resp, env := doRequest(t, app, http.MethodPost, "/admin/course/create", token, fiber.Map{
		"title":       "Go for Backend",
		"description": "From zero to production",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	var saved courseModels.Course
	require.NoError(t, database.Database.Db.Where("title = ?", "Go for Backend").First(&saved).Error)
	assert.Equal(t, instructor.ID, saved.InstructorID)
	assert.Equal(t, "DRAFT", saved.Status)
}

func TestCourseOwnershipEnforced(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	_, otherToken := createUser(t, "Other", "other@example.com", "INSTRUCTOR")
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	course := createCourse(t, owner.ID)
	path := fmt.Sprintf("/admin/course/%d", course.ID)

	resp, env := doRequest(t, app, http.MethodPut, path, otherToken, fiber.Map{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = doRequest(t, app, http.MethodPut, path, ownerToken, fiber.Map{"title": "Renamed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Admins bypass ownership
	resp, _ = doRequest(t, app, http.MethodPut, path, adminToken, fiber.Map{"title": "Admin renamed"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListCoursesScopedToInstructor(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	other, _ := createUser(t, "Other", "other@example.com", "INSTRUCTOR")
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	createCourse(t, owner.ID)
	createCourse(t, other.ID)

	resp, env := doRequest(t, app, http.MethodGet, "/admin/course/list", ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Courses []courseModels.Course `json:"courses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Courses, 1)
	assert.Equal(t, owner.ID, data.Courses[0].InstructorID)

	resp, env = doRequest(t, app, http.MethodGet, "/admin/course/list", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Courses, 2)
}

func TestModuleAppendsAtEnd(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)
	createModule(t, course.ID, "Intro", 1)

	resp, env := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/module", course.ID), token, fiber.Map{
		"title": "Advanced",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var module courseModels.CourseModule
	require.NoError(t, json.Unmarshal(env.Data, &module))
	assert.Equal(t, 2, module.OrderIndex)
}

func TestReorderModulesPersistsExactOrder(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)
	m1 := createModule(t, course.ID, "One", 1)
	m2 := createModule(t, course.ID, "Two", 2)
	m3 := createModule(t, course.ID, "Three", 3)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/modules/reorder", course.ID), token, fiber.Map{
		"ids": []uint{m2.ID, m3.ID, m1.ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ordered []courseModels.CourseModule
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).
		Order("order_index asc").
		Find(&ordered).Error)
	require.Len(t, ordered, 3)
	assert.Equal(t, m2.ID, ordered[0].ID)
	assert.Equal(t, m3.ID, ordered[1].ID)
	assert.Equal(t, m1.ID, ordered[2].ID)
	assert.Equal(t, 1, ordered[0].OrderIndex)
	assert.Equal(t, 2, ordered[1].OrderIndex)
	assert.Equal(t, 3, ordered[2].OrderIndex)
}

func TestReorderModulesRejectsForeignModule(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)
	otherCourse := createCourse(t, owner.ID)
	mine := createModule(t, course.ID, "Mine", 1)
	foreign := createModule(t, otherCourse.ID, "Foreign", 1)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/modules/reorder", course.ID), token, fiber.Map{
		"ids": []uint{mine.ID, foreign.ID},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateLectureValidatesContentType(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)
	module := createModule(t, course.ID, "Intro", 1)
	base := fmt.Sprintf("/admin/course/%d/module/%d/lecture", course.ID, module.ID)

	// VIDEO lectures need a video url
	resp, _ := doRequest(t, app, http.MethodPost, base, token, fiber.Map{
		"title":        "Watch me",
		"content_type": "VIDEO",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, base, token, fiber.Map{
		"title":        "Watch me",
		"content_type": "VIDEO",
		"video_url":    "https://cdn.example.com/intro.mp4",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestReorderLecturesPersistsExactOrder(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)
	module := createModule(t, course.ID, "Intro", 1)
	l1 := createLecture(t, course.ID, module.ID, "A", 1)
	l2 := createLecture(t, course.ID, module.ID, "B", 2)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/module/%d/lectures/reorder", course.ID, module.ID), token, fiber.Map{
		"ids": []uint{l2.ID, l1.ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ordered []courseModels.Lecture
	require.NoError(t, database.Database.Db.
		Where("module_id = ?", module.ID).
		Order("order_index asc").
		Find(&ordered).Error)
	require.Len(t, ordered, 2)
	assert.Equal(t, l2.ID, ordered[0].ID)
	assert.Equal(t, l1.ID, ordered[1].ID)
}

func TestDeleteModuleCascadesToLectures(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)
	module := createModule(t, course.ID, "Doomed", 1)
	lecture := createLecture(t, course.ID, module.ID, "Inside", 1)

	resp, _ := doRequest(t, app, http.MethodDelete, fmt.Sprintf("/admin/course/%d/module/%d", course.ID, module.ID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved courseModels.Lecture
	require.NoError(t, database.Database.Db.First(&saved, lecture.ID).Error)
	assert.True(t, saved.IsDeleted)
}

func TestPublishCourse(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", course.ID), token, fiber.Map{
		"publish": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved courseModels.Course
	require.NoError(t, database.Database.Db.First(&saved, course.ID).Error)
	assert.True(t, saved.IsPublished)
	assert.Equal(t, "ACTIVE", saved.Status)
}

func TestUnpublishCourseResetsStatus(t *testing.T) {
	app := setupTest(t)

	owner, token := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	course := createCourse(t, owner.ID)
	path := fmt.Sprintf("/admin/course/%d/publish", course.ID)

	resp, _ := doRequest(t, app, http.MethodPost, path, token, fiber.Map{"publish": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, path, token, fiber.Map{"publish": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var saved courseModels.Course
	require.NoError(t, database.Database.Db.First(&saved, course.ID).Error)
	assert.False(t, saved.IsPublished)
	assert.Equal(t, "INACTIVE", saved.Status)
}

func TestDashboardStatsAdminOnly(t *testing.T) {
	app := setupTest(t)

	_, instructorToken := createUser(t, "Teacher", "teacher@example.com", "INSTRUCTOR")
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	resp, _ := doRequest(t, app, http.MethodGet, "/admin/dashboard/stats", instructorToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env := doRequest(t, app, http.MethodGet, "/admin/dashboard/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Users struct {
			Total int64 `json:"total"`
		} `json:"users"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, int64(2), data.Users.Total)
}
