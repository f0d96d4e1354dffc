package surveyControllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	surveyModels "lms/models/survey"
	surveyRoutes "lms/routers/surveyRoutes"
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
	surveyRoutes.SetupSurveyRoutes(app)
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

func createSurvey(t *testing.T, ownerID uint, status string, anonymous bool) surveyModels.Survey {
	t.Helper()

	survey := surveyModels.Survey{
		Title:       "Course feedback",
		CreatedByID: ownerID,
		Status:      status,
		IsAnonymous: anonymous,
	}
	require.NoError(t, database.Database.Db.Create(&survey).Error)
	return survey
}

func createQuestion(t *testing.T, surveyID uint, prompt string, required bool, orderIndex int) surveyModels.SurveyQuestion {
	t.Helper()

	question := surveyModels.SurveyQuestion{
		SurveyID:   surveyID,
		Prompt:     prompt,
		Type:       surveyModels.QuestionText,
		Options:    datatypes.JSON([]byte("null")),
		IsRequired: required,
		OrderIndex: orderIndex,
	}
	require.NoError(t, database.Database.Db.Create(&question).Error)
	return question
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

func TestCreateSurveyRejectsForeignCourse(t *testing.T) {
	app := setupTest(t)

	owner, _ := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	_, otherToken := createUser(t, "Other", "other@example.com", "INSTRUCTOR")

	course := courseModels.Course{Title: "Go 101", InstructorID: owner.ID, Status: "ACTIVE"}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	resp, env := doRequest(t, app, http.MethodPost, "/surveys/create", otherToken, fiber.Map{
		"title":     "Sneaky survey",
		"course_id": course.ID,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)
}

func TestSurveyOwnershipEnforced(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	_, otherToken := createUser(t, "Other", "other@example.com", "INSTRUCTOR")
	_, adminToken := createUser(t, "Admin", "admin@example.com", "ADMIN")

	survey := createSurvey(t, owner.ID, surveyModels.StatusDraft, false)

	resp, _ := doRequest(t, app, http.MethodGet, fmt.Sprintf("/surveys/%d", survey.ID), otherToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/surveys/%d", survey.ID), ownerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Admins bypass ownership
	resp, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/surveys/%d", survey.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestActivationRequiresQuestions(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	survey := createSurvey(t, owner.ID, surveyModels.StatusDraft, false)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/status", survey.ID), ownerToken, fiber.Map{
		"status": "ACTIVE",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	createQuestion(t, survey.ID, "How was it?", false, 1)

	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/status", survey.ID), ownerToken, fiber.Map{
		"status": "ACTIVE",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var saved surveyModels.Survey
	require.NoError(t, database.Database.Db.First(&saved, survey.ID).Error)
	assert.Equal(t, surveyModels.StatusActive, saved.Status)
}

func TestMcqQuestionNeedsOptions(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	survey := createSurvey(t, owner.ID, surveyModels.StatusDraft, false)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/question", survey.ID), ownerToken, fiber.Map{
		"prompt":  "Pick one",
		"type":    surveyModels.QuestionMCQ,
		"options": []string{"only one"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/question", survey.ID), ownerToken, fiber.Map{
		"prompt":  "Pick one",
		"type":    surveyModels.QuestionMCQ,
		"options": []string{"yes", "no"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestReorderQuestionsPersistsExactOrder(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	survey := createSurvey(t, owner.ID, surveyModels.StatusDraft, false)

	q1 := createQuestion(t, survey.ID, "First", false, 1)
	q2 := createQuestion(t, survey.ID, "Second", false, 2)
	q3 := createQuestion(t, survey.ID, "Third", false, 3)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/questions/reorder", survey.ID), ownerToken, fiber.Map{
		"question_ids": []uint{q3.ID, q1.ID, q2.ID},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var ordered []surveyModels.SurveyQuestion
	require.NoError(t, database.Database.Db.
		Where("survey_id = ?", survey.ID).
		Order("order_index asc").
		Find(&ordered).Error)
	require.Len(t, ordered, 3)
	assert.Equal(t, q3.ID, ordered[0].ID)
	assert.Equal(t, q1.ID, ordered[1].ID)
	assert.Equal(t, q2.ID, ordered[2].ID)
	assert.Equal(t, 1, ordered[0].OrderIndex)
	assert.Equal(t, 2, ordered[1].OrderIndex)
	assert.Equal(t, 3, ordered[2].OrderIndex)
}

func TestReorderRejectsForeignQuestion(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	survey := createSurvey(t, owner.ID, surveyModels.StatusDraft, false)
	otherSurvey := createSurvey(t, owner.ID, surveyModels.StatusDraft, false)

	q1 := createQuestion(t, survey.ID, "Mine", false, 1)
	foreign := createQuestion(t, otherSurvey.ID, "Not mine", false, 1)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/questions/reorder", survey.ID), ownerToken, fiber.Map{
		"question_ids": []uint{q1.ID, foreign.ID},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSubmitResponseRules(t *testing.T) {
	app := setupTest(t)

	owner, _ := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	_, studentToken := createUser(t, "Student", "student@example.com", "STUDENT")

	draft := createSurvey(t, owner.ID, surveyModels.StatusDraft, false)
	createQuestion(t, draft.ID, "Ignored", false, 1)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", draft.ID), studentToken, fiber.Map{
		"answers": fiber.Map{"1": "hi"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	active := createSurvey(t, owner.ID, surveyModels.StatusActive, false)
	required := createQuestion(t, active.ID, "Required one", true, 1)
	key := fmt.Sprint(required.ID)

	// Non-anonymous surveys demand a login
	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", active.ID), "", fiber.Map{
		"answers": fiber.Map{key: "fine"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Required questions must be answered
	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", active.ID), studentToken, fiber.Map{
		"answers": fiber.Map{"999999": "who"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", active.ID), studentToken, fiber.Map{
		"answers": fiber.Map{key: "fine"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// One submission per user
	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", active.ID), studentToken, fiber.Map{
		"answers": fiber.Map{key: "again"},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSubmitRespectsTimeWindow(t *testing.T) {
	app := setupTest(t)

	owner, _ := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	_, studentToken := createUser(t, "Student", "student@example.com", "STUDENT")

	ended := time.Now().Add(-time.Hour)
	survey := createSurvey(t, owner.ID, surveyModels.StatusActive, false)
	require.NoError(t, database.Database.Db.Model(&survey).Update("ends_at", ended).Error)
	q := createQuestion(t, survey.ID, "Too late", false, 1)

	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", survey.ID), studentToken, fiber.Map{
		"answers": fiber.Map{fmt.Sprint(q.ID): "x"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnonymousSurveyNeverRecordsUser(t *testing.T) {
	app := setupTest(t)

	owner, _ := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	_, studentToken := createUser(t, "Student", "student@example.com", "STUDENT")

	survey := createSurvey(t, owner.ID, surveyModels.StatusActive, true)
	q := createQuestion(t, survey.ID, "Anything?", false, 1)

	// Logged in, but the stored response stays anonymous
	resp, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", survey.ID), studentToken, fiber.Map{
		"answers": fiber.Map{fmt.Sprint(q.ID): "yes"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// And no token at all is fine too
	resp, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/surveys/%d/respond", survey.ID), "", fiber.Map{
		"answers": fiber.Map{fmt.Sprint(q.ID): "no"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var responses []surveyModels.SurveyResponse
	require.NoError(t, database.Database.Db.Where("survey_id = ?", survey.ID).Find(&responses).Error)
	require.Len(t, responses, 2)
	for _, r := range responses {
		assert.Nil(t, r.UserID)
	}
}

func TestListResponsesAggregates(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	survey := createSurvey(t, owner.ID, surveyModels.StatusActive, true)
	q := createQuestion(t, survey.ID, "Rate it", false, 1)
	key := fmt.Sprint(q.ID)

	for _, answer := range []string{"good", "good", "bad"} {
		raw, err := json.Marshal(map[string]string{key: answer})
		require.NoError(t, err)
		response := surveyModels.SurveyResponse{SurveyID: survey.ID, Answers: raw, SubmittedAt: time.Now()}
		require.NoError(t, database.Database.Db.Create(&response).Error)
	}

	resp, env := doRequest(t, app, http.MethodGet, fmt.Sprintf("/surveys/%d/responses", survey.ID), ownerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Aggregates map[string]map[string]int `json:"aggregates"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2, data.Aggregates[key]["good"])
	assert.Equal(t, 1, data.Aggregates[key]["bad"])
}

func TestExportResponsesCSV(t *testing.T) {
	app := setupTest(t)

	owner, ownerToken := createUser(t, "Owner", "owner@example.com", "INSTRUCTOR")
	survey := createSurvey(t, owner.ID, surveyModels.StatusActive, true)
	q1 := createQuestion(t, survey.ID, "First question", false, 1)
	q2 := createQuestion(t, survey.ID, "Second question", false, 2)

	raw, err := json.Marshal(map[string]string{
		fmt.Sprint(q1.ID): "alpha",
		fmt.Sprint(q2.ID): "beta",
	})
	require.NoError(t, err)
	response := surveyModels.SurveyResponse{SurveyID: survey.ID, Answers: raw, SubmittedAt: time.Now()}
	require.NoError(t, database.Database.Db.Create(&response).Error)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/surveys/%d/responses/export", survey.ID), nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "response_id,user_id,submitted_at,First question,Second question", lines[0])
	assert.Contains(t, lines[1], "anonymous")
	assert.Contains(t, lines[1], "alpha,beta")
}
