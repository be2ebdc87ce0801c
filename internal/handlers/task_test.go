package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/worklens/work-calendar-api/internal/models"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *TaskHandler
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.db = openTestDB(&suite.Suite)

	// No AI service in tests
	suite.handler = NewTaskHandler(nil)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *TaskHandlerTestSuite) createTestWorkItem(name string) *models.WorkItem {
	workItem := &models.WorkItem{Name: name, IsActive: true}
	suite.db.Create(workItem)
	return workItem
}

func (suite *TaskHandlerTestSuite) createTestTask(fillDate string, workItemID uint64) *models.Task {
	task := &models.Task{
		FillDate:   fillDate,
		WorkItemID: workItemID,
		Status:     models.TaskStatusPending,
	}
	suite.db.Create(task)
	return task
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	workItem := suite.createTestWorkItem("Invoice")

	body, _ := json.Marshal(map[string]interface{}{
		"fill_date":    "2025-03-15",
		"work_item_id": workItem.ID,
		"description":  "March invoices",
	})

	c, w := createTestContext("POST", "/api/tasks", body)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task).Error)
	assert.Equal(suite.T(), "2025-03-15", task.FillDate)
	assert.Equal(suite.T(), models.TaskStatusPending, task.Status)
	assert.False(suite.T(), task.IsFromTemplate)
	assert.Nil(suite.T(), task.TemplateID)
}

// TestCreateTask_MissingFillDate tests creation without required fields
func (suite *TaskHandlerTestSuite) TestCreateTask_MissingFillDate() {
	workItem := suite.createTestWorkItem("Invoice")

	body, _ := json.Marshal(map[string]interface{}{
		"work_item_id": workItem.ID,
	})

	c, w := createTestContext("POST", "/api/tasks", body)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateTask_InvalidFillDate tests fill date format validation
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidFillDate() {
	workItem := suite.createTestWorkItem("Invoice")

	body, _ := json.Marshal(map[string]interface{}{
		"fill_date":    "15/03/2025",
		"work_item_id": workItem.ID,
	})

	c, w := createTestContext("POST", "/api/tasks", body)
	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_DateRangeFilter tests the start/end filter
func (suite *TaskHandlerTestSuite) TestListTasks_DateRangeFilter() {
	workItem := suite.createTestWorkItem("Invoice")
	suite.createTestTask("2025-03-10", workItem.ID)
	suite.createTestTask("2025-03-20", workItem.ID)
	suite.createTestTask("2025-04-01", workItem.ID)

	c, w := createTestContext("GET", "/api/tasks", nil)
	c.Request.URL.RawQuery = "start=2025-03-01&end=2025-03-31"
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 2)
}

// TestListTasks_StatusFilter tests the status filter
func (suite *TaskHandlerTestSuite) TestListTasks_StatusFilter() {
	workItem := suite.createTestWorkItem("Invoice")
	suite.createTestTask("2025-03-10", workItem.ID)
	done := suite.createTestTask("2025-03-11", workItem.ID)
	suite.db.Model(done).Update("status", models.TaskStatusCompleted)

	c, w := createTestContext("GET", "/api/tasks", nil)
	c.Request.URL.RawQuery = "status=completed"
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
}

// TestListTasks_InvalidStatus tests the status whitelist
func (suite *TaskHandlerTestSuite) TestListTasks_InvalidStatus() {
	c, w := createTestContext("GET", "/api/tasks", nil)
	c.Request.URL.RawQuery = "status=archived"
	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestWeekTasks_Window tests the Sunday-to-Saturday week window
func (suite *TaskHandlerTestSuite) TestWeekTasks_Window() {
	workItem := suite.createTestWorkItem("Invoice")
	suite.createTestTask("2025-03-15", workItem.ID) // Saturday before
	suite.createTestTask("2025-03-16", workItem.ID) // Sunday, in window
	suite.createTestTask("2025-03-22", workItem.ID) // Saturday, in window
	suite.createTestTask("2025-03-23", workItem.ID) // Sunday after

	// 2025-03-19 is a Wednesday; its week runs 03-16 through 03-22
	c, w := createTestContext("GET", "/api/tasks/week/2025-03-19", nil)
	c.Params = gin.Params{{Key: "date", Value: "2025-03-19"}}
	suite.handler.WeekTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response, 2)
	assert.Equal(suite.T(), "2025-03-16", response[0]["fill_date"])
	assert.Equal(suite.T(), "2025-03-22", response[1]["fill_date"])
}

// TestMonthTasks_Window tests the month window and name enrichment
func (suite *TaskHandlerTestSuite) TestMonthTasks_Window() {
	workItem := suite.createTestWorkItem("Invoice")
	suite.createTestTask("2024-02-29", workItem.ID)
	suite.createTestTask("2024-03-01", workItem.ID)

	c, w := createTestContext("GET", "/api/tasks/month/2024/2", nil)
	c.Params = gin.Params{{Key: "year", Value: "2024"}, {Key: "month", Value: "2"}}
	suite.handler.MonthTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), "2024-02-29", response[0]["fill_date"])
	assert.Equal(suite.T(), "Invoice", response[0]["work_item_name"])
}

// TestUpdateTask_PartialUpdate tests PUT only touches provided fields
func (suite *TaskHandlerTestSuite) TestUpdateTask_PartialUpdate() {
	workItem := suite.createTestWorkItem("Invoice")
	task := suite.createTestTask("2025-03-10", workItem.ID)
	suite.db.Model(task).Update("description", "original")

	body, _ := json.Marshal(map[string]interface{}{
		"fill_date": "2025-03-12",
	})

	c, w := createTestContext("PUT", "/api/tasks/1", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	assert.Equal(suite.T(), "2025-03-12", updated.FillDate)
	assert.Equal(suite.T(), "original", updated.Description)
}

// TestUpdateTaskStatus_Completed tests the completed_at stamp
func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus_Completed() {
	workItem := suite.createTestWorkItem("Invoice")
	task := suite.createTestTask("2025-03-10", workItem.ID)

	body, _ := json.Marshal(map[string]interface{}{
		"status": "completed",
	})

	c, w := createTestContext("PATCH", "/api/tasks/1/status", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTaskStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Status)
	assert.NotNil(suite.T(), updated.CompletedAt)
}

// TestUpdateTaskStatus_ClearsCompletedAt tests moving back to pending
func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus_ClearsCompletedAt() {
	workItem := suite.createTestWorkItem("Invoice")
	task := suite.createTestTask("2025-03-10", workItem.ID)

	body, _ := json.Marshal(map[string]interface{}{"status": "completed"})
	c, _ := createTestContext("PATCH", "/api/tasks/1/status", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTaskStatus(c)

	body, _ = json.Marshal(map[string]interface{}{"status": "pending"})
	c, w := createTestContext("PATCH", "/api/tasks/1/status", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTaskStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusPending, updated.Status)
	assert.Nil(suite.T(), updated.CompletedAt)
}

// TestUpdateTaskStatus_InvalidStatus tests the status whitelist
func (suite *TaskHandlerTestSuite) TestUpdateTaskStatus_InvalidStatus() {
	workItem := suite.createTestWorkItem("Invoice")
	suite.createTestTask("2025-03-10", workItem.ID)

	body, _ := json.Marshal(map[string]interface{}{"status": "cancelled"})
	c, w := createTestContext("PATCH", "/api/tasks/1/status", body)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.UpdateTaskStatus(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestDeleteTask_Success tests hard deletion
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	workItem := suite.createTestWorkItem("Invoice")
	task := suite.createTestTask("2025-03-10", workItem.ID)

	c, w := createTestContext("DELETE", "/api/tasks/1", nil)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestDeleteTask_NotFound tests deleting an unknown task
func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	c, w := createTestContext("DELETE", "/api/tasks/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}
	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestExtractTasks_NotConfigured tests the AI endpoint without an API key
func (suite *TaskHandlerTestSuite) TestExtractTasks_NotConfigured() {
	body, _ := json.Marshal(map[string]interface{}{
		"text": "invoice the March retainers by Friday",
	})

	c, w := createTestContext("POST", "/api/tasks/extract", body)
	suite.handler.ExtractTasks(c)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

// TestTaskHandlerTestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
