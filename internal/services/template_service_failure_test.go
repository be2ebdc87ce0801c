package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/work-calendar-api/internal/repository"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockedService wires the engine to a sqlmock-backed gorm connection so
// storage failures can be injected per statement.
func newMockedService(t *testing.T) (*TemplateService, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	service := NewTemplateService(
		repository.NewTemplateRepository(db),
		repository.NewTaskRepository(db),
		repository.NewGenerationLogRepository(db),
		fixedClock{now: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)},
	)
	return service, mock
}

func templateRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "company_id", "work_item_id", "description",
		"repeat_type", "repeat_day", "repeat_month", "duration_days", "is_active",
	})
}

// TestGenerateMonthly_ListFailureAborts verifies the whole sweep fails when
// the template list cannot be loaded.
func TestGenerateMonthly_ListFailureAborts(t *testing.T) {
	service, mock := newMockedService(t)

	mock.ExpectQuery("SELECT (.+) FROM `task_templates`").
		WillReturnError(errors.New("connection reset"))

	_, err := service.GenerateMonthly(2025, 3)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGenerateMonthly_PerTemplateFailureContinues verifies a task-insert
// failure for one template does not stop the rest of the sweep.
func TestGenerateMonthly_PerTemplateFailureContinues(t *testing.T) {
	service, mock := newMockedService(t)

	mock.ExpectQuery("SELECT (.+) FROM `task_templates`").
		WillReturnRows(templateRows().
			AddRow(1, "Failing template", nil, 7, "", "monthly", 1, nil, 1, true).
			AddRow(2, "Working template", nil, 7, "", "monthly", 1, nil, 1, true))
	mock.ExpectQuery("SELECT (.+) FROM `work_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "Invoice"))

	// Template 1: clean ledger, then the task insert blows up
	mock.ExpectQuery("SELECT count(.+) FROM `template_generation_log`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	// Template 2: clean ledger, task and ledger inserts succeed
	mock.ExpectQuery("SELECT count(.+) FROM `template_generation_log`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO `template_generation_log`").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	generated, err := service.GenerateMonthly(2025, 3)
	require.NoError(t, err)
	require.Len(t, generated, 1)
	assert.Equal(t, "Working template", generated[0].TemplateName)
	assert.Equal(t, uint64(11), generated[0].TaskID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestGenerateMonthly_DuplicateLedgerInsertIsSkip verifies a ledger
// uniqueness violation (a concurrent sweep won the race between the ledger
// check and the insert) is swallowed rather than surfaced.
func TestGenerateMonthly_DuplicateLedgerInsertIsSkip(t *testing.T) {
	service, mock := newMockedService(t)

	mock.ExpectQuery("SELECT (.+) FROM `task_templates`").
		WillReturnRows(templateRows().
			AddRow(1, "Raced template", nil, 7, "", "monthly", 1, nil, 1, true))
	mock.ExpectQuery("SELECT (.+) FROM `work_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "Invoice"))

	mock.ExpectQuery("SELECT count(.+) FROM `template_generation_log`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `tasks`").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec("INSERT INTO `template_generation_log`").
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()

	generated, err := service.GenerateMonthly(2025, 3)
	require.NoError(t, err)
	assert.Len(t, generated, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}
