package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/worklens/work-calendar-api/internal/models"
	"github.com/worklens/work-calendar-api/internal/repository"
	"github.com/worklens/work-calendar-api/internal/schedule"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
)

// GeneratedTask summarizes one task produced from a template.
type GeneratedTask struct {
	TaskID       uint64 `json:"taskId"`
	TemplateName string `json:"templateName"`
	FillDate     string `json:"fillDate"`
}

// TemplateService turns recurring task templates into concrete dated tasks.
// The batch sweep is idempotent per (template, month) via the generation
// ledger; manual generation deliberately bypasses both the active filter and
// the ledger.
type TemplateService struct {
	templateRepo repository.TemplateRepository
	taskRepo     repository.TaskRepository
	logRepo      repository.GenerationLogRepository
	clock        schedule.Clock
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	taskRepo repository.TaskRepository,
	logRepo repository.GenerationLogRepository,
	clock schedule.Clock,
) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		taskRepo:     taskRepo,
		logRepo:      logRepo,
		clock:        clock,
	}
}

// GenerateMonthly runs the batch sweep for (year, month): every active
// template that is due and has no ledger entry for the period produces one
// pending task. Per-template storage failures are logged and skipped so the
// rest of the sweep still runs; only a failure to list the templates aborts.
func (s *TemplateService) GenerateMonthly(year, month int) ([]GeneratedTask, error) {
	templates, err := s.templateRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list active templates: %w", err)
	}

	periodKey := schedule.PeriodKey(year, month)
	generated := make([]GeneratedTask, 0)

	for i := range templates {
		tpl := &templates[i]

		done, err := s.logRepo.HasGenerated(tpl.ID, periodKey)
		if err != nil {
			log.Printf("template %d: failed to check generation log: %v", tpl.ID, err)
			continue
		}
		if done {
			continue
		}

		if !schedule.IsDueInMonth(tpl, year, month) {
			continue
		}

		task := s.buildTask(tpl, year, month, fmt.Sprintf("auto-generated: %s", tpl.Name))
		if err := s.taskRepo.CreateWithGenerationLog(task, tpl.ID, periodKey); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// A concurrent sweep won the race; the period is covered.
				continue
			}
			log.Printf("template %d: failed to generate task: %v", tpl.ID, err)
			continue
		}

		generated = append(generated, GeneratedTask{
			TaskID:       task.ID,
			TemplateName: tpl.Name,
			FillDate:     task.FillDate,
		})
	}

	return generated, nil
}

// GenerateFromTemplate creates one task from a template on demand. It is an
// operator escape hatch: inactive templates are allowed and no ledger entry is
// written, so a later sweep for the same period may still fire. Year and month
// default to the current calendar month.
func (s *TemplateService) GenerateFromTemplate(templateID uint64, year, month int) (*GeneratedTask, error) {
	tpl, err := s.templateRepo.FindByID(templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to find template: %w", err)
	}

	if year == 0 || month == 0 {
		now := s.clock.Now()
		year = now.Year()
		month = int(now.Month())
	}

	task := s.buildTask(tpl, year, month, fmt.Sprintf("manually generated: %s", tpl.Name))
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &GeneratedTask{
		TaskID:       task.ID,
		TemplateName: tpl.Name,
		FillDate:     task.FillDate,
	}, nil
}

func (s *TemplateService) buildTask(tpl *models.TaskTemplate, year, month int, defaultDescription string) *models.Task {
	fillDate := schedule.OccurrenceDate(year, month, tpl.RepeatDay)

	// OccurrenceDate always yields a valid date, so this cannot fail.
	expected, _ := schedule.ExpectedCompleteDate(fillDate, tpl.DurationDays)

	description := tpl.Description
	if description == "" {
		description = defaultDescription
	}

	templateID := tpl.ID
	return &models.Task{
		FillDate:             fillDate,
		ExpectedCompleteDate: &expected,
		CompanyID:            tpl.CompanyID,
		WorkItemID:           tpl.WorkItemID,
		Description:          description,
		Status:               models.TaskStatusPending,
		IsFromTemplate:       true,
		TemplateID:           &templateID,
	}
}
