package planner

import (
	"Meal-Planner-Backend/domain"
	"Meal-Planner-Backend/entities"
	"Meal-Planner-Backend/pkg/access"
	"Meal-Planner-Backend/pkg/recipe"
	"Meal-Planner-Backend/pkg/user"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

const eventColor = "#28a745"

type (
	PlannerService interface {
		CalendarEvents(ctx context.Context, viewerID string) ([]domain.CalendarEvent, error)
		WeeklyPlanPDF(ctx context.Context) ([]byte, error)
	}

	plannerService struct {
		recipeRepository recipe.RecipeRepository
		userRepository   user.UserRepository
	}
)

func NewPlannerService(recipeRepository recipe.RecipeRepository, userRepository user.UserRepository) PlannerService {
	return &plannerService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
	}
}

// CalendarEvents projects every recipe onto the calendar. Editable is a pure
// per-item read-side check against the current viewer, never a mutation.
func (s *plannerService) CalendarEvents(ctx context.Context, viewerID string) ([]domain.CalendarEvent, error) {
	var viewer *entities.User
	if viewerID != "" {
		u, err := s.userRepository.GetUserByID(ctx, viewerID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		viewer = u
	}

	recipes, err := s.recipeRepository.GetRecipesByDay(ctx, "")
	if err != nil {
		return nil, err
	}

	events := make([]domain.CalendarEvent, 0, len(recipes))
	for _, r := range recipes {
		editable := access.CanModifyRecipe(viewer, r)
		url := "#"
		if editable {
			url = fmt.Sprintf("/update_recipe/%s", r.ID.String())
		}
		events = append(events, domain.CalendarEvent{
			Title:    r.Name,
			Start:    r.Day.Format("2006-01-02"),
			URL:      url,
			Editable: editable,
			Color:    eventColor,
		})
	}
	return events, nil
}

// WeeklyPlanPDF renders the whole plan into a buffer before any byte leaves
// the process, so a renderer failure never produces a partial file.
func (s *plannerService) WeeklyPlanPDF(ctx context.Context) ([]byte, error) {
	recipes, err := s.recipeRepository.GetRecipesByDay(ctx, "")
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Weekly Meal Plan", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, r := range recipes {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("%s  %s", r.Day.Format("2006-01-02"), r.Name), "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, r.Description, "", "", false)
		pdf.CellFormat(0, 5, fmt.Sprintf("Preparation: %d min, serves %d", r.PrepTimeMinutes, r.Servings), "", 1, "", false, 0, "")
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		log.Printf("pdf rendering failed: %v", err)
		return nil, domain.ErrPDFRenderFailed
	}
	return buf.Bytes(), nil
}
