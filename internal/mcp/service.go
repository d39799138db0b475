package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"
	"github.com/2beens/fitlog/internal/workouts"
)

type schemaRepo interface {
	Columns(ctx context.Context) ([]SchemaColumn, error)
}

type workoutsLister interface {
	List(ctx context.Context, params workouts.ListParams) ([]workouts.Workout, error)
}

type statsAnalyzer interface {
	Dashboard(ctx context.Context, userID string, filter stats.FilterParams, now time.Time, topN int) (*stats.Dashboard, error)
	ExerciseStats(ctx context.Context, userID, muscleGroup string) ([]stats.ExerciseStats, error)
}

type weeklySummarizer interface {
	WeeklySummary(ctx context.Context, params summary.Params) (*summary.WeeklySummary, error)
}

// contextService is what the tool handlers need, kept narrow for tests.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	Dashboard(ctx context.Context, userID string, filter stats.FilterParams, topN int) (*stats.Dashboard, error)
	ListWorkouts(ctx context.Context, params workouts.ListParams) ([]workouts.Workout, error)
	ExerciseStats(ctx context.Context, userID, muscleGroup string) ([]stats.ExerciseStats, error)
	WeeklySummary(ctx context.Context, params summary.Params) (*summary.WeeklySummary, error)
}

type ContextService struct {
	schema    schemaRepo
	workouts  workoutsLister
	analyzer  statsAnalyzer
	summaries weeklySummarizer
	now       func() time.Time
}

func NewContextService(
	schema schemaRepo,
	workoutsLister workoutsLister,
	analyzer statsAnalyzer,
	summaries weeklySummarizer,
) *ContextService {
	return &ContextService{
		schema:    schema,
		workouts:  workoutsLister,
		analyzer:  analyzer,
		summaries: summaries,
		now:       time.Now,
	}
}

func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.Columns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Fitlog DB Schema\n\nNo workout tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Fitlog DB Schema\n\n")
	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|--------|\n")
		for _, c := range byTable[tableName] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func (s *ContextService) Dashboard(ctx context.Context, userID string, filter stats.FilterParams, topN int) (*stats.Dashboard, error) {
	return s.analyzer.Dashboard(ctx, userID, filter, s.now(), topN)
}

func (s *ContextService) ListWorkouts(ctx context.Context, params workouts.ListParams) ([]workouts.Workout, error) {
	return s.workouts.List(ctx, params)
}

func (s *ContextService) ExerciseStats(ctx context.Context, userID, muscleGroup string) ([]stats.ExerciseStats, error) {
	return s.analyzer.ExerciseStats(ctx, userID, muscleGroup)
}

// WeeklySummary defaults to the current week when no week start is given.
func (s *ContextService) WeeklySummary(ctx context.Context, params summary.Params) (*summary.WeeklySummary, error) {
	if params.WeekStart.IsZero() {
		params.WeekStart = stats.WeekStart(s.now())
	}
	return s.summaries.WeeklySummary(ctx, params)
}
