package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/2beens/fitlog/internal/exercises"
	"github.com/2beens/fitlog/internal/stats"
	"github.com/2beens/fitlog/internal/summary"
	"github.com/2beens/fitlog/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler turns tool calls into service calls for a single user.
type Handler struct {
	service contextService
	userID  string
}

func NewHandler(service contextService, userID string) *Handler {
	return &Handler{
		service: service,
		userID:  userID,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// DashboardInput is the input for get_dashboard.
type DashboardInput struct {
	Category string `json:"category,omitempty" jsonschema:"Filter by exercise category: weight_training, cardio or calisthenics"`
	Keyword  string `json:"keyword,omitempty" jsonschema:"Case-insensitive filter on exercise name"`
	Top      int    `json:"top,omitempty" jsonschema:"How many most frequent exercises to return (default 5)"`
}

func (h *Handler) GetDashboardTool() func(context.Context, *mcp.CallToolRequest, DashboardInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in DashboardInput) (*mcp.CallToolResult, any, error) {
		filter := stats.FilterParams{Keyword: in.Keyword}
		if in.Category != "" {
			category, err := exercises.ParseCategory(in.Category)
			if err != nil {
				return errorResult("Invalid category: " + err.Error()), nil, nil
			}
			filter.Category = category
		}

		dashboard, err := h.service.Dashboard(ctx, h.userID, filter, in.Top)
		if err != nil {
			return errorResult("Error building dashboard: " + err.Error()), nil, nil
		}
		return jsonResult(dashboard), nil, nil
	}
}

// WorkoutsTimeRangeInput is the input for get_workouts_for_time_range.
type WorkoutsTimeRangeInput struct {
	FromDate string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate   string `json:"to_date" jsonschema:"End date (YYYY-MM-DD), inclusive"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of workouts, newest first"`
}

func (h *Handler) GetWorkoutsForTimeRangeTool() func(context.Context, *mcp.CallToolRequest, WorkoutsTimeRangeInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutsTimeRangeInput) (*mcp.CallToolResult, any, error) {
		from, err := time.Parse(time.DateOnly, in.FromDate)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := time.Parse(time.DateOnly, in.ToDate)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}
		if to.Before(from) {
			return errorResult("Invalid range: to_date is before from_date"), nil, nil
		}
		to = to.Add(24*time.Hour - time.Nanosecond)

		list, err := h.service.ListWorkouts(ctx, workouts.ListParams{
			UserID: h.userID,
			From:   &from,
			To:     &to,
			Limit:  in.Limit,
		})
		if err != nil {
			return errorResult("Error listing workouts: " + err.Error()), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// ExerciseStatsInput is the input for get_exercise_stats.
type ExerciseStatsInput struct {
	MuscleGroup string `json:"muscle_group,omitempty" jsonschema:"Only exercises of this muscle group (e.g. Chest, Legs)"`
}

func (h *Handler) GetExerciseStatsTool() func(context.Context, *mcp.CallToolRequest, ExerciseStatsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseStatsInput) (*mcp.CallToolResult, any, error) {
		breakdown, err := h.service.ExerciseStats(ctx, h.userID, in.MuscleGroup)
		if err != nil {
			return errorResult("Error fetching exercise stats: " + err.Error()), nil, nil
		}
		return jsonResult(breakdown), nil, nil
	}
}

// WeeklySummaryInput is the input for get_weekly_summary.
type WeeklySummaryInput struct {
	Week  string `json:"week,omitempty" jsonschema:"Any date (YYYY-MM-DD) in the wanted week, defaults to the current week"`
	Force bool   `json:"force,omitempty" jsonschema:"Generate a new summary even if one was made today"`
}

func (h *Handler) GetWeeklySummaryTool() func(context.Context, *mcp.CallToolRequest, WeeklySummaryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WeeklySummaryInput) (*mcp.CallToolResult, any, error) {
		params := summary.Params{
			UserID: h.userID,
			Force:  in.Force,
		}
		if in.Week != "" {
			week, err := time.Parse(time.DateOnly, in.Week)
			if err != nil {
				return errorResult("Invalid week: use YYYY-MM-DD"), nil, nil
			}
			params.WeekStart = week
		}

		s, err := h.service.WeeklySummary(ctx, params)
		if err != nil {
			return errorResult("Error generating weekly summary: " + err.Error()), nil, nil
		}
		return jsonResult(s), nil, nil
	}
}
