package mcp

import (
	"net/http"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/pkg"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server whose tools read the workout log of userID.
func NewServer(service contextService, userID string) *mcp.Server {
	h := NewHandler(service, userID)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitlog",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_fitlog_schema",
		Description: "Returns the DB schema of the workout log tables (exercise, workout, workout_exercise, workout_set, weekly_summary): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Returns the aggregated dashboard: total volume, sets and cardio duration, current and longest streak, personal records, most frequent exercises, weekly groups and daily volume. Optional filters: category, keyword.",
	}, h.GetDashboardTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workouts_for_time_range",
		Description: "Returns the logged workouts (exercises and sets) between from_date and to_date (YYYY-MM-DD, inclusive), newest first.",
	}, h.GetWorkoutsForTimeRangeTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_stats",
		Description: "Returns per-exercise stats grouped by muscle group: total sets, volume, max and min weight, and progress as the change in average weight between the last two weeks with data. Optional: muscle_group.",
	}, h.GetExerciseStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_weekly_summary",
		Description: "Returns the AI-written summary of a training week. A summary made earlier the same day is reused unless force is set. Optional: week (YYYY-MM-DD), force.",
	}, h.GetWeeklySummaryTool())

	return s
}

// NewHTTPHandler serves MCP over streamable HTTP for the authenticated user.
// Each request gets its own stateless server bound to the user from the request context.
func NewHTTPHandler(service contextService) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			return nil
		}
		return NewServer(service, userID)
	}, &mcp.StreamableHTTPOptions{
		Stateless:    true,
		JSONResponse: true,
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.UserIDFromContext(r.Context()); !ok {
			pkg.WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		streamable.ServeHTTP(w, r)
	})
}
