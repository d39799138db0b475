package summary

import (
	"encoding/json"
	"fmt"
	"strings"
)

const defaultUserName = "the user"

// BuildPrompt renders the generator prompt. Exercise names are listed once,
// in the order they first appear.
func BuildPrompt(req Request) (string, error) {
	userName := strings.TrimSpace(req.UserName)
	if userName == "" {
		userName = defaultUserName
	}

	var names []string
	seen := make(map[string]bool)
	for _, w := range req.Workouts {
		for _, we := range w.Exercises {
			name := we.Exercise.Name
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	exerciseList := strings.Join(names, ", ")
	if exerciseList == "" {
		exerciseList = "None"
	}

	workoutsJSON, err := json.MarshalIndent(req.Workouts, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal workouts: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate a friendly weekly workout summary for %s.\n", userName)
	fmt.Fprintf(&sb, "This was their activity for the week of %s:\n", req.WeekLabel)
	fmt.Fprintf(&sb, "- Workouts: %d\n", len(req.Workouts))
	fmt.Fprintf(&sb, "- Exercises performed: %s\n", exerciseList)
	sb.WriteString("- Data is detailed below in JSON format.\n\n")
	if prev := strings.TrimSpace(req.PreviousSummary); prev != "" {
		fmt.Fprintf(&sb, "Last week's summary, for comparison:\n%s\n\n", prev)
	}
	sb.WriteString("Return a short motivational paragraph (2-3 sentences max).\n\n")
	sb.WriteString("Workout Data:\n")
	sb.Write(workoutsJSON)
	sb.WriteString("\n")

	return sb.String(), nil
}
