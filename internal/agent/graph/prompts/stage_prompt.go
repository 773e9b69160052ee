package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/carecrew/server/internal/agent/model"
)

// DependencyOutput is a prior stage's output quoted to a later stage.
type DependencyOutput struct {
	Stage  model.StageID
	Title  string
	Output string
}

// StagePromptData is everything a stage instruction template may reference.
type StagePromptData struct {
	Message      string
	Context      string
	Dependencies []DependencyOutput
	ToolName     string
	ToolDesc     string
	ToolResult   string
}

var dependencyTitles = map[model.StageRole]string{
	model.RoleClassifier:  "Greeter's intent classification",
	model.RoleResearcher:  "Researcher's findings",
	model.RoleOrderLookup: "Order specialist's information",
	model.RoleResolver:    "Resolver's action plan",
	model.RoleReviewer:    "Reviewer's notes",
}

// DependencyTitle labels a dependency by the role that produced it.
func DependencyTitle(role model.StageRole) string {
	if t, ok := dependencyTitles[role]; ok {
		return t
	}
	return string(role)
}

// RenderStage renders the persona and the stage instructions via the eino
// prompt component, which also triggers prompt callbacks.
func RenderStage(ctx context.Context, stage model.Stage, data StagePromptData) ([]*schema.Message, error) {
	if strings.TrimSpace(stage.Instructions) == "" {
		return nil, fmt.Errorf("stage %s has no instructions", stage.ID)
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(Persona(stage.Role)),
		schema.UserMessage(stage.Instructions),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"Message":      data.Message,
		"Context":      data.Context,
		"Dependencies": data.Dependencies,
		"ToolName":     data.ToolName,
		"ToolDesc":     data.ToolDesc,
		"ToolResult":   data.ToolResult,
	})
	if err != nil {
		return nil, fmt.Errorf("stage %s prompt render: %w", stage.ID, err)
	}
	if len(msgs) != 2 || msgs[1] == nil {
		return nil, fmt.Errorf("stage %s prompt render: unexpected result", stage.ID)
	}
	return msgs, nil
}

// FormatContext renders the most recent maxTurns turns, oldest first.
func FormatContext(turns []model.Turn, maxTurns int) string {
	if maxTurns <= 0 || len(turns) == 0 {
		return ""
	}
	if len(turns) > maxTurns {
		turns = turns[len(turns)-maxTurns:]
	}

	var b strings.Builder
	for _, t := range turns {
		if strings.TrimSpace(t.Content) == "" {
			continue
		}
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
