package ai

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/wtf-sh/wtf/internal/domain"
)

// renderPromptMessages expands the model's prompt templates with context data
// and ensures a user message exists.
func renderPromptMessages(model domain.ModelDefinition, userPrompt string, ctx domain.ContextSnapshot) ([]domain.PromptMessage, error) {
	data := buildTemplateData(userPrompt, ctx)
	messages := model.Prompt
	if len(messages) == 0 {
		messages = defaultTemplateMessages()
	}

	rendered := make([]domain.PromptMessage, 0, len(messages))
	for _, msg := range messages {
		content, err := executeTemplate(msg.Content, data)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, domain.PromptMessage{
			Role:    msg.Role,
			Content: strings.TrimSpace(content),
		})
	}

	if !hasUserMessage(rendered) {
		fallback, err := executeTemplate("{{.Prompt}}", data)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, domain.PromptMessage{
			Role:    "user",
			Content: strings.TrimSpace(fallback),
		})
	}

	return rendered, nil
}

type templateData struct {
	Prompt      string
	WorkingDir  string
	Shell       string
	OS          string
	User        string
	Memories    string
	LastFailure string
}

func buildTemplateData(prompt string, ctx domain.ContextSnapshot) templateData {
	return templateData{
		Prompt:      fmt.Sprintf("%s\n\n%s", strings.TrimSpace(prompt), contextSnippet(ctx)),
		WorkingDir:  ctx.WorkingDir,
		Shell:       ctx.Shell,
		OS:          ctx.OS,
		User:        ctx.User,
		Memories:    memoriesSummary(ctx.Memories),
		LastFailure: failureSummary(ctx.LastFailure),
	}
}

func contextSnippet(ctx domain.ContextSnapshot) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("Directory: %s", ctx.WorkingDir))
	if ctx.Shell != "" {
		lines = append(lines, fmt.Sprintf("Shell: %s", ctx.Shell))
	}
	if ctx.OS != "" {
		lines = append(lines, fmt.Sprintf("OS: %s", ctx.OS))
	}
	if memories := memoriesSummary(ctx.Memories); memories != "" {
		lines = append(lines, fmt.Sprintf("User preferences (with confidence):\n%s", memories))
	}
	if failure := failureSummary(ctx.LastFailure); failure != "" {
		lines = append(lines, fmt.Sprintf("Last failed command: %s", failure))
	}
	return strings.Join(lines, "\n")
}

// memoriesSummary renders each remembered preference verbatim as
// `key=value (confidence)`, one per line, in store order.
func memoriesSummary(memories []domain.PreferenceEntry) string {
	if len(memories) == 0 {
		return ""
	}
	lines := make([]string, 0, len(memories))
	for _, entry := range memories {
		lines = append(lines, fmt.Sprintf("%s=%s (%.1f)", entry.Key, entry.Value, entry.Confidence))
	}
	return strings.Join(lines, "\n")
}

func failureSummary(event *domain.HookEvent) string {
	if event == nil {
		return ""
	}
	return fmt.Sprintf("`%s` exited %d", event.Command, event.ExitCode)
}

func executeTemplate(raw string, data templateData) (string, error) {
	tmpl, err := template.New("prompt").Parse(raw)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func hasUserMessage(messages []domain.PromptMessage) bool {
	for _, msg := range messages {
		if strings.EqualFold(msg.Role, "user") {
			return true
		}
	}
	return false
}

func defaultTemplateMessages() []domain.PromptMessage {
	return []domain.PromptMessage{
		{
			Role: "system",
			Content: `You are wtf, a cautious terminal assistant.
Translate the user's request into exactly one shell command.
Respond with the command on a line starting with "command:" and a short
explanation on a line starting with "explanation:".
Current environment:
- Directory: {{.WorkingDir}}
- Shell: {{.Shell}}
- OS: {{.OS}}
{{if .Memories}}Known user preferences (key=value with confidence):
{{.Memories}}{{end}}
{{if .LastFailure}}The user's previous command failed: {{.LastFailure}}{{end}}`,
		},
		{
			Role:    "user",
			Content: "{{.Prompt}}",
		},
	}
}
