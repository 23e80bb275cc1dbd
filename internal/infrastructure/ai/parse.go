package ai

import "strings"

// splitProposal pulls the proposed command and explanation out of a model
// reply. Fenced code blocks win over "command:" lines; anything left after
// removing the command serves as the explanation.
func splitProposal(content string) (command string, explanation string) {
	explanation = labelledLine(content, "explanation:")

	if code := extractCodeBlock(content); code != "" {
		if explanation == "" {
			explanation = strings.TrimSpace(stripCodeBlock(content))
		}
		return code, explanation
	}
	if cmd := labelledLine(content, "command:"); cmd != "" {
		return cmd, explanation
	}
	return strings.TrimSpace(content), explanation
}

func extractCodeBlock(content string) string {
	start := strings.Index(content, "```")
	if start == -1 {
		return ""
	}
	suffix := content[start+3:]
	end := strings.Index(suffix, "```")
	if end == -1 {
		return ""
	}

	block := suffix[:end]
	lines := strings.Split(block, "\n")
	if len(lines) > 0 && isLanguageTag(lines[0]) {
		lines = lines[1:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func stripCodeBlock(content string) string {
	start := strings.Index(content, "```")
	if start == -1 {
		return content
	}
	suffix := content[start+3:]
	end := strings.Index(suffix, "```")
	if end == -1 {
		return content
	}
	return content[:start] + suffix[end+3:]
}

func labelledLine(content string, label string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), label) {
			return strings.TrimSpace(line[len(label):])
		}
	}
	return ""
}

func isLanguageTag(line string) bool {
	switch strings.TrimSpace(line) {
	case "sh", "shell", "bash", "zsh", "fish", "console":
		return true
	}
	return false
}
