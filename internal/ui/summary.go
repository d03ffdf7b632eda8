package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wallettrack/deployctl/internal/provisioning"
)

// RenderRunSummary renders the step-by-step outcome of a run. When styled is
// false (non-TTY output) the marks are printed without color codes.
func RenderRunSummary(result *provisioning.RunResult, styled bool) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(render(styled, sectionStyle, "  Deployment checklist"))
	b.WriteString("\n  " + strings.Repeat("─", 40) + "\n")

	for _, step := range result.Steps {
		mark, style := stepMark(step.Status)
		line := fmt.Sprintf("  %s  %-20s", render(styled, style, mark), step.Name)
		if step.Detail != "" {
			line += " " + render(styled, dimStyle, step.Detail)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	switch result.Status {
	case provisioning.RunSuccess:
		b.WriteString(render(styled, okStyle, fmt.Sprintf("  Deployment succeeded (%d remediated)", result.RemediatedCount())) + "\n")
	case provisioning.RunUnverifiedHealth:
		b.WriteString(render(styled, warningStyle, "  "+warnMark+" Deployed, but health is unverified") + "\n")
		b.WriteString(render(styled, dimStyle, "  "+result.Reason) + "\n")
	case provisioning.RunFailed:
		b.WriteString(render(styled, failedStyle, fmt.Sprintf("  Deployment failed at %s", result.FailedStep)) + "\n")
		b.WriteString(render(styled, dimStyle, "  "+result.Reason) + "\n")
	}

	if result.EndpointURL != "" {
		b.WriteString("\n  Endpoint: " + render(styled, titleStyle, result.EndpointURL) + "\n")
	}

	return b.String()
}

// stepMark maps a step status to its mark and style.
func stepMark(status provisioning.StepStatus) (string, lipgloss.Style) {
	switch status {
	case provisioning.StepSkipped:
		return skipMark, dimStyle
	case provisioning.StepRemediated:
		return checkMark, okStyle
	default:
		return crossMark, failedStyle
	}
}

// render applies the style only when styled output is wanted.
func render(styled bool, style lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
