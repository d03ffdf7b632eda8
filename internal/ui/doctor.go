package ui

import (
	"fmt"
	"strings"
)

// DoctorCheck is one row of the doctor report.
type DoctorCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Detail  string `json:"detail,omitempty"`
	Section string `json:"section,omitempty"`
}

// DoctorReport is the full read-only diagnostic result.
type DoctorReport struct {
	Project string        `json:"project"`
	Service string        `json:"service"`
	Checks  []DoctorCheck `json:"checks"`
}

// Healthy reports whether every check passed.
func (r *DoctorReport) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// RenderDoctorReport renders the report grouped by section.
func RenderDoctorReport(report *DoctorReport, styled bool) string {
	var b strings.Builder

	title := fmt.Sprintf("deployctl doctor: %s (%s)", report.Service, report.Project)
	b.WriteString("\n  " + render(styled, titleStyle, title) + "\n")
	b.WriteString("  " + strings.Repeat("═", len(title)) + "\n")

	section := ""
	for _, check := range report.Checks {
		if check.Section != section {
			section = check.Section
			b.WriteString("\n  " + render(styled, sectionStyle, section) + "\n")
			b.WriteString("  " + strings.Repeat("─", 35) + "\n")
		}

		mark := checkMark
		style := okStyle
		if !check.OK {
			mark = crossMark
			style = failedStyle
		}

		line := fmt.Sprintf("  %s  %-22s", render(styled, style, mark), check.Name)
		if check.Detail != "" {
			line += " " + render(styled, dimStyle, check.Detail)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if report.Healthy() {
		b.WriteString(render(styled, okStyle, "  Everything looks ready.") + "\n")
	} else {
		b.WriteString(render(styled, warningStyle, "  Some checks failed. Run 'deployctl deploy' to remediate.") + "\n")
	}

	return b.String()
}
