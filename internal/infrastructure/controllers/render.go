package controllers

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rios0rios0/packman/internal/domain/commands"
	"github.com/rios0rios0/packman/internal/domain/entities"
)

//nolint:gochecknoglobals // shared console styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))
	releasedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50"))
	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB74D"))
	conflictStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

const dateLayout = "2006/01/02 15:04:05"

func renderProject(project entities.Project) string {
	password := ""
	if project.VCS.Password != "" {
		password = "********"
	}
	vcsType := project.VCS.Type
	if vcsType == "" {
		vcsType = "svn"
	}

	rows := [][2]string{
		{"Name", project.Name},
		{"Local path", project.LocalPath},
		{"Server path", project.ServerPath},
		{"Ledger dir", project.ReleaseManagerPath},
		{"VCS", vcsType},
		{"Username", project.VCS.Username},
		{"Password", password},
		{"Max log", fmt.Sprint(project.VCS.MaxLog)},
	}
	lines := []string{titleStyle.Render("Project")}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-12s", row[0])), row[1]))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderHistory(records []entities.ReleaseHistoryRecord) string {
	if len(records) == 0 {
		return labelStyle.Render("No release history")
	}

	lines := []string{titleStyle.Render("Release history")}
	for _, record := range records {
		status := pendingStyle.Render(fmt.Sprintf("%-19s", "unreleased"))
		if record.Released() {
			status = releasedStyle.Render(record.ReleasedAt.Local().Format(dateLayout))
		}
		lines = append(lines, fmt.Sprintf("r%-7d %s  %s", record.Revision, status, record.Summary))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderConflicts(conflicts []entities.Conflict) string {
	lines := []string{conflictStyle.Render("Unreleased revisions touch the same assemblies")}
	for _, conflict := range conflicts {
		lines = append(lines,
			fmt.Sprintf("r%d %s", conflict.Revision, conflict.Summary),
			labelStyle.Render("  "+strings.Join(conflict.Assemblies, ", ")),
		)
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func renderList(title string, items []string) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items)))}
	for _, item := range items {
		lines = append(lines, "  "+item)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderPackResult(result *commands.PackResult) string {
	sections := []string{
		renderList("Revisions", revisionLabels(result.Commits)),
		renderList("Release targets", result.Targets),
		renderList("Merge required (added)", result.Changes.MergeAdded),
		renderList("Merge required (modified)", result.Changes.MergeModified),
		renderList("Packaged files", result.Files),
		labelStyle.Render("Output: " + result.Layout.Dir),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func revisionLabels(commits []entities.Commit) []string {
	labels := make([]string, 0, len(commits))
	for _, commit := range commits {
		labels = append(labels, fmt.Sprintf("r%d %s", commit.Revision, commit.Summary()))
	}
	return labels
}
