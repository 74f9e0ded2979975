package svn

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

type logDocument struct {
	Entries []logEntry `xml:"logentry"`
}

type logEntry struct {
	Revision int       `xml:"revision,attr"`
	Author   string    `xml:"author"`
	Date     string    `xml:"date"`
	Message  string    `xml:"msg"`
	Paths    []logPath `xml:"paths>path"`
}

type logPath struct {
	Path     string `xml:",chardata"`
	Action   string `xml:"action,attr"`
	Kind     string `xml:"kind,attr"`
	TextMods string `xml:"text-mods,attr"`
	PropMods string `xml:"prop-mods,attr"`
}

// parseLog converts the output of `svn log --xml -v` into commits.
func parseLog(output []byte) ([]entities.Commit, error) {
	var document logDocument
	if err := xml.Unmarshal(output, &document); err != nil {
		return nil, fmt.Errorf("failed to parse svn log: %w", err)
	}

	commits := make([]entities.Commit, 0, len(document.Entries))
	for _, entry := range document.Entries {
		commit := entities.Commit{
			Revision: entry.Revision,
			Author:   entry.Author,
			Message:  entry.Message,
		}
		if entry.Date != "" {
			date, err := time.Parse(time.RFC3339Nano, entry.Date)
			if err != nil {
				return nil, fmt.Errorf("r%d has an invalid date %q: %w", entry.Revision, entry.Date, err)
			}
			commit.Date = date
		}
		for _, p := range entry.Paths {
			commit.Paths = append(commit.Paths, entities.ChangeEntry{
				Path:     strings.TrimSpace(p.Path),
				Action:   entities.ChangeAction(p.Action),
				Kind:     p.Kind,
				TextMods: p.TextMods == "true",
				PropMods: p.PropMods == "true",
				Revision: entry.Revision,
			})
		}
		commits = append(commits, commit)
	}
	return commits, nil
}
