package controllers

import (
	"fmt"
	"strconv"
	"strings"
)

// parseRevisions reads revision numbers, accepting an optional "r" prefix.
func parseRevisions(args []string) ([]int, error) {
	revisions := make([]int, 0, len(args))
	for _, arg := range args {
		revision, err := strconv.Atoi(strings.TrimPrefix(strings.ToLower(arg), "r"))
		if err != nil || revision <= 0 {
			return nil, fmt.Errorf("invalid revision %q", arg)
		}
		revisions = append(revisions, revision)
	}
	return revisions, nil
}
