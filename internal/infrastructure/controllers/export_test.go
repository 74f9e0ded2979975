package controllers

// ParseRevisions exports parseRevisions for testing.
var ParseRevisions = parseRevisions //nolint:gochecknoglobals // test export
