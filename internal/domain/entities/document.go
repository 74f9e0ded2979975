package entities

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Scheme tags the kind of a persisted document.
type Scheme string

const (
	SchemeProject    Scheme = "project"
	SchemeDependency Scheme = "dependency"
	SchemeIgnore     Scheme = "ignore"
	SchemeHistory    Scheme = "history"
)

// Document is a record of the document store. Every variant is persisted the
// same way ({scheme, key, body}) and validated per variant when read back.
type Document interface {
	Scheme() Scheme
	Key() string
	Validate() error
}

// ProjectDocument stores the project configuration.
type ProjectDocument struct {
	Project
}

func (d ProjectDocument) Scheme() Scheme { return SchemeProject }

func (d ProjectDocument) Key() string { return d.Name }

func (d ProjectDocument) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: project name is empty", ErrInvalidDocument)
	}
	if d.LocalPath == "" {
		return fmt.Errorf("%w: project %q has no local path", ErrInvalidDocument, d.Name)
	}
	return nil
}

// DependencyDocument stores one scanned assembly descriptor.
type DependencyDocument struct {
	Name       string     `json:"name"`
	Kind       OutputKind `json:"kind"`
	References []string   `json:"referenceNames"`
}

// NewDependencyDocument wraps a descriptor for persistence.
func NewDependencyDocument(descriptor AssemblyDescriptor) DependencyDocument {
	return DependencyDocument{
		Name:       descriptor.Name,
		Kind:       descriptor.Kind,
		References: descriptor.References,
	}
}

func (d DependencyDocument) Scheme() Scheme { return SchemeDependency }

func (d DependencyDocument) Key() string { return d.Name }

func (d DependencyDocument) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: dependency without name", ErrInvalidDocument)
	}
	if d.Kind.Extension() == "" {
		return fmt.Errorf("%w: dependency %q has kind %q", ErrInvalidDocument, d.Name, d.Kind)
	}
	return nil
}

// Descriptor converts the document back to a graph node.
func (d DependencyDocument) Descriptor() AssemblyDescriptor {
	return AssemblyDescriptor{Name: d.Name, Kind: d.Kind, References: d.References}
}

// IgnoreDocument stores one ignore-list entry (a regular expression).
type IgnoreDocument struct {
	Pattern string `json:"name"`
}

func (d IgnoreDocument) Scheme() Scheme { return SchemeIgnore }

func (d IgnoreDocument) Key() string { return d.Pattern }

func (d IgnoreDocument) Validate() error {
	if d.Pattern == "" {
		return fmt.Errorf("%w: empty ignore entry", ErrInvalidDocument)
	}
	return nil
}

// HistoryDocument stores one ledger record.
type HistoryDocument struct {
	ReleaseHistoryRecord
}

func (d HistoryDocument) Scheme() Scheme { return SchemeHistory }

func (d HistoryDocument) Key() string { return strconv.Itoa(d.Revision) }

func (d HistoryDocument) Validate() error {
	if d.Revision <= 0 {
		return fmt.Errorf("%w: history revision %d", ErrInvalidDocument, d.Revision)
	}
	return nil
}

// DecodeDocument restores the variant tagged by scheme and validates it.
func DecodeDocument(scheme Scheme, body []byte) (Document, error) {
	var (
		doc Document
		err error
	)
	switch scheme {
	case SchemeProject:
		var d ProjectDocument
		err = json.Unmarshal(body, &d)
		doc = d
	case SchemeDependency:
		var d DependencyDocument
		err = json.Unmarshal(body, &d)
		doc = d
	case SchemeIgnore:
		var d IgnoreDocument
		err = json.Unmarshal(body, &d)
		doc = d
	case SchemeHistory:
		var d HistoryDocument
		err = json.Unmarshal(body, &d)
		doc = d
	default:
		return nil, fmt.Errorf("%w: unknown scheme %q", ErrInvalidDocument, scheme)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", scheme, err)
	}
	if validateErr := doc.Validate(); validateErr != nil {
		return nil, validateErr
	}
	return doc, nil
}
