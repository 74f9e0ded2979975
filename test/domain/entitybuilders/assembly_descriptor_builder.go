//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

// AssemblyDescriptorBuilder helps create test descriptors with a fluent interface.
type AssemblyDescriptorBuilder struct {
	*testkit.BaseBuilder
	name       string
	kind       entities.OutputKind
	references []string
}

// NewAssemblyDescriptorBuilder creates a new descriptor builder for a library.
func NewAssemblyDescriptorBuilder() *AssemblyDescriptorBuilder {
	return &AssemblyDescriptorBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "ecbeing.Test",
		kind:        entities.OutputLibrary,
	}
}

// WithName sets the assembly name.
func (b *AssemblyDescriptorBuilder) WithName(name string) *AssemblyDescriptorBuilder {
	b.name = name
	return b
}

// AsExecutable makes the assembly an executable.
func (b *AssemblyDescriptorBuilder) AsExecutable() *AssemblyDescriptorBuilder {
	b.kind = entities.OutputExecutable
	return b
}

// WithReferences sets the referenced assembly names.
func (b *AssemblyDescriptorBuilder) WithReferences(references ...string) *AssemblyDescriptorBuilder {
	b.references = references
	return b
}

// Build creates the descriptor (satisfies testkit.Builder interface).
func (b *AssemblyDescriptorBuilder) Build() interface{} {
	return b.BuildDescriptor()
}

// BuildDescriptor creates the descriptor with a concrete return type.
func (b *AssemblyDescriptorBuilder) BuildDescriptor() entities.AssemblyDescriptor {
	return entities.AssemblyDescriptor{
		Name:       b.name,
		Kind:       b.kind,
		References: append([]string(nil), b.references...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *AssemblyDescriptorBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "ecbeing.Test"
	b.kind = entities.OutputLibrary
	b.references = nil
	return b
}

// Clone creates a deep copy of the AssemblyDescriptorBuilder.
func (b *AssemblyDescriptorBuilder) Clone() testkit.Builder {
	return &AssemblyDescriptorBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		kind:        b.kind,
		references:  append([]string(nil), b.references...),
	}
}
