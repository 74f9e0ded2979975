package entities

import "fmt"

// OutputKind is the kind of artifact a project descriptor compiles to.
type OutputKind string

const (
	OutputLibrary    OutputKind = "Library"
	OutputExecutable OutputKind = "Executable"
)

// Extension returns the file extension of the compiled artifact, including the dot.
func (k OutputKind) Extension() string {
	switch k {
	case OutputLibrary:
		return ".dll"
	case OutputExecutable:
		return ".exe"
	default:
		return ""
	}
}

// ParseOutputKind maps the OutputType value declared in a project descriptor
// to an OutputKind. Only Library and Exe are supported.
func ParseOutputKind(assemblyName, declared string) (OutputKind, error) {
	switch declared {
	case "Library":
		return OutputLibrary, nil
	case "Exe":
		return OutputExecutable, nil
	default:
		return "", fmt.Errorf("%s: %w %q", assemblyName, ErrUnknownOutputType, declared)
	}
}

// AssemblyDescriptor is one node of the project dependency graph.
type AssemblyDescriptor struct {
	Name       string     // Assembly name, unique within a scan
	Kind       OutputKind // Library or Executable
	References []string   // Referenced assembly names, may point outside the graph
}

// FileName returns the deployable artifact name, e.g. "Util.dll".
func (a AssemblyDescriptor) FileName() string {
	return a.Name + a.Kind.Extension()
}
