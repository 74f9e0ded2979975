package scanner

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/rios0rios0/packman/internal/domain/entities"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// msbuildProject is the subset of a .csproj/.vbproj file needed for the graph.
type msbuildProject struct {
	PropertyGroups []propertyGroup `xml:"PropertyGroup"`
	ItemGroups     []itemGroup     `xml:"ItemGroup"`
}

type propertyGroup struct {
	AssemblyName string `xml:"AssemblyName"`
	OutputType   string `xml:"OutputType"`
}

type itemGroup struct {
	ProjectReferences []projectReference `xml:"ProjectReference"`
	References        []binaryReference  `xml:"Reference"`
}

type projectReference struct {
	Include string `xml:"Include,attr"`
	Name    string `xml:"Name"`
}

type binaryReference struct {
	Include  string `xml:"Include,attr"`
	HintPath string `xml:"HintPath"`
}

// DescriptorOptions selects the descriptors taking part in a scan.
type DescriptorOptions struct {
	SourceDir       string         // Directory to walk, usually <local>/src
	Include         *regexp.Regexp // Matched against descriptor basenames
	ExcludeKeywords []string       // Descriptors whose path contains one of these are skipped
}

// ParseDescriptor extracts the assembly name, output kind and references of
// a project descriptor. An output type other than Library or Exe is an error
// naming the assembly.
func ParseDescriptor(content []byte) (entities.AssemblyDescriptor, error) {
	decoder := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(content, utf8BOM)))
	decoder.CharsetReader = charsetReader

	var project msbuildProject
	if err := decoder.Decode(&project); err != nil {
		return entities.AssemblyDescriptor{}, fmt.Errorf("failed to parse project descriptor: %w", err)
	}

	var properties *propertyGroup
	for i := range project.PropertyGroups {
		if strings.TrimSpace(project.PropertyGroups[i].AssemblyName) != "" {
			properties = &project.PropertyGroups[i]
			break
		}
	}
	if properties == nil {
		return entities.AssemblyDescriptor{}, errors.New("project descriptor declares no AssemblyName")
	}

	name := strings.TrimSpace(properties.AssemblyName)
	kind, err := entities.ParseOutputKind(name, strings.TrimSpace(properties.OutputType))
	if err != nil {
		return entities.AssemblyDescriptor{}, err
	}

	var references []string
	for _, group := range project.ItemGroups {
		for _, ref := range group.ProjectReferences {
			refName := strings.TrimSpace(ref.Name)
			if refName == "" {
				refName = baseNameWithoutExt(ref.Include)
			}
			if refName != "" {
				references = append(references, refName)
			}
		}
		for _, ref := range group.References {
			if strings.TrimSpace(ref.HintPath) == "" {
				continue
			}
			references = append(references, baseNameWithoutExt(ref.HintPath))
		}
	}

	logger.Debugf("%s => [%s]", name, strings.Join(references, ", "))

	return entities.AssemblyDescriptor{
		Name:       name,
		Kind:       kind,
		References: references,
	}, nil
}

// ScanDescriptors walks the source directory and parses every matching
// descriptor. Any parse failure aborts the whole scan.
func ScanDescriptors(opts DescriptorOptions) ([]entities.AssemblyDescriptor, error) {
	var descriptors []entities.AssemblyDescriptor

	err := filepath.WalkDir(opts.SourceDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !opts.Include.MatchString(d.Name()) {
			return nil
		}
		for _, keyword := range opts.ExcludeKeywords {
			if strings.Contains(p, keyword) {
				logger.Debugf("Skipping %s (excluded by %q)", p, keyword)
				return nil
			}
		}

		logger.Debugf("Parsing: %s", p)
		content, readErr := os.ReadFile(p)
		if readErr != nil {
			return readErr
		}
		descriptor, parseErr := ParseDescriptor(content)
		if parseErr != nil {
			return fmt.Errorf("%s: %w", p, parseErr)
		}
		descriptors = append(descriptors, descriptor)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return descriptors, nil
}

// baseNameWithoutExt returns the file name of a descriptor path without its
// extension. Windows separators are accepted.
func baseNameWithoutExt(p string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(p), `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// charsetReader decodes descriptors saved by older Visual Studio versions.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "utf-8", "utf8", "us-ascii":
		return input, nil
	case "shift_jis", "shift-jis", "sjis", "windows-31j", "cp932":
		return transform.NewReader(input, japanese.ShiftJIS.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported descriptor encoding %q", label)
	}
}
