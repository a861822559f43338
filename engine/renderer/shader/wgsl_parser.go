package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> camera: CameraUniform;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// Binding is one resource declaration found in processed WGSL source.
type Binding struct {
	Group        int
	Binding      int
	AddressSpace string
	Name         string
	Type         string
}

// parseEntryPoints returns the first @vertex and @fragment function names in source.
// Either may be empty when the stage is absent.
func parseEntryPoints(source string) (vertex, fragment string) {
	cleaned := stripComments(source)
	if m := vertexEntryRegex.FindStringSubmatch(cleaned); m != nil {
		vertex = m[1]
	}
	if m := fragmentEntryRegex.FindStringSubmatch(cleaned); m != nil {
		fragment = m[1]
	}
	return vertex, fragment
}

// parseBindings extracts every @group/@binding declaration from source, sorted by group then binding.
//
// Parameters:
//   - source: the processed WGSL source
//
// Returns:
//   - []Binding: the declarations found
func parseBindings(source string) []Binding {
	cleaned := stripComments(source)
	matches := bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1)
	bindings := make([]Binding, 0, len(matches))
	for _, m := range matches {
		group, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		binding, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		bindings = append(bindings, Binding{
			Group:        group,
			Binding:      binding,
			AddressSpace: strings.TrimSpace(m[3]),
			Name:         m[4],
			Type:         strings.TrimSpace(m[5]),
		})
	}
	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Group != bindings[j].Group {
			return bindings[i].Group < bindings[j].Group
		}
		return bindings[i].Binding < bindings[j].Binding
	})
	return bindings
}

// stripComments removes line and block comments from WGSL source.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

func stripLineComments(source string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// stripBlockComments removes /* ... */ comments, handling nesting as WGSL allows.
func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	i := 0
	for i < len(source) {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i += 2
				continue
			}
			if source[i] == '*' && source[i+1] == '/' {
				if depth > 0 {
					depth--
				}
				i += 2
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
		i++
	}
	return sb.String()
}
