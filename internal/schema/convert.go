package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Wire types for the introspection response. Only the fields the renderer
// needs are decoded.

type introspectionResponse struct {
	Data   *introspectionData `json:"data"`
	Errors []graphqlError     `json:"errors"`
}

type introspectionData struct {
	Schema *introspectionSchema `json:"__schema"`
}

type introspectionSchema struct {
	QueryType        *typeRef   `json:"queryType"`
	MutationType     *typeRef   `json:"mutationType"`
	SubscriptionType *typeRef   `json:"subscriptionType"`
	Types            []fullType `json:"types"`
}

type typeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name"`
	OfType *typeRef `json:"ofType"`
}

type fullType struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Fields        []fieldDef   `json:"fields"`
	InputFields   []inputValue `json:"inputFields"`
	Interfaces    []typeRef    `json:"interfaces"`
	EnumValues    []enumValue  `json:"enumValues"`
	PossibleTypes []typeRef    `json:"possibleTypes"`
}

type fieldDef struct {
	Name              string       `json:"name"`
	Description       string       `json:"description"`
	Args              []inputValue `json:"args"`
	Type              typeRef      `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason string       `json:"deprecationReason"`
}

type inputValue struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Type         typeRef `json:"type"`
	DefaultValue *string `json:"defaultValue"`
}

type enumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

// builtinScalars ship with every GraphQL server and are not re-declared.
var builtinScalars = map[string]bool{
	"String": true, "Int": true, "Float": true, "Boolean": true, "ID": true,
}

// RenderSDL converts an introspection result into SDL text. Root operation
// types come first, then the remaining definitions alphabetically, so the
// cached document is stable across fetches of an unchanged schema.
// Descriptions are emitted as "#" comment lines, which the line scanner
// already knows to skip.
func RenderSDL(s *introspectionSchema) string {
	rootNames := map[string]int{}
	if s.QueryType != nil && s.QueryType.Name != "" {
		rootNames[s.QueryType.Name] = 0
	}
	if s.MutationType != nil && s.MutationType.Name != "" {
		rootNames[s.MutationType.Name] = 1
	}
	if s.SubscriptionType != nil && s.SubscriptionType.Name != "" {
		rootNames[s.SubscriptionType.Name] = 2
	}

	types := make([]fullType, 0, len(s.Types))
	for _, t := range s.Types {
		if t.Name == "" || strings.HasPrefix(t.Name, "__") {
			continue
		}
		if t.Kind == "SCALAR" && builtinScalars[t.Name] {
			continue
		}
		types = append(types, t)
	}

	sort.SliceStable(types, func(i, j int) bool {
		ri, iRoot := rootNames[types[i].Name]
		rj, jRoot := rootNames[types[j].Name]
		switch {
		case iRoot && jRoot:
			return ri < rj
		case iRoot:
			return true
		case jRoot:
			return false
		default:
			return types[i].Name < types[j].Name
		}
	})

	var b strings.Builder
	for i, t := range types {
		block := renderType(t)
		if block == "" {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(block)
	}
	return b.String()
}

// renderType renders one named definition, or "" for unsupported kinds.
func renderType(t fullType) string {
	var b strings.Builder
	writeDescription(&b, t.Description, "")

	switch t.Kind {
	case "OBJECT":
		b.WriteString("type " + t.Name + implementsClause(t.Interfaces) + " {\n")
		for _, f := range t.Fields {
			writeField(&b, f)
		}
		b.WriteString("}\n")
	case "INTERFACE":
		b.WriteString("interface " + t.Name + " {\n")
		for _, f := range t.Fields {
			writeField(&b, f)
		}
		b.WriteString("}\n")
	case "INPUT_OBJECT":
		b.WriteString("input " + t.Name + " {\n")
		for _, f := range t.InputFields {
			writeDescription(&b, f.Description, "  ")
			b.WriteString("  " + renderInputValue(f) + "\n")
		}
		b.WriteString("}\n")
	case "ENUM":
		b.WriteString("enum " + t.Name + " {\n")
		for _, v := range t.EnumValues {
			writeDescription(&b, v.Description, "  ")
			b.WriteString("  " + v.Name + deprecation(v.IsDeprecated, v.DeprecationReason) + "\n")
		}
		b.WriteString("}\n")
	case "UNION":
		members := make([]string, 0, len(t.PossibleTypes))
		for _, p := range t.PossibleTypes {
			members = append(members, p.Name)
		}
		b.WriteString("union " + t.Name + " = " + strings.Join(members, " | ") + "\n")
	case "SCALAR":
		b.WriteString("scalar " + t.Name + "\n")
	default:
		return ""
	}
	return b.String()
}

// writeField renders one object/interface field line.
func writeField(b *strings.Builder, f fieldDef) {
	writeDescription(b, f.Description, "  ")
	b.WriteString("  " + f.Name)
	if len(f.Args) > 0 {
		args := make([]string, len(f.Args))
		for i, a := range f.Args {
			args[i] = renderInputValue(a)
		}
		b.WriteString("(" + strings.Join(args, ", ") + ")")
	}
	b.WriteString(": " + renderTypeRef(&f.Type))
	b.WriteString(deprecation(f.IsDeprecated, f.DeprecationReason))
	b.WriteString("\n")
}

// renderInputValue renders "name: Type" with an optional default.
func renderInputValue(v inputValue) string {
	s := v.Name + ": " + renderTypeRef(&v.Type)
	if v.DefaultValue != nil {
		s += " = " + *v.DefaultValue
	}
	return s
}

// renderTypeRef unwraps NON_NULL/LIST wrappers into SDL type syntax.
func renderTypeRef(t *typeRef) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case "NON_NULL":
		return renderTypeRef(t.OfType) + "!"
	case "LIST":
		return "[" + renderTypeRef(t.OfType) + "]"
	default:
		return t.Name
	}
}

// implementsClause renders " implements A & B" or "".
func implementsClause(interfaces []typeRef) string {
	if len(interfaces) == 0 {
		return ""
	}
	names := make([]string, len(interfaces))
	for i, iface := range interfaces {
		names[i] = iface.Name
	}
	return " implements " + strings.Join(names, " & ")
}

// deprecation renders a @deprecated directive when applicable.
func deprecation(deprecated bool, reason string) string {
	if !deprecated {
		return ""
	}
	if reason == "" {
		return " @deprecated"
	}
	return fmt.Sprintf(" @deprecated(reason: %q)", reason)
}

// writeDescription emits a description as indented comment lines.
func writeDescription(b *strings.Builder, desc, indent string) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return
	}
	for _, line := range strings.Split(desc, "\n") {
		b.WriteString(indent + "# " + strings.TrimRight(line, " \t") + "\n")
	}
}
