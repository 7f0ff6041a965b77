package schema

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestRenderSDL_ObjectType(t *testing.T) {
	s := &introspectionSchema{
		QueryType: &typeRef{Name: "Query"},
		Types: []fullType{
			{
				Kind: "OBJECT",
				Name: "Patient",
				Fields: []fieldDef{
					{Name: "id", Type: typeRef{Kind: "NON_NULL", OfType: &typeRef{Kind: "SCALAR", Name: "ID"}}},
					{Name: "name", Type: typeRef{Kind: "SCALAR", Name: "String"}},
					{
						Name: "visits",
						Type: typeRef{Kind: "NON_NULL", OfType: &typeRef{
							Kind: "LIST",
							OfType: &typeRef{Kind: "NON_NULL", OfType: &typeRef{Kind: "OBJECT", Name: "Visit"}},
						}},
					},
				},
				Interfaces: []typeRef{{Kind: "INTERFACE", Name: "Node"}},
			},
			{
				Kind: "OBJECT",
				Name: "Query",
				Fields: []fieldDef{
					{
						Name: "patient",
						Args: []inputValue{
							{Name: "id", Type: typeRef{Kind: "NON_NULL", OfType: &typeRef{Kind: "SCALAR", Name: "ID"}}},
						},
						Type: typeRef{Kind: "OBJECT", Name: "Patient"},
					},
				},
			},
		},
	}

	sdlText := RenderSDL(s)

	if !strings.Contains(sdlText, "type Patient implements Node {") {
		t.Errorf("missing implements clause:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, "  id: ID!") {
		t.Errorf("missing non-null field:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, "  visits: [Visit!]!") {
		t.Errorf("missing list rendering:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, "  patient(id: ID!): Patient") {
		t.Errorf("missing field args:\n%s", sdlText)
	}
	// Root operation type renders before other definitions
	if strings.Index(sdlText, "type Query") > strings.Index(sdlText, "type Patient") {
		t.Errorf("Query should render first:\n%s", sdlText)
	}
}

func TestRenderSDL_InputEnumUnionScalar(t *testing.T) {
	s := &introspectionSchema{
		Types: []fullType{
			{
				Kind: "INPUT_OBJECT",
				Name: "PatientCreateInput",
				InputFields: []inputValue{
					{Name: "name", Type: typeRef{Kind: "NON_NULL", OfType: &typeRef{Kind: "SCALAR", Name: "String"}}},
					{Name: "limit", Type: typeRef{Kind: "SCALAR", Name: "Int"}, DefaultValue: strPtr("10")},
				},
			},
			{
				Kind: "ENUM",
				Name: "Gender",
				EnumValues: []enumValue{
					{Name: "MALE"},
					{Name: "UNKNOWN", IsDeprecated: true, DeprecationReason: "use OTHER"},
				},
			},
			{
				Kind:          "UNION",
				Name:          "SearchResult",
				PossibleTypes: []typeRef{{Name: "Patient"}, {Name: "Practitioner"}},
			},
			{Kind: "SCALAR", Name: "DateTime"},
		},
	}

	sdlText := RenderSDL(s)

	if !strings.Contains(sdlText, "input PatientCreateInput {") {
		t.Errorf("missing input block:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, "  limit: Int = 10") {
		t.Errorf("missing default value:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, `  UNKNOWN @deprecated(reason: "use OTHER")`) {
		t.Errorf("missing deprecation:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, "union SearchResult = Patient | Practitioner") {
		t.Errorf("missing union:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, "scalar DateTime") {
		t.Errorf("missing scalar:\n%s", sdlText)
	}
}

func TestRenderSDL_SkipsIntrospectionTypes(t *testing.T) {
	s := &introspectionSchema{
		Types: []fullType{
			{Kind: "OBJECT", Name: "__Schema"},
			{Kind: "SCALAR", Name: "Boolean"},
			{Kind: "SCALAR", Name: "DateTime"},
		},
	}

	sdlText := RenderSDL(s)
	if strings.Contains(sdlText, "__Schema") {
		t.Error("introspection meta-types should be skipped")
	}
	if strings.Contains(sdlText, "scalar Boolean") {
		t.Error("built-in scalars should be skipped")
	}
	if !strings.Contains(sdlText, "scalar DateTime") {
		t.Error("custom scalars should be kept")
	}
}

func TestRenderSDL_DescriptionsAsComments(t *testing.T) {
	s := &introspectionSchema{
		Types: []fullType{
			{
				Kind:        "OBJECT",
				Name:        "Patient",
				Description: "A person receiving care.",
				Fields: []fieldDef{
					{Name: "id", Description: "Stable identifier.", Type: typeRef{Kind: "SCALAR", Name: "ID"}},
				},
			},
		},
	}

	sdlText := RenderSDL(s)
	if !strings.Contains(sdlText, "# A person receiving care.\ntype Patient {") {
		t.Errorf("missing type description comment:\n%s", sdlText)
	}
	if !strings.Contains(sdlText, "  # Stable identifier.\n  id: ID") {
		t.Errorf("missing field description comment:\n%s", sdlText)
	}
}

func TestRenderSDL_StableOrdering(t *testing.T) {
	s := &introspectionSchema{
		Types: []fullType{
			{Kind: "SCALAR", Name: "Zebra"},
			{Kind: "SCALAR", Name: "Alpha"},
		},
	}

	sdlText := RenderSDL(s)
	if strings.Index(sdlText, "Alpha") > strings.Index(sdlText, "Zebra") {
		t.Errorf("definitions should sort alphabetically:\n%s", sdlText)
	}
}
