package shaders

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed *.frag *.vert
var templateDir embed.FS

const (
	vertexTemplate   = "point.vert"
	fragmentTemplate = "point.frag"
)

// Kind selects one of the two fixed point programs.
type Kind int

const (
	// Flat takes bare positions through a 2x2 scale matrix and always
	// draws round points.
	Flat Kind = iota
	// Circle takes positions with a per-vertex alpha through a 3x3 affine
	// matrix and can switch between round and square points.
	Circle
)

func (k Kind) String() string {
	switch k {
	case Flat:
		return "flat"
	case Circle:
		return "circle"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "flat":
		return Flat, nil
	case "circle", "":
		return Circle, nil
	default:
		return 0, fmt.Errorf("unknown program %q, expected flat or circle", s)
	}
}

// ShaderData contains stuff that gets passed to the shader templates
type ShaderData struct {
	MatrixType   string
	Alpha        bool
	SquareToggle bool
}

func (k Kind) ShaderData() *ShaderData {
	switch k {
	case Flat:
		return &ShaderData{MatrixType: "mat2"}
	case Circle:
		return &ShaderData{MatrixType: "mat3", Alpha: true, SquareToggle: true}
	default:
		panic(fmt.Sprintf("unknown program %s", k))
	}
}

type Shaderer struct {
	templates *template.Template
}

func NewShaderer() (*Shaderer, error) {
	s := &Shaderer{}

	var err error

	s.templates, err = template.ParseFS(templateDir, "*.frag", "*.vert")

	return s, err
}

func (s *Shaderer) GetShaderSource(name string, data *ShaderData) (string, error) {
	var b bytes.Buffer
	err := s.templates.ExecuteTemplate(&b, name, data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template: %w", err)
	}

	return b.String(), nil
}

// Sources renders the vertex and fragment sources for kind.
func (s *Shaderer) Sources(kind Kind) (vertex string, fragment string, err error) {
	data := kind.ShaderData()
	vertex, err = s.GetShaderSource(vertexTemplate, data)
	if err != nil {
		return "", "", fmt.Errorf("could not get vertex shader: %w", err)
	}
	fragment, err = s.GetShaderSource(fragmentTemplate, data)
	if err != nil {
		return "", "", fmt.Errorf("could not get fragment shader: %w", err)
	}
	return vertex, fragment, nil
}

func (s *Shaderer) TemplateNames() []string {
	var names []string
	for _, t := range s.templates.Templates() {
		names = append(names, t.Name())
	}
	return names
}
