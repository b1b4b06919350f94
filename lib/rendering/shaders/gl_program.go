package shaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fosdem/pointsprite/lib/gpu"
	"github.com/fosdem/pointsprite/lib/log"
	"github.com/fosdem/pointsprite/lib/metrics"
)

var logger = log.Module("shaders")

// InitError reports a shader that failed to compile or a program that failed
// to link. Log is the driver's info log.
type InitError struct {
	Kind  Kind
	Stage string
	Log   string
}

func (e *InitError) Error() string {
	if e.Stage == "link" {
		return fmt.Sprintf("failed to link %s program: %s", e.Kind, e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader of %s program: %s", e.Stage, e.Kind, e.Log)
}

// Program is a linked shader program together with its two stages.
type Program struct {
	gl gpu.GL

	Kind     Kind
	ID       uint32
	Vertex   uint32
	Fragment uint32

	released bool
}

func BuildProgram(gl gpu.GL, kind Kind) (*Program, error) {
	shaderer, err := NewShaderer()
	if err != nil {
		return nil, fmt.Errorf("could not get shaders: %w", err)
	}

	vertexSource, fragmentSource, err := shaderer.Sources(kind)
	if err != nil {
		return nil, err
	}

	program, err := newProgram(gl, kind, vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("could not init shader: %w", err)
	}
	logger.Debug(fmt.Sprintf("built %s program %d", kind, program.ID))

	return program, nil
}

func newProgram(gl gpu.GL, kind Kind, vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := compileShader(gl, kind, vertexSource, gpu.VertexShader)
	if err != nil {
		return nil, err
	}

	fragmentShader, err := compileShader(gl, kind, fragmentSource, gpu.FragmentShader)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}

	program := gl.CreateProgram()
	ok, logmsg := gl.LinkProgram(program, vertexShader, fragmentShader)
	if !ok {
		gl.DeleteProgram(program)
		gl.DeleteShader(vertexShader)
		gl.DeleteShader(fragmentShader)
		metrics.ShaderBuildFailures.WithLabelValues("link").Inc()
		return nil, &InitError{Kind: kind, Stage: "link", Log: logmsg}
	}
	gpu.Check(gl, "LinkProgram")

	return &Program{
		gl:       gl,
		Kind:     kind,
		ID:       program,
		Vertex:   vertexShader,
		Fragment: fragmentShader,
	}, nil
}

func compileShader(gl gpu.GL, kind Kind, source string, stage gpu.ShaderStage) (uint32, error) {
	shader := gl.CreateShader(stage)

	ok, clog := gl.CompileShader(shader, source)
	if !ok {
		gl.DeleteShader(shader)
		metrics.ShaderBuildFailures.WithLabelValues(stage.String()).Inc()
		return 0, &InitError{Kind: kind, Stage: stage.String(), Log: clog}
	}
	gpu.Check(gl, "CompileShader")

	return shader, nil
}

// Release deletes the program and both shaders. Calling it again does
// nothing.
func (p *Program) Release() {
	if p.released {
		return
	}
	p.released = true
	p.gl.DeleteProgram(p.ID)
	p.gl.DeleteShader(p.Fragment)
	p.gl.DeleteShader(p.Vertex)
}

func (p *Program) Released() bool {
	return p.released
}

// DumpSources writes the rendered sources of kind into dir, for poking at
// them with glslangValidator and friends.
func DumpSources(dir string, kind Kind) error {
	shaderer, err := NewShaderer()
	if err != nil {
		return fmt.Errorf("could not get shaders: %w", err)
	}
	vertexSource, fragmentSource, err := shaderer.Sources(kind)
	if err != nil {
		return err
	}

	err = os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", dir, err)
	}
	for name, content := range map[string]string{
		kind.String() + ".vert": vertexSource,
		kind.String() + ".frag": fragmentSource,
	} {
		err = writeFileDebug(filepath.Join(dir, name), content)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFileDebug(filename string, content string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create debug file %s: %w", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			logger.Warn("could not close debug file", "file", filename, "err", err)
		}
	}(f)

	_, err = fmt.Fprintf(f, "%s", content)
	if err != nil {
		return fmt.Errorf("could not write to debug file %s: %w", filename, err)
	}
	return nil
}
