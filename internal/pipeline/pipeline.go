package pipeline

import (
	"github.com/ucodekit/ucls/internal/analyzer"
	"github.com/ucodekit/ucls/internal/ast"
	"github.com/ucodekit/ucls/internal/config"
	"github.com/ucodekit/ucls/internal/diagnostics"
	"github.com/ucodekit/ucls/internal/modules"
	"github.com/ucodekit/ucls/internal/parser"
	"github.com/ucodekit/ucls/internal/symbols"
	ts "github.com/ucodekit/ucls/internal/typesystem"
)

// Context carries one source file through the processing stages and
// accumulates their results. Diagnostics from every stage land in the same
// deduplicating set so consumers see parse and semantic findings together.
type Context struct {
	Source   string
	FilePath string

	Program     *ast.Program
	Diagnostics *diagnostics.Set
	Table       *symbols.SymbolTable
	TypeMap     map[ast.Node]ts.Type
}

// NewContext creates a context for the given source text.
func NewContext(source string) *Context {
	return &Context{
		Source:      source,
		Diagnostics: diagnostics.NewSet(),
	}
}

// Report returns every accumulated diagnostic in position order.
func (c *Context) Report() []diagnostics.Diagnostic {
	return c.Diagnostics.Items()
}

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Context) HasErrors() bool {
	for _, d := range c.Diagnostics.Items() {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}

// Processor is one processing stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the stages in order. Stages run even after earlier ones
// reported errors, so a file with a parse error still yields semantic
// diagnostics for the statements that did parse.
func (p *Pipeline) Run(ctx *Context) *Context {
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}

// ParseProcessor tokenizes and parses the source into ctx.Program.
type ParseProcessor struct{}

func (ParseProcessor) Process(ctx *Context) *Context {
	p := parser.New(ctx.Source)
	ctx.Program = p.ParseProgram()
	ctx.Diagnostics.AddAll(p.Errors())
	return ctx
}

// AnalyzeProcessor runs semantic analysis over ctx.Program.
type AnalyzeProcessor struct {
	Registry *modules.Registry
	Config   *config.Config
}

func (a AnalyzeProcessor) Process(ctx *Context) *Context {
	if ctx.Program == nil {
		return ctx
	}
	res := analyzer.New(a.Registry, a.Config).Analyze(ctx.Program)
	ctx.Diagnostics.AddAll(res.Diagnostics)
	ctx.Table = res.SymbolTable
	ctx.TypeMap = res.TypeMap
	return ctx
}

// Analyze runs the standard parse-then-analyze pipeline over source. This is
// the single entry point shared by the CLI and the language server.
func Analyze(source string, registry *modules.Registry, cfg *config.Config) *Context {
	ctx := NewContext(source)
	return New(
		ParseProcessor{},
		AnalyzeProcessor{Registry: registry, Config: cfg},
	).Run(ctx)
}
