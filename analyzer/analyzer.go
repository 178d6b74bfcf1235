// Package analyzer runs loop and path extraction over Go packages as a
// go/analysis pass.
package analyzer

import (
	"go/ast"
	"go/token"
	"reflect"

	"go.uber.org/zap"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/gnolang/loopx/internal/driver"
	"github.com/gnolang/loopx/internal/frontend/gofront"
	"github.com/gnolang/loopx/internal/model"
	"github.com/gnolang/loopx/internal/syntax"
)

const doc = `loopx extracts the symbolic paths through loops and functions

It reports the constructs that extraction does not model, such as range
loops, switch statements and continue, and the functions whose extraction
failed. The result of the pass is the extracted program of every file.`

var Analyzer = &analysis.Analyzer{
	Name:       "loopx",
	Doc:        doc,
	Requires:   []*analysis.Analyzer{inspect.Analyzer},
	Run:        run,
	ResultType: reflect.TypeOf([]*model.Program(nil)),
}

// Logger receives the driver's logs. It is silent by default.
var Logger = zap.NewNop()

func run(pass *analysis.Pass) (any, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	var programs []*model.Program
	insp.Preorder([]ast.Node{(*ast.File)(nil)}, func(n ast.Node) {
		file := n.(*ast.File)
		if prog := extractFile(pass, file); prog != nil {
			programs = append(programs, prog)
		}
	})
	return programs, nil
}

func extractFile(pass *analysis.Pass, file *ast.File) *model.Program {
	tf := pass.Fset.File(file.Pos())
	if tf == nil {
		return nil
	}

	d := driver.New(Logger.With(zap.String("file", tf.Name())))
	prog, err := d.Extract(gofront.Lower(pass.Fset, file))

	for _, w := range d.Warnings() {
		msg := "unsupported " + w.Construct
		if w.Function != "" {
			msg += " in " + w.Function
		}
		pass.Report(analysis.Diagnostic{
			Pos:      position(tf, w.Pos, file.Package),
			Category: "unsupported",
			Message:  msg,
		})
	}
	if err != nil {
		pass.Report(analysis.Diagnostic{
			Pos:      file.Package,
			Category: "extraction",
			Message:  "extraction failed: " + err.Error(),
		})
		return nil
	}
	return prog
}

// position maps a line and column back into the file. Positions outside
// the file fall back to def.
func position(tf *token.File, pos syntax.Pos, def token.Pos) token.Pos {
	if !pos.IsValid() || pos.Line > tf.LineCount() {
		return def
	}
	p := tf.LineStart(pos.Line)
	if pos.Column > 1 {
		p += token.Pos(pos.Column - 1)
	}
	if int(p) > tf.Base()+tf.Size() {
		return def
	}
	return p
}
