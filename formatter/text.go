package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

const indentUnit = "  "

var (
	fileStyle    = color.New(color.FgCyan, color.Bold)
	funcStyle    = color.New(color.FgHiBlue, color.Bold)
	nameStyle    = color.New(color.FgYellow, color.Bold)
	guardStyle   = color.New(color.FgGreen)
	returnStyle  = color.New(color.FgMagenta, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	labelStyle   = color.New(color.FgWhite)
)

// Text renders documents in the human readable format.
func Text(w io.Writer, docs []*Document) error {
	var b strings.Builder
	for i, doc := range docs {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeDocument(&b, doc)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDocument(b *strings.Builder, doc *Document) {
	fmt.Fprintf(b, "%s %s\n", fileStyle.Sprint("program"), doc.File)
	if len(doc.Globals) > 0 {
		writeVariables(b, 1, "globals", doc.Globals)
	}
	for _, fn := range doc.Functions {
		writeFunction(b, fn)
	}
	for _, w := range doc.Warnings {
		fmt.Fprintf(b, "%s %s\n", warningStyle.Sprint("warning:"), w)
	}
}

func writeFunction(b *strings.Builder, fn Function) {
	fmt.Fprintf(b, "%s %s(%s)\n", funcStyle.Sprint("function"), fn.Name, strings.Join(fn.Parameters, ", "))
	if len(fn.Variables) > 0 {
		writeVariables(b, 1, "variables", fn.Variables)
	}
	for _, blk := range fn.Blocks {
		fmt.Fprintf(b, "%s%s %s\n", indent(1), labelStyle.Sprint("block"), nameStyle.Sprint(blk.Name))
		writeBindings(b, 2, blk.Bindings)
	}
	for _, l := range fn.Loops {
		writeLoop(b, 1, l)
	}
	for _, p := range fn.Paths {
		fmt.Fprintf(b, "%s%s %s %s", indent(1), labelStyle.Sprint("path"), nameStyle.Sprint(p.Name), guardStyle.Sprintf("[%s]", p.Guard))
		if len(p.Steps) > 0 {
			fmt.Fprintf(b, ": %s", strings.Join(p.Steps, " -> "))
		}
		if p.Returns {
			value := p.Return
			if value == "" {
				value = "void"
			}
			fmt.Fprintf(b, " %s %s", returnStyle.Sprint("return"), value)
		}
		b.WriteByte('\n')
	}
}

func writeLoop(b *strings.Builder, depth int, l Loop) {
	if l.Ref {
		fmt.Fprintf(b, "%s%s %s (see above)\n", indent(depth), labelStyle.Sprint("loop"), nameStyle.Sprint(l.Name))
		return
	}
	fmt.Fprintf(b, "%s%s %s\n", indent(depth), labelStyle.Sprint("loop"), nameStyle.Sprint(l.Name))
	if len(l.Locals) > 0 {
		writeVariables(b, depth+1, "locals", l.Locals)
	}
	for _, p := range l.Paths {
		fmt.Fprintf(b, "%s%s %s", indent(depth+1), labelStyle.Sprint("path"), guardStyle.Sprintf("[%s]", p.Guard))
		if p.Break {
			b.WriteString(" exits")
		}
		b.WriteByte('\n')
		writeBindings(b, depth+2, p.Bindings)
		if len(p.InnerLoops) > 0 {
			fmt.Fprintf(b, "%sinner: %s\n", indent(depth+2), strings.Join(p.InnerLoops, ", "))
		}
	}
	for _, inner := range l.InnerLoops {
		writeLoop(b, depth+1, inner)
	}
}

func writeVariables(b *strings.Builder, depth int, label string, vars []Variable) {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = declaration(v)
	}
	fmt.Fprintf(b, "%s%s: %s\n", indent(depth), labelStyle.Sprint(label), strings.Join(parts, ", "))
}

func writeBindings(b *strings.Builder, depth int, vars []Variable) {
	for _, v := range vars {
		fmt.Fprintf(b, "%s%s = %s\n", indent(depth), v.Name, v.Value)
	}
}

// declaration renders "name: type = init", omitting what is unknown.
func declaration(v Variable) string {
	s := v.Name
	if v.Type != "" {
		s += ": " + v.Type
	}
	if v.Init != "" {
		s += " = " + v.Init
	}
	if v.Value != v.Init && v.Value != "" {
		s += " -> " + v.Value
	}
	return s
}

func indent(depth int) string {
	return strings.Repeat(indentUnit, depth)
}
