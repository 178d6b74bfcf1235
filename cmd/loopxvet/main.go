// Command loopxvet reports the constructs loop extraction does not model.
// It can be run directly or through go vet -vettool.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/gnolang/loopx/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
