// Package noosexit запрещает завершать процесс напрямую из функции main пакета main:
// os.Exit и log.Fatal* обходят отложенные вызовы (Sync логгера, Shutdown сервера).
package noosexit

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "noosexit",
	Doc:      "запрещает прямой вызов os.Exit и log.Fatal* в функции main пакета main",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.FuncDecl)(nil)}, func(n ast.Node) {
		fn := n.(*ast.FuncDecl)
		if fn.Name.Name != "main" || fn.Recv != nil || fn.Body == nil {
			return
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			// замыкания внутри main выполняются не обязательно в main
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}
			if name, ok := forbidden(pass, call); ok {
				pass.Reportf(call.Pos(), "вызов %s в main запрещён, верните ошибку из run-функции", name)
			}
			return true
		})
	})
	return nil, nil
}

func forbidden(pass *analysis.Pass, call *ast.CallExpr) (string, bool) {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok {
		return "", false
	}
	fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
	if !ok || fn.Pkg() == nil {
		return "", false
	}

	switch path, name := fn.Pkg().Path(), fn.Name(); {
	case path == "os" && name == "Exit":
		return "os.Exit", true
	case path == "log" && strings.HasPrefix(name, "Fatal"):
		return "log." + name, true
	}
	return "", false
}
