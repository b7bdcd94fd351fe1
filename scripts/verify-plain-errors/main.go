// Command verify-plain-errors fails when HTTP handlers bypass the shared
// response writers in internal/api/errors.go: every error body must carry
// the same text/plain headers, and every document its declared content type.
//
//	go run ./scripts/verify-plain-errors [pattern]
//
// The default pattern covers the document handlers only; middleware writes
// its own fixed plain-text responses.
package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// writersFile is the only file allowed to set response headers directly.
const writersFile = "errors.go"

func main() {
	pattern := "./internal/api"
	if len(os.Args) > 1 {
		pattern = os.Args[1]
	}

	violations, err := Analyze(pattern)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}
	if len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "response writer violations found:")
		for _, v := range violations {
			fmt.Fprintln(os.Stderr, v)
		}
		os.Exit(1)
	}
}

// Analyze loads pattern and reports calls to net/http.Error and literal
// "Content-Type" header names outside the writers file.
func Analyze(pattern string) ([]string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedFiles | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedName,
		Dir:  ".",
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		for i, file := range pkg.Syntax {
			if i >= len(pkg.CompiledGoFiles) {
				continue
			}
			filename := pkg.CompiledGoFiles[i]
			if strings.HasSuffix(filename, "_test.go") || filepath.Base(filename) == writersFile {
				continue
			}

			ast.Inspect(file, func(n ast.Node) bool {
				switch node := n.(type) {
				case *ast.BasicLit:
					if node.Kind != token.STRING {
						return true
					}
					if val, _ := strconv.Unquote(node.Value); strings.EqualFold(val, "Content-Type") {
						violations = append(violations, formatViolation(pkg.Fset, node.Pos(), "direct Content-Type header (use writeText or writeDocument)"))
					}
				case *ast.SelectorExpr:
					if isHTTPError(node, pkg.TypesInfo) {
						violations = append(violations, formatViolation(pkg.Fset, node.Pos(), "http.Error call (use writeText)"))
					}
				}
				return true
			})
		}
	}
	return violations, nil
}

func formatViolation(fset *token.FileSet, pos token.Pos, msg string) string {
	p := fset.Position(pos)
	filename := p.Filename
	if rel, err := filepath.Rel(".", filename); err == nil {
		filename = rel
	}
	return fmt.Sprintf("%s:%d: %s", filename, p.Line, msg)
}

func isHTTPError(sel *ast.SelectorExpr, info *types.Info) bool {
	if info == nil {
		return false
	}
	obj := info.ObjectOf(sel.Sel)
	if obj == nil || obj.Pkg() == nil {
		return false
	}
	_, isFunc := obj.(*types.Func)
	return isFunc && obj.Pkg().Path() == "net/http" && obj.Name() == "Error"
}
