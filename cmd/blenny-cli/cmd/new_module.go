package cmd

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"log"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/go/ast/astutil"
)

var moduleName string

// newModuleCmd represents the new-module command
var newModuleCmd = &cobra.Command{
	Use:   "new-module",
	Short: "Scaffold a new application module",
	Long: `Creates a new module with boilerplate for a module definition and a
fragment-rendering handler, and registers it in internal/app/modules.go.`,
	Run: func(cmd *cobra.Command, args []string) {
		if moduleName == "" {
			log.Fatal("Module name is required: --name=<module-name>")
		}

		if err := generateModule(moduleName); err != nil {
			log.Fatalf("Failed to generate module: %v", err)
		}

		if err := updateModulesFile(moduleName); err != nil {
			log.Printf("Automatic registration failed: %v", err)
			printNextSteps(moduleName) // Fallback to printing instructions
			return
		}
		printSuccessMessage(moduleName)
	},
}

func init() {
	rootCmd.AddCommand(newModuleCmd)
	newModuleCmd.Flags().StringVarP(&moduleName, "name", "n", "", "The name of the new module (e.g., 'inventory')")
}

type TemplateData struct {
	Name       string
	PascalName string
}

func generateModule(name string) error {
	caser := cases.Title(language.English)
	data := TemplateData{
		Name:       name,
		PascalName: caser.String(name),
	}

	moduleDir := filepath.Join("internal", "modules", name)
	if err := os.MkdirAll(moduleDir, 0755); err != nil {
		return fmt.Errorf("failed to create module directory: %w", err)
	}

	if err := generateFile(filepath.Join(moduleDir, "module.go"), moduleTemplate, data); err != nil {
		return err
	}

	return generateFile(filepath.Join(moduleDir, "handler.go"), handlerTemplate, data)
}

func generateFile(path string, tmpl string, data TemplateData) error {
	t, err := template.New("").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// updateModulesFile adds the new module's import and constructor call to the
// NewModules slice in internal/app/modules.go.
func updateModulesFile(name string) error {
	modulesPath := "internal/app/modules.go"
	fset := token.NewFileSet()
	node, err := parser.ParseFile(fset, modulesPath, nil, parser.ParseComments)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", modulesPath, err)
	}

	newImportPath := fmt.Sprintf("github.com/mwhitaker/blenny/internal/modules/%s", name)
	astutil.AddImport(fset, node, newImportPath)

	ast.Inspect(node, func(n ast.Node) bool {
		fn, ok := n.(*ast.FuncDecl)
		if !ok || fn.Name.Name != "NewModules" {
			return true
		}

		ast.Inspect(fn.Body, func(n ast.Node) bool {
			ret, ok := n.(*ast.ReturnStmt)
			if !ok {
				return true
			}
			compLit, ok := ret.Results[0].(*ast.CompositeLit)
			if !ok {
				return false
			}

			// name.New(name.Dependencies{})
			newElement := &ast.CallExpr{
				Fun: &ast.SelectorExpr{X: ast.NewIdent(name), Sel: ast.NewIdent("New")},
				Args: []ast.Expr{
					&ast.CompositeLit{
						Type: &ast.SelectorExpr{X: ast.NewIdent(name), Sel: ast.NewIdent("Dependencies")},
					},
				},
			}
			compLit.Elts = append(compLit.Elts, newElement)
			return false
		})
		return false
	})

	return writeASTToFile(fset, node, modulesPath)
}

func printSuccessMessage(name string) {
	fmt.Printf("Created module '%s' in internal/modules/%s/\n", name, name)
	fmt.Println("Registered it in internal/app/modules.go.")
	fmt.Println()
	fmt.Println("Fill in the Dependencies struct as the module grows; the wiring")
	fmt.Println("lives in internal/app/modules.go and internal/app/dependencies.go.")
}

func printNextSteps(name string) {
	fmt.Printf("Created module '%s' in internal/modules/%s/\n\n", name, name)
	fmt.Println("Register it manually in internal/app/modules.go:")
	fmt.Printf(`
import "github.com/mwhitaker/blenny/internal/modules/%s"

// Add to the NewModules function's return slice:
%s.New(%s.Dependencies{}),
`, name, name, name)
}

func writeASTToFile(fset *token.FileSet, node *ast.File, filename string) error {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, node); err != nil {
		return fmt.Errorf("failed to format AST: %w", err)
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", filename, err)
	}
	return nil
}

const moduleTemplate = `package {{.Name}}

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/module"
	"github.com/mwhitaker/blenny/internal/registry"
)

// {{.PascalName}}Module implements the module.Module interface.
type {{.PascalName}}Module struct {
	module.BaseModule
}

// Dependencies holds all the services the module requires.
type Dependencies struct{}

// New creates a new instance of the module.
func New(deps Dependencies) *{{.PascalName}}Module {
	return &{{.PascalName}}Module{}
}

// Name returns the module's unique identifier.
func (m *{{.PascalName}}Module) Name() string {
	return "{{.Name}}"
}

// Boot wires the module's routes onto the authenticated group.
func (m *{{.PascalName}}Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting {{.Name}} module")

	handler := NewHandler()
	g.GET("/{{.Name}}", handler.Get)
	return nil
}
`

const handlerTemplate = `package {{.Name}}

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

// Handler manages the HTTP requests for the {{.Name}} module.
type Handler struct{}

// NewHandler creates a new handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Get renders the module's fragment.
func (h *Handler) Get(c echo.Context) error {
	return c.Render(http.StatusOK, "", region())
}

// region is the placeholder fragment to build on.
func region() gomponents.Node {
	return html.Div(
		html.Class("p-4"),
		gomponents.Text("Hello from the {{.Name}} module!"),
	)
}
`
