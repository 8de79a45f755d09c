package acceptance

import (
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/eykd/spicy-go/bdd"
)

// UnboundSentinel is the statement that marks a scaffolded scenario method
// whose body has not been written yet.
const UnboundSentinel = `bdd.Pending("scenario not yet bound")`

// BDDImportPath is the import path of the bdd package.
const BDDImportPath = "github.com/eykd/spicy-go/bdd"

// DefaultPackage is the package clause of generated files.
const DefaultPackage = "acceptance_test"

// GenerateOptions controls the generated file.
type GenerateOptions struct {
	// Package is the package name; empty means DefaultPackage.
	Package string
	// Suite is the suite type name; empty derives it from the source file.
	Suite string
}

func (o GenerateOptions) withDefaults(f *Feature) GenerateOptions {
	if o.Package == "" {
		o.Package = DefaultPackage
	}
	if o.Suite == "" {
		o.Suite = SuiteName(f.SourceFile)
	}
	return o
}

// MethodName returns the scenario method for a description:
// "User can add an item." becomes "Scenario_user_can_add_an_item", which
// bdd.ScenarioName displays as "User Can Add An Item".
func MethodName(description string) string {
	words := identWords(description)
	if len(words) == 0 {
		return bdd.DefaultPrefix + "_unnamed"
	}
	return bdd.DefaultPrefix + "_" + strings.ToLower(strings.Join(words, "_"))
}

// SuiteName derives a suite type name from a spec path:
// "specs/US1-add-item.txt" becomes "US1AddItemSuite".
func SuiteName(sourcePath string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	var b strings.Builder
	for _, w := range identWords(base) {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	name := b.String()
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "Feature" + name
	}
	return name + "Suite"
}

func identWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func testFuncName(suite string) string {
	if name := strings.TrimSuffix(suite, "Suite"); name != "" {
		return "Test" + name
	}
	return "Test" + suite
}

// ExtractBoundScenarios returns the scenario methods of source that have
// been implemented, keyed by method name. Each value is the method's source
// text, including its doc comment. Methods still containing UnboundSentinel
// are left out.
func ExtractBoundScenarios(source string) (map[string]string, error) {
	bound := make(map[string]string)
	if strings.TrimSpace(source) == "" {
		return bound, nil
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse existing suite: %w", err)
	}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil || fn.Body == nil || !strings.HasPrefix(fn.Name.Name, bdd.DefaultPrefix) {
			continue
		}
		start := fn.Pos()
		if fn.Doc != nil {
			start = fn.Doc.Pos()
		}
		text := source[fset.Position(start).Offset:fset.Position(fn.End()).Offset]
		if strings.Contains(text, UnboundSentinel) {
			continue
		}
		bound[fn.Name.Name] = text
	}
	return bound, nil
}

// ExtractImports returns the import specs of source as they would be
// written in an import block, e.g. `"os"` or `yaml "gopkg.in/yaml.v3"`.
func ExtractImports(source string) ([]string, error) {
	if strings.TrimSpace(source) == "" {
		return nil, nil
	}
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", source, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("parse existing imports: %w", err)
	}
	var specs []string
	for _, imp := range file.Imports {
		spec := imp.Path.Value
		if imp.Name != nil {
			spec = imp.Name.Name + " " + spec
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// GenerateSuite renders feature as a Go test file: a suite type, a test
// function running it with bdd.Run, and one scenario method per scenario.
// Methods already implemented in existing are kept verbatim, along with
// its imports; implemented methods that no longer match a scenario are
// appended under a warning.
func GenerateSuite(feature *Feature, opts GenerateOptions, existing string) (string, error) {
	opts = opts.withDefaults(feature)
	bound, err := ExtractBoundScenarios(existing)
	if err != nil {
		return "", err
	}
	imports, err := ExtractImports(existing)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Scaffolded by spicy from %s; bound implementations are preserved.\n\n", feature.SourceFile)
	fmt.Fprintf(&b, "package %s\n", opts.Package)
	if len(feature.Scenarios) == 0 && len(bound) == 0 {
		return formatSource(b.String())
	}

	writeImports(&b, imports)
	fmt.Fprintf(&b, "\ntype %s struct{}\n\n", opts.Suite)
	fmt.Fprintf(&b, "func %s(t *testing.T) {\n\tbdd.Run(t, %s{})\n}\n", testFuncName(opts.Suite), opts.Suite)

	used := make(map[string]int)
	for _, sc := range feature.Scenarios {
		name := MethodName(sc.Description)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		b.WriteString("\n")
		if body, ok := bound[name]; ok {
			b.WriteString(body + "\n")
			delete(bound, name)
			continue
		}
		writeStub(&b, feature.SourceFile, opts.Suite, name, sc)
	}

	if len(bound) > 0 {
		fmt.Fprintf(&b, "\n// WARNING: the scenarios below are orphaned: they match no scenario in %s.\n", feature.SourceFile)
		for _, name := range slices.Sorted(maps.Keys(bound)) {
			b.WriteString("\n" + bound[name] + "\n")
		}
	}
	return formatSource(b.String())
}

func writeImports(b *strings.Builder, existing []string) {
	specs := map[string]bool{`"testing"`: true, strconv.Quote(BDDImportPath): true}
	for _, s := range existing {
		specs[s] = true
	}
	var std, other []string
	for s := range specs {
		path := s[strings.Index(s, `"`):]
		if first, _, _ := strings.Cut(strings.Trim(path, `"`), "/"); strings.Contains(first, ".") {
			other = append(other, s)
		} else {
			std = append(std, s)
		}
	}
	slices.Sort(std)
	slices.Sort(other)

	b.WriteString("\nimport (\n")
	for _, s := range std {
		b.WriteString("\t" + s + "\n")
	}
	if len(std) > 0 && len(other) > 0 {
		b.WriteString("\n")
	}
	for _, s := range other {
		b.WriteString("\t" + s + "\n")
	}
	b.WriteString(")\n")
}

func writeStub(b *strings.Builder, source, suite, name string, sc Scenario) {
	desc := sc.Description
	if desc == "" {
		desc = "(unnamed scenario)"
	}
	fmt.Fprintf(b, "// %s\n// Source: %s:%d\n", desc, source, sc.Line)
	fmt.Fprintf(b, "func (%s) %s(given *bdd.Given, when *bdd.When, then *bdd.Then) {\n", suite, name)
	for _, step := range sc.Steps {
		fmt.Fprintf(b, "\t// %s %s\n", step.Label(), step.Text)
	}
	if len(sc.Steps) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "\t%s\n}\n", UnboundSentinel)
}

func formatSource(src string) (string, error) {
	out, err := format.Source([]byte(src))
	if err != nil {
		return "", fmt.Errorf("format generated suite: %w", err)
	}
	return string(out), nil
}
