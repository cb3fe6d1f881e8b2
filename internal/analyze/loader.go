package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/tools/go/packages"

	"authoring-kit/internal/diagnostic"
	"authoring-kit/internal/kinds"
	"authoring-kit/internal/meta"
	"authoring-kit/internal/source"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and turns their struct types into classes.
type Analyzer struct {
	tagKey   string
	catalog  *meta.Catalog
	sink     diagnostic.Sink
	logger   *log.Logger
	stringer *TypeStringer

	packages   map[string]*packages.Package
	typeDocs   map[TypeID]*ast.CommentGroup
	methodDocs map[TypeID]map[string]*ast.CommentGroup
	classes    map[TypeID]*source.Class
	order      []*source.Class
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTagKey sets the struct tag key and directive prefix.
func WithTagKey(key string) Option {
	return func(a *Analyzer) {
		if key != "" {
			a.tagKey = key
		}
	}
}

// WithSink sets the sink receiving descriptor problems.
func WithSink(sink diagnostic.Sink) Option {
	return func(a *Analyzer) { a.sink = sink }
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithCatalog sets the catalog descriptor kinds are looked up in.
func WithCatalog(c *meta.Catalog) Option {
	return func(a *Analyzer) { a.catalog = c }
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		tagKey:     DefaultTagKey,
		sink:       diagnostic.Discard,
		packages:   make(map[string]*packages.Package),
		typeDocs:   make(map[TypeID]*ast.CommentGroup),
		methodDocs: make(map[TypeID]map[string]*ast.CommentGroup),
		classes:    make(map[TypeID]*source.Class),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.catalog == nil {
		a.catalog = kinds.DefaultCatalog()
	}

	if a.logger == nil {
		a.logger = log.Default()
	}

	a.stringer = NewTypeStringer(a.isLoaded)

	return a
}

// LoadPackages loads the specified packages and returns their classes.
// Patterns are standard Go package patterns (e.g., "./sample", "authoring-kit/sample").
func (a *Analyzer) LoadPackages(patterns ...string) ([]*source.Class, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	for _, pkg := range pkgs {
		a.packages[pkg.PkgPath] = pkg
		a.indexDocs(pkg)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.Classes(), nil
}

// Classes returns every class built so far in creation order.
func (a *Analyzer) Classes() []*source.Class {
	return append([]*source.Class(nil), a.order...)
}

// Class returns a class by simple or qualified name.
func (a *Analyzer) Class(name string) *source.Class {
	for _, c := range a.order {
		if c.Name() == name || c.QualifiedName() == name {
			return c
		}
	}

	return nil
}

func (a *Analyzer) isLoaded(pkgPath string) bool {
	_, ok := a.packages[pkgPath]
	return ok
}

// indexDocs records the doc comments of type and method declarations.
func (a *Analyzer) indexDocs(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					continue
				}

				for _, spec := range d.Specs {
					ts := spec.(*ast.TypeSpec)

					doc := ts.Doc
					if doc == nil && len(d.Specs) == 1 {
						doc = d.Doc
					}

					a.typeDocs[TypeID{PkgPath: pkg.PkgPath, Name: ts.Name.Name}] = doc
				}
			case *ast.FuncDecl:
				recv := receiverName(d)
				if recv == "" || d.Doc == nil {
					continue
				}

				id := TypeID{PkgPath: pkg.PkgPath, Name: recv}
				if a.methodDocs[id] == nil {
					a.methodDocs[id] = make(map[string]*ast.CommentGroup)
				}

				a.methodDocs[id][d.Name.Name] = d.Doc
			}
		}
	}
}

func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}

	expr := fd.Recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

func commentLines(cg *ast.CommentGroup) []string {
	if cg == nil {
		return nil
	}

	lines := make([]string, len(cg.List))
	for i, c := range cg.List {
		lines[i] = c.Text
	}

	return lines
}

// processPackage builds a class for every exported struct type.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		if _, ok := named.Underlying().(*types.Struct); ok {
			a.classFor(named)
		}
	}
}

// classFor returns the class of a named struct, building it on first use.
// The first embedded struct of a loaded package becomes the parent.
func (a *Analyzer) classFor(named *types.Named) *source.Class {
	id := idOf(named)
	if cls, ok := a.classes[id]; ok {
		return cls
	}

	st := named.Underlying().(*types.Struct)

	var parent *source.Class

	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		if n := ElemStruct(f.Type()); n != nil && a.isLocal(n) {
			parent = a.classFor(n)
			break
		}
	}

	dirs, err := CommentDirectives(a.tagKey, commentLines(a.typeDocs[id]))
	if err != nil {
		a.report(id.Name, "", err)
	}

	cls := source.NewClass(id.Name, parent, a.Descriptors(dirs, id.Name, "")...)
	cls.SetPackage(id.PkgPath)

	a.classes[id] = cls
	a.order = append(a.order, cls)

	a.addFields(cls, st)
	a.addMethods(cls, named)

	parentName := ""
	if parent != nil {
		parentName = parent.Name()
	}

	a.logger.Debug("class", "name", cls.QualifiedName(), "parent", parentName, "members", len(cls.Members()),
		"kinds", source.KindsOf(cls))

	return cls
}

func (a *Analyzer) isLocal(named *types.Named) bool {
	pkg := named.Obj().Pkg()
	return pkg != nil && a.isLoaded(pkg.Path())
}

func (a *Analyzer) addFields(cls *source.Class, st *types.Struct) {
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Exported() || f.Embedded() {
			continue
		}

		var dirs []Directive

		if tag, ok := reflect.StructTag(st.Tag(i)).Lookup(a.tagKey); ok {
			var err error
			if dirs, err = ParseDirectives(tag); err != nil {
				a.report(cls.Name(), f.Name(), err)
			}
		}

		m := source.NewMember(f.Name(), source.KindField, a.stringer.TypeString(f.Type()),
			a.Descriptors(dirs, cls.Name(), f.Name())...)

		if n := ElemStruct(f.Type()); n != nil && a.isLocal(n) {
			m.SetValueClass(a.classFor(n))
		}

		cls.AddMember(m)
	}
}

// addMethods adds exported methods carrying at least one directive, in
// source order. The first result is the member value type.
func (a *Analyzer) addMethods(cls *source.Class, named *types.Named) {
	docs := a.methodDocs[idOf(named)]
	if len(docs) == 0 {
		return
	}

	var fns []*types.Func

	for i := range named.NumMethods() {
		if fn := named.Method(i); fn.Exported() && docs[fn.Name()] != nil {
			fns = append(fns, fn)
		}
	}

	sort.SliceStable(fns, func(i, j int) bool { return fns[i].Pos() < fns[j].Pos() })

	for _, fn := range fns {
		dirs, err := CommentDirectives(a.tagKey, commentLines(docs[fn.Name()]))
		if err != nil {
			a.report(cls.Name(), fn.Name(), err)
		}

		if len(dirs) == 0 {
			continue
		}

		var result types.Type

		if sig, ok := fn.Type().(*types.Signature); ok && sig.Results().Len() > 0 {
			result = sig.Results().At(0).Type()
		}

		valueType := ""
		if result != nil {
			valueType = a.stringer.TypeString(result)
		}

		m := source.NewMember(fn.Name(), source.KindMethod, valueType, a.Descriptors(dirs, cls.Name(), fn.Name())...)

		if result != nil {
			if n := ElemStruct(result); n != nil && a.isLocal(n) {
				m.SetValueClass(a.classFor(n))
			}
		}

		cls.AddMember(m)
	}
}

func (a *Analyzer) report(class, member string, err error) {
	a.sink.Handle(diagnostic.NewLayoutError(diagnostic.CodeInvalidDescriptor, class, member, "%v", err))
}
