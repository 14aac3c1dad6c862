package rootx

import (
	"fmt"
	"reflect"
	"strings"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
)

// Var describes a single plottable variable inside a tree. A branch with
// no sub-branches is one variable; a split branch contributes one variable
// per sub-branch.
type Var struct {
	Branch  string // top-level branch name
	Name    string // full variable name as stored in the tree
	Type    string // Go type of the stored value
	Numeric bool
}

// File wraps an open ROOT file.
type File struct {
	f *riofs.File
}

// Open opens a ROOT file for reading.
func Open(path string) (*File, error) {
	f, err := groot.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &File{f: f}, nil
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}

// Tree fetches a named TTree from the file.
func (f *File) Tree(name string) (rtree.Tree, error) {
	obj, err := f.f.Get(name)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", name, err)
	}
	t, ok := obj.(rtree.Tree)
	if !ok {
		return nil, fmt.Errorf("%q is a %T, not a TTree", name, obj)
	}
	return t, nil
}

// Vars lists the variables of a tree in branch order, expanding split
// branches into their sub-branches. Non-numeric variables (maps, strings)
// are included with Numeric=false so callers can report the skip.
func Vars(t rtree.Tree) []Var {
	types := varTypes(t)
	var out []Var
	for _, b := range t.Branches() {
		subs := b.Branches()
		if len(subs) == 0 {
			out = append(out, makeVar(b.Name(), b.Name(), types))
			continue
		}
		for _, sub := range subs {
			out = append(out, makeVar(b.Name(), sub.Name(), types))
		}
	}
	return out
}

// HasBranch reports whether the tree carries a top-level branch.
func HasBranch(t rtree.Tree, name string) bool {
	return t.Branch(name) != nil
}

// Columns reads the named variables from the tree in a single pass,
// returning each as a flat float64 column. Variable-length array values
// are flattened in entry order.
func Columns(t rtree.Tree, names []string) (map[string][]float64, error) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var sel []rtree.ReadVar
	for _, rv := range rtree.NewReadVars(t) {
		if want[rv.Name] {
			sel = append(sel, rv)
		}
	}
	cols := make(map[string][]float64, len(sel))
	if len(sel) == 0 {
		return cols, nil
	}

	r, err := rtree.NewReader(t, sel)
	if err != nil {
		return nil, fmt.Errorf("reader for %s: %w", t.Name(), err)
	}
	defer r.Close()

	err = r.Read(func(ctx rtree.RCtx) error {
		for _, rv := range sel {
			v := reflect.ValueOf(rv.Value).Elem()
			cols[rv.Name] = appendValues(cols[rv.Name], v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.Name(), err)
	}
	return cols, nil
}

// PlotName derives the output file stem for a variable: the leading
// "branch." is stripped and remaining dots become underscores.
func (v Var) PlotName() string {
	name := strings.TrimPrefix(v.Name, v.Branch+".")
	return strings.ReplaceAll(name, ".", "_")
}

func makeVar(branch, name string, types map[string]reflect.Type) Var {
	v := Var{Branch: branch, Name: name}
	if typ, ok := types[name]; ok {
		v.Type = typ.String()
		v.Numeric = numericType(typ)
	}
	return v
}

func varTypes(t rtree.Tree) map[string]reflect.Type {
	types := make(map[string]reflect.Type)
	for _, rv := range rtree.NewReadVars(t) {
		types[rv.Name] = reflect.TypeOf(rv.Value).Elem()
	}
	return types
}

func numericType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice, reflect.Array:
		return numericType(t.Elem())
	default:
		return false
	}
}

func appendValues(dst []float64, v reflect.Value) []float64 {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(dst, 1)
		}
		return append(dst, 0)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return append(dst, float64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return append(dst, float64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return append(dst, v.Float())
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			dst = appendValues(dst, v.Index(i))
		}
		return dst
	default:
		return dst
	}
}
