package rootx

import (
	"fmt"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, path string, nbranches, nentries int, seed int64) {
	t.Helper()
	if err := WriteRandomTree(path, "tree", nbranches, nentries, seed); err != nil {
		t.Fatalf("WriteRandomTree: %v", err)
	}
}

func TestWriteAndReadRandomTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.root")
	writeTree(t, path, 3, 25, 42)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	tree, err := f.Tree("tree")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if got := tree.Entries(); got != 25 {
		t.Fatalf("expected 25 entries, got %d", got)
	}

	vars := Vars(tree)
	if len(vars) != 3 {
		t.Fatalf("expected 3 vars, got %d: %+v", len(vars), vars)
	}
	for i, v := range vars {
		want := fmt.Sprintf("branch%d", i)
		if v.Name != want {
			t.Fatalf("var %d: expected name %q, got %q", i, want, v.Name)
		}
		if !v.Numeric {
			t.Fatalf("var %s: expected numeric, got type %q", v.Name, v.Type)
		}
	}

	names := []string{"branch0", "branch1", "branch2"}
	cols, err := Columns(tree, names)
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	for _, n := range names {
		col := cols[n]
		if len(col) != 25 {
			t.Fatalf("column %s: expected 25 values, got %d", n, len(col))
		}
		for _, x := range col {
			if x < 0 || x >= 1 {
				t.Fatalf("column %s: value %v outside [0,1)", n, x)
			}
		}
	}
}

func TestWriteRandomTree_Deterministic(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "a.root")
	p2 := filepath.Join(dir, "b.root")
	writeTree(t, p1, 2, 10, 7)
	writeTree(t, p2, 2, 10, 7)

	c1 := readColumn(t, p1, "branch0")
	c2 := readColumn(t, p2, "branch0")
	if len(c1) != len(c2) {
		t.Fatalf("length mismatch: %d vs %d", len(c1), len(c2))
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("value %d differs: %v vs %v", i, c1[i], c2[i])
		}
	}
}

func TestOpen_MissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.root")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTree_MissingTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.root")
	writeTree(t, path, 1, 1, 1)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	if _, err := f.Tree("does-not-exist"); err == nil {
		t.Fatalf("expected error for missing tree")
	}
}

func TestHasBranch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.root")
	writeTree(t, path, 2, 5, 3)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	tree, err := f.Tree("tree")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if !HasBranch(tree, "branch1") {
		t.Fatalf("expected branch1 to exist")
	}
	if HasBranch(tree, "branch9") {
		t.Fatalf("did not expect branch9")
	}
}

func TestVar_PlotName(t *testing.T) {
	cases := []struct {
		v    Var
		want string
	}{
		{Var{Branch: "jet", Name: "jet"}, "jet"},
		{Var{Branch: "jet", Name: "jet.pt"}, "pt"},
		{Var{Branch: "jet", Name: "jet.sub.pt"}, "sub_pt"},
	}
	for _, c := range cases {
		if got := c.v.PlotName(); got != c.want {
			t.Fatalf("PlotName(%q): expected %q, got %q", c.v.Name, c.want, got)
		}
	}
}

func readColumn(t *testing.T, path, name string) []float64 {
	t.Helper()
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open %s: %v", path, err)
	}
	defer f.Close()
	tree, err := f.Tree("tree")
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	cols, err := Columns(tree, []string{name})
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	return cols[name]
}
