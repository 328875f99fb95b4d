package grove

import (
	"sync"
	"testing"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
	if n.Mesh != nil {
		t.Error("container should have no mesh")
	}
}

func TestNewMeshNodeDefaults(t *testing.T) {
	m, err := NewBoxMesh(1, 1, 1, Material{})
	if err != nil {
		t.Fatal(err)
	}
	n := NewMeshNode("box", m)
	assertNodeDefaults(t, n, "box", NodeTypeMesh)
	if n.Mesh != m {
		t.Error("Mesh not set")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.Scale[0] != 1 || n.Scale[1] != 1 || n.Scale[2] != 1 {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale)
	}
	if n.Rotation.W != 1 || n.Rotation.V.Len() != 0 {
		t.Errorf("Rotation = %v, want identity", n.Rotation)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should be unique, both = %d", a.ID)
	}
}

// --- AddChild / RemoveChild ---

func TestUniqueIDsConcurrent(t *testing.T) {
	const workers, perWorker = 8, 500
	ids := make([][]uint32, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids[w] = append(ids[w], NewContainer("n").ID)
			}
		}(w)
	}
	wg.Wait()

	seen := make(map[uint32]bool, workers*perWorker)
	for _, list := range ids {
		for _, id := range list {
			if id == 0 || seen[id] {
				t.Fatalf("id %d is zero or duplicated", id)
			}
			seen[id] = true
		}
	}
}

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("parent should have exactly child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent still has %d children", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildSelfPanics(t *testing.T) {
	a := NewContainer("a")
	defer func() {
		if recover() == nil {
			t.Error("expected panic on self-add")
		}
	}()
	a.AddChild(a)
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	a, b, c := NewContainer("a"), NewContainer("b"), NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)
	parent.RemoveChild(b)

	if parent.NumChildren() != 2 || parent.ChildAt(0) != a || parent.ChildAt(1) != c {
		t.Errorf("children after remove = %v", parent.Children())
	}
	if b.Parent != nil {
		t.Error("removed child should have nil Parent")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer("p").RemoveChild(NewContainer("stranger"))
}

func TestRemoveFromParentNoParent(t *testing.T) {
	n := NewContainer("orphan")
	n.RemoveFromParent() // must not panic
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	kids := []*Node{NewContainer("a"), NewContainer("b")}
	for _, k := range kids {
		parent.AddChild(k)
	}
	parent.RemoveChildren()
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil || k.IsDisposed() {
			t.Errorf("%s should be detached but alive", k.Name)
		}
	}
}

// --- Walk / counts ---

func TestWalkOrderAndSkip(t *testing.T) {
	root := NewContainer("root")
	a := NewContainer("a")
	a1 := NewContainer("a1")
	b := NewContainer("b")
	root.AddChild(a)
	a.AddChild(a1)
	root.AddChild(b)

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Name)
		return n.Name != "a"
	})
	want := []string{"root", "a", "b"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("visited %v, want %v", names, want)
		}
	}
}

func TestVertexAndMeshCount(t *testing.T) {
	root := NewContainer("root")
	box, _ := NewBoxMesh(1, 1, 1, Material{})
	sphere, _ := NewSphereMesh(1, 4, 3, Material{})
	root.AddChild(NewMeshNode("box", box))
	group := NewContainer("group")
	group.AddChild(NewMeshNode("sphere", sphere))
	root.AddChild(group)

	if got, want := root.VertexCount(), 8+(2+4*2); got != want {
		t.Errorf("VertexCount = %d, want %d", got, want)
	}
	if got := root.MeshCount(); got != 2 {
		t.Errorf("MeshCount = %d, want 2", got)
	}
}

// --- Dispose ---

func TestDisposeRecursive(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)

	root := NewContainer("root")
	root.AddChild(parent)
	parent.Dispose()

	if root.NumChildren() != 0 {
		t.Error("disposed node should be removed from its parent")
	}
	for _, n := range []*Node{parent, child, grandchild} {
		if !n.IsDisposed() {
			t.Errorf("%s should be disposed", n.Name)
		}
		if n.ID != 0 || n.Mesh != nil || n.NumChildren() != 0 {
			t.Errorf("%s not cleared: %+v", n.Name, n)
		}
	}
}

func TestDisposeTwice(t *testing.T) {
	n := NewContainer("n")
	n.Dispose()
	n.Dispose() // must not panic
}
