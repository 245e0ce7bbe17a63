package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuiltin(t *testing.T) {
	r := Builtin()

	nodes := r.Nodes()
	if len(nodes) == 0 {
		t.Fatal("builtin registry is empty")
	}
	if nodes[0].Path != PathMode || nodes[1].Path != PathScopes {
		t.Errorf("first nodes = %s, %s; want mode then scopes", nodes[0].Path, nodes[1].Path)
	}

	var blockPaths []string
	for _, n := range r.BlockNodes() {
		blockPaths = append(blockPaths, n.Path)
	}
	want := []string{PathSuperHardStoneTools, PathSoftenStoneBlocks, PathFallingBlocks, PathBreakableByFallingBlocks}
	if diff := cmp.Diff(want, blockPaths); diff != "" {
		t.Errorf("BlockNodes() mismatch (-want +got):\n%s", diff)
	}

	if r.Len() != len(nodes) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(nodes))
	}
	if Builtin() != r {
		t.Error("Builtin() should return the same registry")
	}
}

func TestRegistry_Lookup(t *testing.T) {
	r := Builtin()
	path := Base + ".Zombies.Slow Players"

	if !r.Has(path) || r.Get(path) == nil {
		t.Fatalf("%s should be registered", path)
	}
	if r.Has(Base + ".Zombies.Nope") {
		t.Error("unknown path should not be registered")
	}
	if v := r.Default(path); v != true {
		t.Errorf("Default() = %v, want true", v)
	}
	if v := r.DisableSentinel(path); v != false {
		t.Errorf("DisableSentinel() = %v, want false", v)
	}
	if r.Default("missing") != nil || r.DisableSentinel("missing") != nil {
		t.Error("unknown paths should have no default or sentinel")
	}

	zombies := r.Section("Zombies")
	if len(zombies) != 2 {
		t.Errorf("len(Section(Zombies)) = %d, want 2", len(zombies))
	}
	if got := r.Search("reanimate"); len(got) != 1 {
		t.Errorf("Search(reanimate) returned %d nodes, want 1", len(got))
	}
}

func TestNode_Sentinel(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want any
	}{
		{"boolean", Node{Type: TypeBoolean, Default: true}, false},
		{"integer without subtype", Node{Type: TypeInteger, Default: 3}, 0},
		{"percentage", Node{Type: TypeInteger, SubType: SubPercentage, Default: 50}, 0},
		{"health", Node{Type: TypeInteger, SubType: SubHealth, Default: 15}, 20},
		{"y value", Node{Type: TypeInteger, SubType: SubYValue, Default: 30}, 0},
		{"natural number override", Node{Type: TypeInteger, SubType: SubNaturalNumber, Disable: 1, Default: 2}, 1},
		{"percentage override", Node{Type: TypeInteger, SubType: SubPercentage, Disable: 100, Default: 75}, 100},
		{"double", Node{Type: TypeDouble, Default: 0.5}, 0.0},
		{"double health", Node{Type: TypeDouble, SubType: SubHealth, Default: 1.0}, 20.0},
		{"string", Node{Type: TypeString, Default: "x"}, ""},
		{"list", Node{Type: TypeList, Default: []string{"a"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, tt.node.Sentinel()); diff != "" {
				t.Errorf("Sentinel() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNew_Misconfigured(t *testing.T) {
	tests := []struct {
		name  string
		nodes []Node
	}{
		{"empty path", []Node{{Type: TypeBoolean, Default: true}}},
		{"duplicate", []Node{boolean("A", true), boolean("A", false)}},
		{"default type", []Node{{Path: "x", Type: TypeInteger, Default: "ten"}}},
		{"disable without subtype", []Node{{Path: "x", Type: TypeInteger, Default: 1, Disable: 0}}},
		{"blocks on scalar", []Node{{Path: "x", Type: TypeString, Default: "", Blocks: true}}},
		{"unknown type", []Node{{Path: "x", Type: VarType(42), Default: 1}}},
		{"unknown subtype", []Node{{Path: "x", Type: TypeInteger, SubType: SubType(42), Default: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.nodes...)
			if !errors.Is(err, ErrMisconfigured) {
				t.Errorf("New() error = %v, want ErrMisconfigured", err)
			}
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew should panic on a misconfigured node")
		}
	}()
	MustNew(Node{Path: "x", Type: TypeBoolean, Default: 1})
}

func TestNew_NormalizesDefaults(t *testing.T) {
	r := MustNew(
		Node{Path: "d", Type: TypeDouble, Default: 2},
		Node{Path: "l", Type: TypeList, Default: []any{"a", "b"}},
	)

	if v, ok := r.Default("d").(float64); !ok || v != 2 {
		t.Errorf("double default = %#v, want 2.0", r.Default("d"))
	}
	if diff := cmp.Diff([]string{"a", "b"}, r.Default("l")); diff != "" {
		t.Errorf("list default mismatch (-want +got):\n%s", diff)
	}

	// Defaults are copies
	l := r.Default("l").([]string)
	l[0] = "z"
	if r.Default("l").([]string)[0] != "a" {
		t.Error("Default() should return a copy")
	}
}

func TestNode_Validate(t *testing.T) {
	pct := Node{Path: "p", Type: TypeInteger, SubType: SubPercentage, Default: 50}
	health := Node{Path: "h", Type: TypeInteger, SubType: SubHealth, Default: 15}
	y := Node{Path: "y", Type: TypeInteger, SubType: SubYValue, Default: 30}
	natural := Node{Path: "n", Type: TypeInteger, SubType: SubNaturalNumber, Default: 3}
	plain := Node{Path: "i", Type: TypeInteger, Default: 3}
	dbl := Node{Path: "d", Type: TypeDouble, SubType: SubPercentage, Default: 1.5}

	tests := []struct {
		name   string
		node   Node
		value  any
		want   any
		wantOK bool
	}{
		{"percentage in range", pct, 100, 100, true},
		{"percentage above", pct, 101, 50, false},
		{"percentage below", pct, -1, 50, false},
		{"health max", health, 20, 20, true},
		{"health above", health, 21, 15, false},
		{"y max", y, 255, 255, true},
		{"y above", y, 256, 30, false},
		{"natural large", natural, 100000, 100000, true},
		{"natural negative", natural, -2, 3, false},
		{"plain negative", plain, -2, -2, true},
		{"int from int64", plain, int64(7), 7, true},
		{"fractional for integer", plain, 1.5, 3, false},
		{"double in range", dbl, 99.5, 99.5, true},
		{"double above", dbl, 100.5, 1.5, false},
		{"double from int", dbl, 4, 4.0, true},
		{"wrong type", pct, "ten", 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.node.Validate(tt.value)
			if ok != tt.wantOK {
				t.Errorf("Validate(%v) ok = %v, want %v", tt.value, ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate(%v) mismatch (-want +got):\n%s", tt.value, diff)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"float drift", 0.1 + 0.2, 0.3, true},
		{"float differs", 0.3, 0.3001, false},
		{"negative zero", -0.0, 0.0, true},
		{"float vs int", 1.0, 1, false},
		{"ints", 3, 3, true},
		{"bools", true, false, false},
		{"strings", "a", "a", true},
		{"lists", []string{"a", "b"}, []string{"a", "b"}, true},
		{"list order", []string{"a", "b"}, []string{"b", "a"}, false},
		{"list vs nil", []string{}, nil, false},
		{"nils", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		t      VarType
		raw    any
		want   any
		wantOK bool
	}{
		{"bool", TypeBoolean, true, true, true},
		{"bool from string", TypeBoolean, "true", false, false},
		{"int from float64", TypeInteger, 4.0, 4, true},
		{"int from huge float64", TypeInteger, 1e20, nil, false},
		{"int from huge negative float64", TypeInteger, -1e20, nil, false},
		{"int from infinity", TypeInteger, math.Inf(1), nil, false},
		{"int from NaN", TypeInteger, math.NaN(), nil, false},
		{"int from uint64 overflow", TypeInteger, uint64(math.MaxUint64), nil, false},
		{"int from uint64", TypeInteger, uint64(42), 42, true},
		{"int from max int64", TypeInteger, int64(math.MaxInt64), math.MaxInt, true},
		{"double from int", TypeDouble, 18, 18.0, true},
		{"string from int", TypeString, 7, "7", true},
		{"list from any", TypeList, []any{"a", 1}, []string{"a", "1"}, true},
		{"list from map", TypeList, map[string]any{}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Coerce(tt.t, tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("Coerce() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok {
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("Coerce() mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestNormalizeFloat(t *testing.T) {
	if got := NormalizeFloat(0.1 + 0.2); got != "0.3000000000" {
		t.Errorf("NormalizeFloat(0.1+0.2) = %q", got)
	}
	if got := NormalizeFloat(-0.00000000001); got != "0.0000000000" {
		t.Errorf("NormalizeFloat(tiny negative) = %q", got)
	}
}

func TestVarType_String(t *testing.T) {
	tests := []struct {
		t    VarType
		want string
	}{
		{TypeBoolean, "boolean"},
		{TypeInteger, "integer"},
		{TypeDouble, "double"},
		{TypeString, "string"},
		{TypeList, "list"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
