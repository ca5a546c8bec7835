package rules

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"a11yaudit/internal/browser"
)

type dummyCheck struct {
	id string
}

func (c *dummyCheck) ID() string          { return c.id }
func (c *dummyCheck) Title() string       { return "Dummy Check" }
func (c *dummyCheck) Description() string { return "Does nothing" }
func (c *dummyCheck) Evaluate(ctx context.Context, page browser.Page) (Result, error) {
	return PassResult(c.id, ""), nil
}

type sizeCheck struct {
	dummyCheck
	size string
}

func (c *sizeCheck) Options() []Option {
	return []Option{{Name: "size", Description: "size", Default: "1"}}
}

func (c *sizeCheck) Configure(opts map[string]string) error {
	if v, ok := opts["size"]; ok {
		if v == "bad" {
			return errors.New("bad size")
		}
		c.size = v
	}
	return nil
}

func resetRegistry(t *testing.T) {
	t.Helper()
	mu.Lock()
	oldRegistry, oldOrder := registry, order
	registry = make(map[string]Check)
	order = make(map[string]int)
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		registry, order = oldRegistry, oldOrder
		mu.Unlock()
	})
}

func TestRegistry(t *testing.T) {
	resetRegistry(t)

	Register(&dummyCheck{id: "zeta"})
	Register(&dummyCheck{id: "alpha"})

	all := List()
	if len(all) != 2 {
		t.Fatalf("Expected 2 checks, got %d", len(all))
	}
	if all[0].ID() != "zeta" || all[1].ID() != "alpha" {
		t.Errorf("Expected registration order, got %s, %s", all[0].ID(), all[1].ID())
	}

	selected, err := Resolve("alpha")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(selected) != 1 || selected[0].ID() != "alpha" {
		t.Errorf("Expected alpha, got %v", selected)
	}

	selected, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(selected) != 2 {
		t.Errorf("Expected 2 checks, got %d", len(selected))
	}

	if _, err = Resolve("unknown"); err == nil {
		t.Error("Expected error for unknown check")
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	resetRegistry(t)

	Register(&dummyCheck{id: "dup"})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register(&dummyCheck{id: "dup"})
}

func TestApplyOptions(t *testing.T) {
	resetRegistry(t)

	sc := &sizeCheck{dummyCheck: dummyCheck{id: "sized"}}
	Register(sc)
	Register(&dummyCheck{id: "plain"})

	if err := ApplyOptions(map[string]map[string]string{"sized": {"size": "48"}}); err != nil {
		t.Fatalf("ApplyOptions error: %v", err)
	}
	if sc.size != "48" {
		t.Fatalf("size: got %q want 48", sc.size)
	}

	tests := []struct {
		name    string
		in      map[string]map[string]string
		wantErr string
	}{
		{name: "unknown check", in: map[string]map[string]string{"nope": {"size": "1"}}, wantErr: "unknown check"},
		{name: "not configurable", in: map[string]map[string]string{"plain": {"size": "1"}}, wantErr: "does not support options"},
		{name: "unknown option", in: map[string]map[string]string{"sized": {"color": "red"}}, wantErr: "unknown option"},
		{name: "configure error", in: map[string]map[string]string{"sized": {"size": "bad"}}, wantErr: "bad size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyOptions(tt.in)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("want error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLevelsOf(t *testing.T) {
	tests := []struct {
		id   string
		want []string
	}{
		{id: "image-alt", want: []string{LevelAKey}},
		{id: "region", want: []string{LevelAAKey}},
		{id: "color-contrast", want: []string{LevelAKey, LevelAAKey}},
		{id: "landmark-unique", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := LevelsOf(tt.id); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestWCAGRules_Lists(t *testing.T) {
	if len(LevelA) != 16 || len(LevelAA) != 7 {
		t.Fatalf("sizes: level-a=%d level-aa=%d, want 16 and 7", len(LevelA), len(LevelAA))
	}

	// Only color-contrast may appear in both levels; no level repeats an ID.
	inA := make(map[string]bool)
	for _, id := range LevelA {
		if inA[id] {
			t.Fatalf("level-a lists %s twice", id)
		}
		inA[id] = true
	}
	seenAA := make(map[string]bool)
	for _, id := range LevelAA {
		if seenAA[id] {
			t.Fatalf("level-aa lists %s twice", id)
		}
		seenAA[id] = true
		if inA[id] && id != "color-contrast" {
			t.Fatalf("rule %s listed under both levels", id)
		}
	}
}
