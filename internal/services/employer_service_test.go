package services

import (
	"context"
	"errors"
	"testing"

	"watwallet/internal/core"
	"watwallet/internal/store/memory"
)

func TestEmployerCreateAndSearch(t *testing.T) {
	svc := NewEmployerService(memory.New())
	ctx := context.Background()

	for _, name := range []string{"Bagno 26", "Hotel Riva", "Riva Beach Club"} {
		if _, err := svc.Create(ctx, name); err != nil {
			t.Fatalf("Create %q: %v", name, err)
		}
	}

	tests := []struct {
		term string
		want []string
	}{
		{"riva", []string{"Hotel Riva", "Riva Beach Club"}},
		{"BAGNO", []string{"Bagno 26"}},
		{"", []string{"Bagno 26", "Hotel Riva", "Riva Beach Club"}},
		{"xyz", []string{}},
	}
	for _, tc := range tests {
		got, err := svc.Search(ctx, tc.term)
		if err != nil {
			t.Fatalf("Search %q: %v", tc.term, err)
		}
		if len(got) != len(tc.want) {
			t.Errorf("Search %q = %d results, want %d", tc.term, len(got), len(tc.want))
			continue
		}
		for i, e := range got {
			if e.Name != tc.want[i] {
				t.Errorf("Search %q [%d] = %q, want %q", tc.term, i, e.Name, tc.want[i])
			}
		}
	}
}

func TestEmployerCreateRejectsBlankName(t *testing.T) {
	svc := NewEmployerService(memory.New())

	_, err := svc.Create(context.Background(), "   ")
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("err = %v, want ErrEmptyName", err)
	}
}

func TestEmployerListLimit(t *testing.T) {
	svc := NewEmployerService(memory.New())
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		if _, err := svc.Create(ctx, name); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := svc.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("list = %d, want 2", len(got))
	}
	if got[0].Name != "Alpha" || got[1].Name != "Beta" {
		t.Errorf("list = [%s %s], want [Alpha Beta]", got[0].Name, got[1].Name)
	}
}
