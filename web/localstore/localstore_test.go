package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func kvImplementations(t *testing.T) map[string]KV {
	t.Helper()
	sq, err := NewSqlite(filepath.Join(t.TempDir(), "local.db"))
	if err != nil {
		t.Fatalf("NewSqlite failed: %v", err)
	}
	t.Cleanup(func() { sq.Close() })
	return map[string]KV{"memory": NewMemory(), "sqlite": sq}
}

func TestSetGet(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			if got, _ := kv.Get(ctx, KeyLanguage); got != "" {
				t.Errorf("unset key = %q, want empty", got)
			}
			if err := kv.Set(ctx, KeyLanguage, "uz"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := kv.Set(ctx, KeyLanguage, "ru"); err != nil {
				t.Fatalf("Set overwrite failed: %v", err)
			}
			if got, _ := kv.Get(ctx, KeyLanguage); got != "ru" {
				t.Errorf("Get = %q, want ru", got)
			}
		})
	}
}

func TestAppendUniquePreservesOrder(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"a", "b", "a", "c", "b"} {
				if err := kv.AppendUnique(ctx, KeyReceivedInvitations, id); err != nil {
					t.Fatalf("AppendUnique failed: %v", err)
				}
			}
			got, err := kv.List(ctx, KeyReceivedInvitations)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			want := []string{"a", "b", "c"}
			if len(got) != len(want) {
				t.Fatalf("List = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("List = %v, want %v", got, want)
					break
				}
			}
		})
	}
}

// **Feature: local-store, Property: append idempotence**
// *For any* sequence of identifiers, appending each one any number of
// times yields a list with no duplicates, in first-seen order.
func TestAppendUniqueIdempotence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	ctx := context.Background()

	properties.Property("repeated appends never duplicate", prop.ForAll(
		func(ids []string) bool {
			kv := NewMemory()
			for round := 0; round < 3; round++ {
				for _, id := range ids {
					if err := kv.AppendUnique(ctx, KeyReceivedInvitations, id); err != nil {
						return false
					}
				}
			}

			got, err := kv.List(ctx, KeyReceivedInvitations)
			if err != nil {
				return false
			}
			seen := make(map[string]bool)
			for _, id := range got {
				if seen[id] {
					return false
				}
				seen[id] = true
			}
			for _, id := range ids {
				if !seen[id] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
