package idgen_test

import (
	"testing"

	"github.com/Gunvolt24/xacc_orders/internal/idgen"
	"github.com/google/uuid"
)

func TestNew_UnknownVersion(t *testing.T) {
	if _, err := idgen.New("v1"); err == nil {
		t.Fatalf("expected error for v1")
	}
}

func TestNewID_VersionAndUniqueness(t *testing.T) {
	t.Parallel()

	const n = 10_000

	for _, tc := range []struct {
		version string
		want    uuid.Version
	}{
		{"v4", 4},
		{"", 4},
		{"v7", 7},
	} {
		tc := tc
		t.Run("version_"+tc.version, func(t *testing.T) {
			t.Parallel()

			g, err := idgen.New(tc.version)
			if err != nil {
				t.Fatalf("New(%q): %v", tc.version, err)
			}

			seen := make(map[string]struct{}, n)
			for i := 0; i < n; i++ {
				id, err := g.NewID()
				if err != nil {
					t.Fatalf("NewID: %v", err)
				}
				parsed, err := uuid.Parse(id)
				if err != nil {
					t.Fatalf("not a uuid: %q", id)
				}
				if parsed.Version() != tc.want {
					t.Fatalf("version: got %d want %d", parsed.Version(), tc.want)
				}
				if _, dup := seen[id]; dup {
					t.Fatalf("duplicate id after %d generations: %s", i, id)
				}
				seen[id] = struct{}{}
			}
		})
	}
}
