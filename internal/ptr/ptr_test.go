package ptr_test

import (
	"testing"

	"github.com/myrjola/fitquest/internal/ptr"
)

func TestRef(t *testing.T) {
	t.Run("optional weight", func(t *testing.T) {
		weight := 69.5
		p := ptr.Ref(weight)
		if p == nil || *p != weight {
			t.Fatalf("Ref(%v) = %v", weight, p)
		}
		weight = 70
		if *p != 69.5 {
			t.Errorf("expected the pointer to hold a copy, got %v", *p)
		}
	})

	t.Run("zero steps are recorded", func(t *testing.T) {
		p := ptr.Ref(0)
		if p == nil || *p != 0 {
			t.Fatalf("Ref(0) = %v", p)
		}
	})

	t.Run("each call gets its own value", func(t *testing.T) {
		a, b := ptr.Ref("23:00"), ptr.Ref("23:00")
		if a == b {
			t.Error("expected distinct pointers")
		}
		*a = "22:30"
		if *b != "23:00" {
			t.Errorf("expected b unchanged, got %q", *b)
		}
	})
}
