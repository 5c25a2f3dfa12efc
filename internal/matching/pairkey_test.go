package matching

import (
	"testing"
)

func TestNewPairKeyCanonicalOrder(t *testing.T) {
	forward, err := NewPairKey("alice", "bob")
	if err != nil {
		t.Fatalf("NewPairKey(alice, bob) returned error: %v", err)
	}
	reverse, err := NewPairKey("bob", "alice")
	if err != nil {
		t.Fatalf("NewPairKey(bob, alice) returned error: %v", err)
	}

	if forward != reverse {
		t.Errorf("pair keys differ by argument order: %v vs %v", forward, reverse)
	}
	if forward.User1 != "alice" || forward.User2 != "bob" {
		t.Errorf("expected members (alice, bob), got (%s, %s)", forward.User1, forward.User2)
	}
	if forward.String() != "alice:bob" {
		t.Errorf("expected key alice:bob, got %s", forward.String())
	}
}

func TestNewPairKeyRejectsReflexiveAndEmpty(t *testing.T) {
	cases := []struct {
		name string
		a, b string
	}{
		{"same user", "alice", "alice"},
		{"empty first", "", "bob"},
		{"empty second", "alice", ""},
		{"both empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPairKey(tc.a, tc.b); err != ErrReflexivePair {
				t.Errorf("NewPairKey(%q, %q) error = %v, want ErrReflexivePair", tc.a, tc.b, err)
			}
		})
	}
}

func TestChatRoomIDDeterministic(t *testing.T) {
	forward, _ := NewPairKey("user_42", "user_7")
	reverse, _ := NewPairKey("user_7", "user_42")

	if forward.ChatRoomID() != reverse.ChatRoomID() {
		t.Errorf("room ids differ by argument order: %s vs %s",
			forward.ChatRoomID(), reverse.ChatRoomID())
	}
	if got := forward.ChatRoomID(); got != "chat_user_42_user_7" {
		t.Errorf("expected chat_user_42_user_7, got %s", got)
	}
}

func TestParsePairKey(t *testing.T) {
	key, err := ParsePairKey("alice:bob")
	if err != nil {
		t.Fatalf("ParsePairKey returned error: %v", err)
	}
	if key.User1 != "alice" || key.User2 != "bob" {
		t.Errorf("expected (alice, bob), got (%s, %s)", key.User1, key.User2)
	}

	if _, err := ParsePairKey("alicebob"); err == nil {
		t.Error("expected error for key without separator")
	}
	if _, err := ParsePairKey("alice:alice"); err == nil {
		t.Error("expected error for reflexive key")
	}
}

func TestPairKeyMembership(t *testing.T) {
	key, _ := NewPairKey("alice", "bob")

	if !key.Contains("alice") || !key.Contains("bob") {
		t.Error("expected both members to be contained")
	}
	if key.Contains("carol") {
		t.Error("carol should not be a member")
	}

	if got := key.Other("alice"); got != "bob" {
		t.Errorf("Other(alice) = %s, want bob", got)
	}
	if got := key.Other("bob"); got != "alice" {
		t.Errorf("Other(bob) = %s, want alice", got)
	}
	if got := key.Other("carol"); got != "" {
		t.Errorf("Other(carol) = %s, want empty", got)
	}
}
