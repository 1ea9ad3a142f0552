package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestManager_SignInSignOut(t *testing.T) {
	manager := NewManager()
	userID := uuid.New()

	t.Run("starts anonymous", func(t *testing.T) {
		if manager.Authenticated() {
			t.Error("expected a fresh manager to be anonymous")
		}
		if id, email, ok := manager.Current(); ok || id != uuid.Nil || email != "" {
			t.Errorf("expected empty identity, got %s %s %v", id, email, ok)
		}
	})

	t.Run("SignIn records the identity", func(t *testing.T) {
		manager.SignIn(userID, "boss@example.com")

		id, email, ok := manager.Current()
		if !ok || id != userID || email != "boss@example.com" {
			t.Errorf("unexpected identity %s %s %v", id, email, ok)
		}
	})

	t.Run("SignOut clears the identity", func(t *testing.T) {
		manager.SignOut()

		if manager.Authenticated() {
			t.Error("expected manager to be anonymous after sign-out")
		}
	})
}

func TestManager_Subscribe(t *testing.T) {
	t.Run("notifies on transitions only", func(t *testing.T) {
		manager := NewManager()
		userID := uuid.New()

		var transitions []bool
		manager.Subscribe(func(authenticated bool) {
			transitions = append(transitions, authenticated)
		})

		manager.SignIn(userID, "boss@example.com")
		manager.SignIn(userID, "boss@example.com") // same user, no transition
		manager.SignOut()
		manager.SignOut() // already anonymous, no transition

		expected := []bool{true, false}
		if len(transitions) != len(expected) {
			t.Fatalf("expected %d transitions, got %d", len(expected), len(transitions))
		}
		for i := range expected {
			if transitions[i] != expected[i] {
				t.Errorf("transition %d: expected %v, got %v", i, expected[i], transitions[i])
			}
		}
	})

	t.Run("switching users counts as a transition", func(t *testing.T) {
		manager := NewManager()

		calls := 0
		manager.Subscribe(func(bool) { calls++ })

		manager.SignIn(uuid.New(), "first@example.com")
		manager.SignIn(uuid.New(), "second@example.com")

		if calls != 2 {
			t.Errorf("expected 2 notifications, got %d", calls)
		}
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		manager := NewManager()

		calls := 0
		unsubscribe := manager.Subscribe(func(bool) { calls++ })
		unsubscribe()

		manager.SignIn(uuid.New(), "boss@example.com")

		if calls != 0 {
			t.Errorf("expected no notifications after unsubscribe, got %d", calls)
		}
	})

	t.Run("subscriber may re-enter the manager", func(t *testing.T) {
		manager := NewManager()

		var sawAuthenticated bool
		manager.Subscribe(func(bool) {
			sawAuthenticated = manager.Authenticated()
		})

		manager.SignIn(uuid.New(), "boss@example.com")

		if !sawAuthenticated {
			t.Error("expected subscriber to observe the new state")
		}
	})
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			manager.SignIn(userID, "boss@example.com")
			manager.SignOut()
		}()
		go func() {
			defer wg.Done()
			manager.Authenticated()
			manager.Current()
		}()
	}
	wg.Wait()
}
