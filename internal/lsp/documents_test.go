package lsp

import (
	"testing"
)

const settingsURI = "file:///project/.vscode/settings.json"

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()
	store.Open(settingsURI, "/project/.vscode/settings.json", "initial content")

	content, ok := store.Get(settingsURI)
	if !ok {
		t.Fatal("document not found after opening")
	}
	if content != "initial content" {
		t.Errorf("expected 'initial content', got '%s'", content)
	}

	store.Update(settingsURI, "updated content")

	content, ok = store.Get(settingsURI)
	if !ok {
		t.Fatal("document not found after update")
	}
	if content != "updated content" {
		t.Errorf("expected 'updated content', got '%s'", content)
	}
}

func TestDocumentStore_UpdateUnknown(t *testing.T) {
	store := NewDocumentStore()
	store.Update(settingsURI, "content")

	if _, ok := store.Get(settingsURI); ok {
		t.Error("update must not open a document")
	}
}

func TestDocumentStore_Close(t *testing.T) {
	store := NewDocumentStore()
	store.Open(settingsURI, "/project/.vscode/settings.json", "{}")
	store.Close(settingsURI)

	if _, ok := store.Get(settingsURI); ok {
		t.Error("document still present after close")
	}
	if store.Result(settingsURI) != nil {
		t.Error("expected nil result for closed document")
	}
}

func TestDocumentStore_ResultInvalidatedOnUpdate(t *testing.T) {
	store := NewDocumentStore()
	store.Open(settingsURI, "/project/.vscode/settings.json", `{"peacock.color": "#3498db"}`)

	first := store.Result(settingsURI)
	if len(first.Colors) != 1 {
		t.Fatalf("expected 1 color, got %d", len(first.Colors))
	}
	if store.Result(settingsURI) != first {
		t.Error("expected cached result on second call")
	}

	store.Update(settingsURI, `{"peacock.color": "#3498db", "other": "#ff0000"}`)

	second := store.Result(settingsURI)
	if len(second.Colors) != 2 {
		t.Fatalf("expected 2 colors after update, got %d", len(second.Colors))
	}
}

func TestDocumentStore_ConcurrentAccess(t *testing.T) {
	store := NewDocumentStore()
	store.Open(settingsURI, "/project/.vscode/settings.json", "initial")

	done := make(chan bool, 10)
	for i := 0; i < 10; i++ {
		go func(n int) {
			store.Update(settingsURI, string(rune('0'+n)))
			store.Result(settingsURI)
			done <- true
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	content, ok := store.Get(settingsURI)
	if !ok {
		t.Error("document not found after concurrent updates")
	}
	if content == "" {
		t.Error("document content is empty after concurrent updates")
	}
}
