package youtube

import (
	"context"
	"path/filepath"
	"testing"
)

func TestBuildVideoFixedMetadata(t *testing.T) {
	v := buildVideo("my title", "my description")

	if v.Snippet.Title != "my title" {
		t.Errorf("title = %q", v.Snippet.Title)
	}
	if v.Snippet.Description != "my description" {
		t.Errorf("description = %q", v.Snippet.Description)
	}
	if v.Snippet.CategoryId != "22" {
		t.Errorf("category = %q, want 22", v.Snippet.CategoryId)
	}
	if v.Status.PrivacyStatus != "private" {
		t.Errorf("privacy = %q, want private", v.Status.PrivacyStatus)
	}
	if len(v.Snippet.Tags) != 1 || v.Snippet.Tags[0] != "test" {
		t.Errorf("tags = %v, want [test]", v.Snippet.Tags)
	}
}

func TestFileCredentialsMissingSecret(t *testing.T) {
	c := &FileCredentials{
		ClientSecretFile: filepath.Join(t.TempDir(), "absent.json"),
		TokenFile:        filepath.Join(t.TempDir(), "token.json"),
	}
	if _, err := c.Client(context.Background()); err == nil {
		t.Fatal("expected error for missing client secret file")
	}
}
