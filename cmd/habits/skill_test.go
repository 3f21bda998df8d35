// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and file content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedSkillContent(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	for _, marker := range []string{"name: habits", "habits done", "habits list"} {
		if !strings.Contains(string(content), marker) {
			t.Errorf("SKILL.md missing %q", marker)
		}
	}
}

func TestInstallSkillWithYes(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(home, true, strings.NewReader(""), &out); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	skillPath := filepath.Join(home, ".claude", "skills", "habits", "SKILL.md")
	written, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(written, embedded) {
		t.Error("Installed skill differs from embedded content")
	}
	if !strings.Contains(out.String(), "Installed habits skill") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestInstallSkillConfirm(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(home, false, strings.NewReader("y\n"), &out); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".claude", "skills", "habits", "SKILL.md")); err != nil {
		t.Errorf("Skill file not created after confirming: %v", err)
	}
}

func TestInstallSkillCanceled(t *testing.T) {
	home := t.TempDir()
	var out bytes.Buffer

	if err := installSkill(home, false, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".claude", "skills", "habits")); !os.IsNotExist(err) {
		t.Error("Skill directory should not exist after cancel")
	}
	if !strings.Contains(out.String(), "canceled") {
		t.Errorf("Expected cancel message, got: %s", out.String())
	}
}

func TestInstallSkillOverwrites(t *testing.T) {
	home := t.TempDir()
	skillDir := filepath.Join(home, ".claude", "skills", "habits")
	if err := os.MkdirAll(skillDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := installSkill(home, true, strings.NewReader(""), &out); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Error("Expected overwrite note")
	}
	written, _ := os.ReadFile(filepath.Join(skillDir, "SKILL.md"))
	if string(written) == "old" {
		t.Error("Skill file was not overwritten")
	}
}
