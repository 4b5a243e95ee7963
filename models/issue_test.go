package models_test

import (
	"testing"

	"cityfix-be/models"
)

func TestIsKnownPriority(t *testing.T) {
	for _, p := range []string{"Normal", "High", "Low"} {
		if !models.IsKnownPriority(p) {
			t.Errorf("IsKnownPriority(%q) = false", p)
		}
	}
	for _, p := range []string{"", "high", "Critical", "urgent"} {
		if models.IsKnownPriority(p) {
			t.Errorf("IsKnownPriority(%q) = true", p)
		}
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range []string{"pending", "in-progress", "working", "resolved", "closed", "rejected"} {
		if !models.IsKnownStatus(s) {
			t.Errorf("IsKnownStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "Pending", "done", "Boosted"} {
		if models.IsKnownStatus(s) {
			t.Errorf("IsKnownStatus(%q) = true", s)
		}
	}
}

func TestIsKnownRole(t *testing.T) {
	for _, r := range []string{"citizen", "staff", "admin"} {
		if !models.IsKnownRole(r) {
			t.Errorf("IsKnownRole(%q) = false", r)
		}
	}
	if models.IsKnownRole("superuser") {
		t.Error(`IsKnownRole("superuser") = true`)
	}
}
