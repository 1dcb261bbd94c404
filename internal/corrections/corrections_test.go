package corrections

import (
	"testing"
)

func TestFor(t *testing.T) {
	fix, ok := For("GLIOMA01")
	if !ok {
		t.Fatal("Expected a correction for GLIOMA01")
	}
	if !fix.CleanDescription {
		t.Error("Expected description cleanup to be enabled")
	}
	if fix.ImageCountOffset != 84 {
		t.Errorf("Expected image count offset 84, got %d", fix.ImageCountOffset)
	}
	if len(fix.ExtraModalities) != 1 || fix.ExtraModalities[0] != "Histopathology" {
		t.Errorf("Expected extra modality Histopathology, got %v", fix.ExtraModalities)
	}
}

func TestForUnknownStudy(t *testing.T) {
	if _, ok := For("OSA01"); ok {
		t.Error("Expected no correction for OSA01")
	}
}
