package disk

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreRoundTrip(t *testing.T) {
	store := &DiskStore{Root: t.TempDir()}
	payload := []byte("fake jpeg bytes")

	ref, err := store.Save("faces", payload, "jpg")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if filepath.IsAbs(ref) {
		t.Errorf("reference %q is absolute, want relative", ref)
	}
	if !strings.HasSuffix(ref, ".jpg") {
		t.Errorf("reference %q missing extension", ref)
	}

	read, err := store.Read(ref)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(read) != string(payload) {
		t.Error("read payload differs from saved payload")
	}

	if err := store.Delete(ref); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Read(ref); err == nil {
		t.Error("Read() succeeded after Delete()")
	}
}

func TestDiskStoreSaveStripsDotPrefix(t *testing.T) {
	store := &DiskStore{Root: t.TempDir()}
	ref, err := store.Save("voices", []byte("riff"), ".wav")
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if strings.Contains(ref, "..wav") {
		t.Errorf("reference %q has a doubled extension separator", ref)
	}
}
