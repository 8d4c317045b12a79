package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"union-site-backend/internal/gateway"
)

func TestDiskUploadAndMove(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}
	ctx := context.Background()

	url, err := disk.Upload(ctx, "media", "covers/1.jpg", []byte("jpeg"), "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "/uploads/media/covers/1.jpg" {
		t.Errorf("url = %q", url)
	}

	if err := disk.Move(ctx, "media", "covers/1.jpg", "covers/renamed.jpg"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(disk.root, "media", "covers", "renamed.jpg"))
	if err != nil || string(data) != "jpeg" {
		t.Fatalf("moved object unreadable: %v", err)
	}

	if err := disk.Delete(ctx, "media", "covers/renamed.jpg"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := disk.Delete(ctx, "media", "covers/renamed.jpg"); !errors.Is(err, gateway.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}

func TestDiskRejectsTraversal(t *testing.T) {
	disk, err := NewDisk(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatalf("NewDisk: %v", err)
	}

	if _, err := disk.Upload(context.Background(), "media", "../../etc/passwd", []byte("x"), ""); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("err = %v, want ErrInvalidPath", err)
	}
}
