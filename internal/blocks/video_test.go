package blocks

import (
	"strings"
	"testing"

	"union-site-backend/internal/models"
)

func TestYouTubeEmbedURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "https://www.youtube.com/embed/dQw4w9WgXcQ"},
		{"https://example.com/video/123", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := youtubeEmbedURL(tt.input); got != tt.want {
			t.Fatalf("youtubeEmbedURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestVKEmbedURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://vk.com/video-12345_67890", "https://vk.com/video_ext.php?oid=-12345&id=67890&hd=2"},
		{"https://vk.com/video_ext.php?oid=-12345&id=67890", "https://vk.com/video_ext.php?oid=-12345&id=67890&hd=2"},
		{"https://vkvideo.ru/video-12345_67890", "https://vk.com/video_ext.php?oid=-12345&id=67890&hd=2"},
		{"https://youtube.com/watch?v=abc", ""},
	}
	for _, tt := range tests {
		if got := vkEmbedURL(tt.input); got != tt.want {
			t.Fatalf("vkEmbedURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderVideoTabSwitcherWhenBothPresent(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeVideo, Data: map[string]interface{}{
			KeyYouTube: "https://youtu.be/dQw4w9WgXcQ",
			KeyVK:      "https://vk.com/video-1_2",
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, `data-default="youtube"`) {
		t.Fatalf("tab switcher should default to the first non-empty platform: %q", got)
	}
	if strings.Count(got, "<iframe") != 2 {
		t.Fatalf("expected both embeds, got %q", got)
	}
}

func TestRenderVideoNothingWhenNeitherMatches(t *testing.T) {
	r := NewRenderer(Options{Prefix: "article"})

	got, err := r.Render(models.BlockList{
		{Type: TypeVideo, Data: map[string]interface{}{
			KeyYouTube: "https://example.com/not-a-video",
			KeyVK:      "",
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no output for unmatched video URLs, got %q", got)
	}
}
