package blocks

import (
	"fmt"
	"regexp"
	"strings"

	"union-site-backend/internal/models"
)

var (
	reYouTube = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|embed/|shorts/)|youtu\.be/)([A-Za-z0-9_-]{6,11})`)
	reVKVideo = regexp.MustCompile(`vk(?:video)?\.(?:com|ru)/(?:video_ext\.php\?oid=(-?\d+)&id=(\d+)|video(-?\d+)_(\d+))`)
)

// RegisterVideo registers the default video renderer on the provided registry.
func RegisterVideo(reg *Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(TypeVideo, renderVideo)
}

// renderVideo derives platform embeds from submitted URLs. A URL that matches
// neither platform pattern contributes nothing; when both platforms are
// present the output is a tab switcher defaulting to the first non-empty one.
func renderVideo(ctx RenderContext, prefix string, block models.Block) string {
	data := blockData(block)

	youtubeEmbed := youtubeEmbedURL(getString(data, KeyYouTube))
	vkEmbed := vkEmbedURL(getString(data, KeyVK))

	if youtubeEmbed == "" && vkEmbed == "" {
		return ""
	}

	videoClass := fmt.Sprintf("%s__video", prefix)

	if youtubeEmbed != "" && vkEmbed != "" {
		var sb strings.Builder
		sb.WriteString(`<div class="` + videoClass + ` ` + videoClass + `--tabs" data-default="youtube">`)
		sb.WriteString(`<button class="` + videoClass + `-tab" data-platform="youtube">YouTube</button>`)
		sb.WriteString(`<button class="` + videoClass + `-tab" data-platform="vk">VK</button>`)
		sb.WriteString(videoFrame(videoClass, "youtube", youtubeEmbed))
		sb.WriteString(videoFrame(videoClass, "vk", vkEmbed))
		sb.WriteString(`</div>`)
		return sb.String()
	}

	if youtubeEmbed != "" {
		return `<div class="` + videoClass + `">` + videoFrame(videoClass, "youtube", youtubeEmbed) + `</div>`
	}
	return `<div class="` + videoClass + `">` + videoFrame(videoClass, "vk", vkEmbed) + `</div>`
}

func videoFrame(videoClass, platform, src string) string {
	return `<iframe class="` + videoClass + `-frame" data-platform="` + platform + `" src="` + src +
		`" frameborder="0" allow="autoplay; encrypted-media; picture-in-picture" allowfullscreen></iframe>`
}

func youtubeEmbedURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	match := reYouTube.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}
	return "https://www.youtube.com/embed/" + match[1]
}

func vkEmbedURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}
	match := reVKVideo.FindStringSubmatch(rawURL)
	if match == nil {
		return ""
	}

	oid, id := match[1], match[2]
	if oid == "" {
		oid, id = match[3], match[4]
	}
	return fmt.Sprintf("https://vk.com/video_ext.php?oid=%s&id=%s&hd=2", oid, id)
}
