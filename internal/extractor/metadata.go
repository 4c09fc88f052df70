package extractor

import (
	"strings"

	"ytwebhook/pkg/models"
)

const maxCaptionTags = 10

// Synthesize maps the engine's raw info dict onto the normalized
// metadata record. Fields the engine omits keep their zero value, so
// the response never carries nulls.
func Synthesize(info map[string]any) models.Metadata {
	return models.Metadata{
		Title:       stringField(info, "title"),
		Description: stringField(info, "description"),
		Tags:        stringSliceField(info, "tags"),
		Duration:    intField(info, "duration"),
		Uploader:    stringField(info, "uploader"),
		UploadDate:  stringField(info, "upload_date"),
		VideoID:     stringField(info, "id"),
		Thumbnail:   stringField(info, "thumbnail"),
		ViewCount:   int64Field(info, "view_count"),
	}
}

// BuildCaption renders the share caption: the title, a blank line,
// then up to ten hashtags with internal whitespace removed
func BuildCaption(meta models.Metadata) string {
	tags := meta.Tags
	if len(tags) > maxCaptionTags {
		tags = tags[:maxCaptionTags]
	}

	hashtags := make([]string, 0, len(tags))
	for _, tag := range tags {
		compact := strings.Join(strings.Fields(tag), "")
		if compact == "" {
			continue
		}
		hashtags = append(hashtags, "#"+compact)
	}

	if len(hashtags) == 0 {
		return meta.Title
	}

	return meta.Title + "\n\n" + strings.Join(hashtags, " ")
}

func stringField(info map[string]any, key string) string {
	if v, ok := info[key].(string); ok {
		return v
	}
	return ""
}

func intField(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func int64Field(info map[string]any, key string) int64 {
	switch v := info[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func stringSliceField(info map[string]any, key string) []string {
	out := []string{}
	raw, ok := info[key].([]any)
	if !ok {
		return out
	}
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
