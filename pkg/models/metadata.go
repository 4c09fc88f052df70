package models

// Metadata represents the normalized record for a downloaded video.
// Fields the engine omits keep their zero value; Tags is never nil.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Duration    int      `json:"duration"`
	Uploader    string   `json:"uploader"`
	UploadDate  string   `json:"upload_date"`
	VideoID     string   `json:"video_id"`
	Thumbnail   string   `json:"thumbnail"`
	ViewCount   int64    `json:"view_count"`
}
