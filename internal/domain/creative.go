package domain

type LinkData struct {
	ImageHash string `json:"image_hash,omitempty"`
	Link      string `json:"link,omitempty"`
	Message   string `json:"message,omitempty"`
	Name      string `json:"name,omitempty"`
	Picture   string `json:"picture,omitempty"`
}

type VideoData struct {
	ImageURL string `json:"image_url,omitempty"`
	VideoID  string `json:"video_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Message  string `json:"message,omitempty"`
}

type ObjectStorySpec struct {
	LinkData  *LinkData  `json:"link_data,omitempty"`
	VideoData *VideoData `json:"video_data,omitempty"`
}

// Creative é o metadado de criativo de um anúncio
type Creative struct {
	ID              string           `json:"id"`
	Name            string           `json:"name,omitempty"`
	Title           string           `json:"title,omitempty"`
	Body            string           `json:"body,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	VideoID         string           `json:"video_id,omitempty"`
	ThumbnailURL    string           `json:"thumbnail_url,omitempty"`
	ObjectStorySpec *ObjectStorySpec `json:"object_story_spec,omitempty"`
}
