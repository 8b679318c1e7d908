package domain

// BannerData is the state of the dismissible notice banner.
type BannerData struct {
	Show      bool   `json:"show"`
	BannerKey string `json:"bannerKey,omitempty"`
	Text      string `json:"text"`
	Link      string `json:"link,omitempty"`
	LinkText  string `json:"linkText,omitempty"`
}

// BannerUpdate is a partial BannerData; nil fields leave the current value alone.
type BannerUpdate struct {
	Show      *bool   `json:"show,omitempty"`
	BannerKey *string `json:"bannerKey,omitempty"`
	Text      *string `json:"text,omitempty"`
	Link      *string `json:"link,omitempty"`
	LinkText  *string `json:"linkText,omitempty"`
}
