package model

import "encoding/json"

// GalleryImage is a picture shown on the gallery page.
type GalleryImage struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url"`
}

// Award is a distinction received by the restaurant.
type Award struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// Review is a press or customer quote.
type Review struct {
	ID      int    `json:"id,omitempty"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Source  string `json:"source,omitempty"`
}

// Gallery bundles everything on the gallery page.
type Gallery struct {
	Images  []GalleryImage `json:"images"`
	Awards  []Award        `json:"awards"`
	Reviews []Review       `json:"reviews"`
}

// Empty reports whether the gallery has no content at all.
func (g Gallery) Empty() bool {
	return len(g.Images) == 0 && len(g.Awards) == 0 && len(g.Reviews) == 0
}

// UploadedImage is the backend response to a multipart gallery upload.
type UploadedImage struct {
	Message string `json:"message"`
	ID      int    `json:"id"`
	URL     string `json:"url"`
}

// NewsletterSignup is an email-capture record.
type NewsletterSignup struct {
	ID         int      `json:"id"`
	Email      string   `json:"email"`
	SignupDate DateTime `json:"signup_date"`
}

// Founder is one entry of the about page's founder list.
type Founder struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AboutInfo is the about page copy.
type AboutInfo struct {
	ID         int       `json:"id,omitempty"`
	AboutText  string    `json:"about_text,omitempty"`
	History    string    `json:"history"`
	Mission    string    `json:"mission,omitempty"`
	Commitment string    `json:"commitment,omitempty"`
	Founders   []Founder `json:"founders"`
}

// Empty reports whether the backend returned a placeholder record.
func (a AboutInfo) Empty() bool {
	return a.History == "" && a.AboutText == "" && a.Mission == "" && len(a.Founders) == 0
}

// UnmarshalJSON also accepts the backend's legacy "url" and "caption" keys.
func (g *GalleryImage) UnmarshalJSON(data []byte) error {
	type plain GalleryImage
	var aux struct {
		plain
		URL     string `json:"url"`
		Caption string `json:"caption"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*g = GalleryImage(aux.plain)
	if g.ImageURL == "" {
		g.ImageURL = aux.URL
	}
	if g.Title == "" {
		g.Title = aux.Caption
	}
	return nil
}

// UnmarshalJSON also accepts the backend's legacy "review" key.
func (r *Review) UnmarshalJSON(data []byte) error {
	type plain Review
	var aux struct {
		plain
		Text string `json:"review"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Review(aux.plain)
	if r.Content == "" {
		r.Content = aux.Text
	}
	return nil
}

// UnmarshalJSON also accepts "bio" in place of "description".
func (f *Founder) UnmarshalJSON(data []byte) error {
	type plain Founder
	var aux struct {
		plain
		Bio string `json:"bio"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*f = Founder(aux.plain)
	if f.Description == "" {
		f.Description = aux.Bio
	}
	return nil
}
