package models

// Sign represents a traffic sign catalog entry
type Sign struct {
	ID          string `json:"id"`     // same as Number
	Number      string `json:"number"` // "1.11.1"
	Title       string `json:"title"`
	ImagePath   string `json:"imagePath"`
	Description string `json:"description"`
}

// SignCategory is a named group of signs
type SignCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Signs []Sign `json:"signs"`
}

// Markup represents a road markup catalog entry
type Markup struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	ImagePath   string `json:"imagePath"`
	Description string `json:"description"`
}

// MarkupCategory is a named group of markups
type MarkupCategory struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Markups []Markup `json:"markups"`
}
