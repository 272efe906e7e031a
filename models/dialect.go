package models

// Dialect is a selectable target language for content adaptation.
type Dialect struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
