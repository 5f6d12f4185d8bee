package models

// MenuItem is a single navigation entry.
type MenuItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Route       string `json:"route"`
	Icon        string `json:"icon"`
	Breadcrumbs bool   `json:"breadcrumbs"`
}

// MenuGroup is an ordered collection of items under one heading.
type MenuGroup struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Items []MenuItem `json:"items"`
}
