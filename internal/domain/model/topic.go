package model

type Topic struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
