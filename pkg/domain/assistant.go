package domain

type Assistant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
