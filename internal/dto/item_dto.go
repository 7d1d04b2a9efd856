package dto

type CreateItemRequest struct {
	Name string `json:"name" validate:"required,min=2,max=120"`
	Unit string `json:"unit" validate:"required,oneof=kg pcs ltr"`
}

type ItemResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}
