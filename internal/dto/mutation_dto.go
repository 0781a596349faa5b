package dto

type UpdateCategoryRequest struct {
	Category string `json:"category" validate:"required"`
}

type SetReviewedRequest struct {
	Reviewed bool `json:"reviewed"`
}
