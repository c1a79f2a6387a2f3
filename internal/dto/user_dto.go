package dto

type CreateUserRequest struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	DevzappLink *string `json:"devzappLink"`
}

// UpdateUserRequest fields are optional; nil pointers are left
// untouched. An empty devzappLink clears the stored link.
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	Name        *string `json:"name"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	DevzappLink *string `json:"devzappLink"`
}
