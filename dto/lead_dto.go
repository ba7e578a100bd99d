package dto

// LeadRequest representa el request del formulario público de consulta
type LeadRequest struct {
	Name       string `json:"name" binding:"required,max=120"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"max=40"`
	Message    string `json:"message" binding:"max=2000"`
	PropertyID string `json:"propertyId"`
	Source     string `json:"source" binding:"max=60"`
}
