package dto

// PropertyRequest representa el request para crear una propiedad
type PropertyRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=10000"`
	Address     string   `json:"address"`
	City        string   `json:"city" binding:"required"`
	ProjectName string   `json:"projectName"`
	Category    string   `json:"category"`
	Type        string   `json:"type" binding:"required"`
	Status      string   `json:"status"`
	Price       float64  `json:"price" binding:"gte=0"`
	Size        float64  `json:"size" binding:"gte=0"`
	Bedrooms    int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int      `json:"bathrooms" binding:"gte=0"`
	Amenities   []string `json:"amenities"`
	HighROI     bool     `json:"highROI"`
	Verified    bool     `json:"verified"`
	AgentID     string   `json:"agentId"`
	Images      []string `json:"images"`
}

// PropertyUpdateRequest representa el request para actualizar una propiedad.
// Los campos nil no se modifican.
type PropertyUpdateRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description" binding:"omitempty,max=10000"`
	Address     *string   `json:"address"`
	City        *string   `json:"city" binding:"omitempty,min=1"`
	ProjectName *string   `json:"projectName"`
	Category    *string   `json:"category"`
	Type        *string   `json:"type" binding:"omitempty,min=1"`
	Status      *string   `json:"status"`
	Price       *float64  `json:"price" binding:"omitempty,gte=0"`
	Size        *float64  `json:"size" binding:"omitempty,gte=0"`
	Bedrooms    *int      `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms   *int      `json:"bathrooms" binding:"omitempty,gte=0"`
	Amenities   *[]string `json:"amenities"`
	HighROI     *bool     `json:"highROI"`
	Verified    *bool     `json:"verified"`
	AgentID     *string   `json:"agentId"`
	Images      *[]string `json:"images"`
}
