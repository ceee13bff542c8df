package dtos

// JobListQuery is bound from the GET /api/jobs query string.
type JobListQuery struct {
	Query     string   `form:"q"`
	Location  string   `form:"location"`
	Skills    []string `form:"skills"`
	MinSalary int      `form:"minSalary" binding:"min=0"`
	Page      int      `form:"page" binding:"min=0"`
}

type ProjectRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Salary      string   `json:"salary" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Type        string   `json:"type"`
	Skills      []string `json:"skills"`

	// Optional; new projects start as draft.
	Status string `json:"status" binding:"omitempty,oneof=draft open in_progress completed closed"`
}
