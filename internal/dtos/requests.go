package dtos

import "encoding/json"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"userType" binding:"required,oneof=engineer company"`
}

type ApplicationUpdateRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=pending document_screening interview_scheduling accepted rejected"`
	Note   *string `json:"note"`
}

type MatchingQuery struct {
	Skills        []string `form:"skills"`
	ExperienceMin int      `form:"experienceMin" binding:"min=0"`
	WorkType      string   `form:"workType"`
}

type LinkRequest struct {
	EngineerID string `json:"engineerId" binding:"required"`
	JobID      string `json:"jobId" binding:"required"`
}

type OfferRequest struct {
	Position     string `json:"position" binding:"required"`
	Salary       string `json:"salary" binding:"required"`
	WorkLocation string `json:"workLocation" binding:"required"`
	WorkType     string `json:"workType" binding:"required,oneof=正社員 契約社員 業務委託"`
	StartDate    string `json:"startDate" binding:"required,datetime=2006-01-02"`
	Message      string `json:"message" binding:"required"`
}

type RatingQuery struct {
	Query string `form:"q"`
	Sort  string `form:"sort" binding:"omitempty,oneof=date score"`
}

type EngineerProfileRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email" binding:"required,email"`
	Bio           string   `json:"bio"`
	Skills        []string `json:"skills"`
	Experience    int      `json:"experience" binding:"min=0"`
	HourlyRate    int      `json:"hourlyRate" binding:"min=0"`
	Availability  string   `json:"availability"`
	AvailableFrom string   `json:"availableFrom"`
	ImageURL      string   `json:"imageUrl" binding:"omitempty,url"`
	WorkLocation  string   `json:"workLocation"`
	WorkType      string   `json:"workType"`
	Salary        string   `json:"salary"`
}

type CompanyProfileRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Description   string `json:"description"`
	Industry      string `json:"industry"`
	EmployeeCount int    `json:"employeeCount" binding:"min=0"`
	Location      string `json:"location"`
	Website       string `json:"website" binding:"omitempty,url"`
	ContactPerson string `json:"contactPerson"`
	ContactPhone  string `json:"contactPhone"`
}

type ChatRequest struct {
	Content string `json:"content"`
}

// WizardAnswerRequest carries a string or a list of strings.
type WizardAnswerRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}
