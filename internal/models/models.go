package models

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeEngineer UserType = "engineer"
	UserTypeCompany  UserType = "company"
)

// EngineerPreferences are the working conditions an engineer advertises to companies.
type EngineerPreferences struct {
	WorkLocation string `json:"work_location"`
	WorkType     string `json:"work_type"`
	Salary       string `json:"salary"`
}

// WizardPreferences are recorded when the onboarding wizard is submitted.
type WizardPreferences struct {
	DesiredSalary    string   `json:"desired_salary"`
	DesiredLocations []string `json:"desired_locations"`
	Skills           []string `json:"skills"`
}

type Engineer struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name          string              `gorm:"not null" json:"name"`
	Email         string              `gorm:"uniqueIndex;not null" json:"email"`
	Bio           string              `gorm:"type:text" json:"bio"`
	Skills        []string            `gorm:"serializer:json" json:"skills"`
	Experience    int                 `json:"experience"`
	HourlyRate    int                 `json:"hourly_rate"`
	Availability  string              `json:"availability"`
	AvailableFrom string              `json:"available_from"`
	ImageURL      string              `json:"image_url,omitempty"`
	Preferences   EngineerPreferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`

	// Placeholder fit value shown to companies; not computed.
	MatchScore int `json:"match_score"`

	Wizard *WizardPreferences `gorm:"serializer:json" json:"wizard,omitempty"`
}

type Company struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name            string `gorm:"uniqueIndex;not null" json:"name"`
	Email           string `gorm:"not null" json:"email"`
	Industry        string `json:"industry"`
	Description     string `gorm:"type:text" json:"description"`
	Location        string `json:"location"`
	EstablishedYear int    `json:"established_year"`
	EmployeeCount   int    `json:"employee_count"`
	WebsiteURL      string `json:"website_url,omitempty"`
	LogoURL         string `json:"logo_url,omitempty"`
	ContactPerson   string `json:"contact_person"`
	ContactPhone    string `json:"contact_phone"`

	// 'omitempty' prevents infinite loops when fetching a Job -> Company -> Jobs -> ...
	Jobs []Job `json:"jobs,omitempty"`
}

type JobStatus string

const (
	JobStatusDraft      JobStatus = "draft"
	JobStatusOpen       JobStatus = "open"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusClosed     JobStatus = "closed"
)

// Job is both an engineer-facing posting and a company-side project.
type Job struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign Key
	CompanyID   string `gorm:"index" json:"company_id"`
	CompanyName string `json:"company"`

	Title           string    `gorm:"not null" json:"title"`
	Description     string    `gorm:"type:text" json:"description"`
	Salary          string    `json:"salary"`
	Location        string    `json:"location"`
	Skills          []string  `gorm:"serializer:json" json:"skills"`
	Type            string    `json:"type"`
	PostedAt        string    `json:"posted_at"`
	Status          JobStatus `gorm:"default:'open'" json:"status"`
	ApplicantsCount int       `json:"applicants_count"`
}

type ApplicationStatus string

const (
	ApplicationPending             ApplicationStatus = "pending"
	ApplicationDocumentScreening   ApplicationStatus = "document_screening"
	ApplicationInterviewScheduling ApplicationStatus = "interview_scheduling"
	ApplicationAccepted            ApplicationStatus = "accepted"
	ApplicationRejected            ApplicationStatus = "rejected"
)

// ApplicationStatusLabels holds the display label of every selection stage.
var ApplicationStatusLabels = map[ApplicationStatus]string{
	ApplicationPending:             "選考待ち",
	ApplicationDocumentScreening:   "書類選考中",
	ApplicationInterviewScheduling: "面接調整中",
	ApplicationAccepted:            "合格",
	ApplicationRejected:            "不合格",
}

func (s ApplicationStatus) Valid() bool {
	_, ok := ApplicationStatusLabels[s]
	return ok
}

type Application struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	EngineerID   string            `gorm:"index" json:"engineer_id"`
	EngineerName string            `json:"engineer_name"`
	JobID        string            `gorm:"index" json:"job_id"`
	JobTitle     string            `json:"job_title"`
	CompanyID    string            `gorm:"index" json:"company_id"`
	CompanyName  string            `json:"company"`
	AppliedAt    time.Time         `json:"applied_at"`
	Status       ApplicationStatus `gorm:"default:'pending'" json:"status"`
	Note         string            `gorm:"type:text" json:"note"`
	Resume       string            `json:"resume,omitempty"`
}

type Rating struct {
	ID          string   `gorm:"primaryKey" json:"id"`
	EngineerID  string   `gorm:"index" json:"engineer_id"`
	ProjectName string   `json:"project_name"`
	CompanyName string   `json:"company_name"`
	Score       float64  `json:"score"`
	Comment     string   `gorm:"type:text" json:"comment"`
	EvaluatedAt string   `json:"evaluated_at"`
	Skills      []string `gorm:"serializer:json" json:"skills"`
	Duration    string   `json:"duration"`
}

// CompanyRating is an evaluation a company received from an engineer it worked with.
type CompanyRating struct {
	ID           string   `gorm:"primaryKey" json:"id"`
	CompanyID    string   `gorm:"index" json:"company_id"`
	EngineerName string   `json:"engineer_name"`
	ProjectName  string   `json:"project_name"`
	Score        float64  `json:"score"`
	Comment      string   `gorm:"type:text" json:"comment"`
	EvaluatedAt  string   `json:"evaluated_at"`
	Skills       []string `gorm:"serializer:json" json:"skills"`
	Duration     string   `json:"duration"`
}

// Offer is a position a company proposes directly to an engineer.
type Offer struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CompanyID    string `gorm:"index" json:"company_id"`
	CompanyName  string `json:"company"`
	EngineerID   string `gorm:"index" json:"engineer_id"`
	Position     string `json:"position"`
	Salary       string `json:"salary"`
	WorkLocation string `json:"work_location"`
	WorkType     string `json:"work_type"`
	StartDate    string `json:"start_date"`
	Message      string `gorm:"type:text" json:"message"`
}

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionEntry is one key of a session's persisted client state.
type SessionEntry struct {
	SessionID string `gorm:"primaryKey;size:64"`
	Key       string `gorm:"primaryKey;column:entry_key;size:32"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}
