// Package seed loads the placeholder catalog the marketplace starts with.
package seed

import (
	"context"
	_ "embed"
	"time"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

type Fixtures struct {
	Companies      []companyFixture       `yaml:"companies"`
	Jobs           []jobFixture           `yaml:"jobs"`
	Engineers      []engineerFixture      `yaml:"engineers"`
	Ratings        []ratingFixture        `yaml:"ratings"`
	CompanyRatings []companyRatingFixture `yaml:"company_ratings"`
	Applications   []applicationFixture   `yaml:"applications"`
}

type companyFixture struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Email           string `yaml:"email"`
	Industry        string `yaml:"industry"`
	Description     string `yaml:"description"`
	Location        string `yaml:"location"`
	EstablishedYear int    `yaml:"established_year"`
	EmployeeCount   int    `yaml:"employee_count"`
}

type jobFixture struct {
	ID          string   `yaml:"id"`
	CompanyID   string   `yaml:"company_id"`
	Company     string   `yaml:"company"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Salary      string   `yaml:"salary"`
	Location    string   `yaml:"location"`
	Skills      []string `yaml:"skills"`
	PostedAt    string   `yaml:"posted_at"`
	Type        string   `yaml:"type"`
	Status      string   `yaml:"status"`
}

type engineerFixture struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Email         string   `yaml:"email"`
	Bio           string   `yaml:"bio"`
	Skills        []string `yaml:"skills"`
	Experience    int      `yaml:"experience"`
	HourlyRate    int      `yaml:"hourly_rate"`
	Availability  string   `yaml:"availability"`
	AvailableFrom string   `yaml:"available_from"`
	MatchScore    int      `yaml:"match_score"`
	Preferences   struct {
		WorkLocation string `yaml:"work_location"`
		WorkType     string `yaml:"work_type"`
		Salary       string `yaml:"salary"`
	} `yaml:"preferences"`
}

type ratingFixture struct {
	ID          string   `yaml:"id"`
	EngineerID  string   `yaml:"engineer_id"`
	ProjectName string   `yaml:"project_name"`
	CompanyName string   `yaml:"company_name"`
	Score       float64  `yaml:"score"`
	Comment     string   `yaml:"comment"`
	EvaluatedAt string   `yaml:"evaluated_at"`
	Skills      []string `yaml:"skills"`
	Duration    string   `yaml:"duration"`
}

type companyRatingFixture struct {
	ID           string   `yaml:"id"`
	CompanyID    string   `yaml:"company_id"`
	EngineerName string   `yaml:"engineer_name"`
	ProjectName  string   `yaml:"project_name"`
	Score        float64  `yaml:"score"`
	Comment      string   `yaml:"comment"`
	EvaluatedAt  string   `yaml:"evaluated_at"`
	Skills       []string `yaml:"skills"`
	Duration     string   `yaml:"duration"`
}

type applicationFixture struct {
	ID           string    `yaml:"id"`
	EngineerID   string    `yaml:"engineer_id"`
	EngineerName string    `yaml:"engineer_name"`
	JobID        string    `yaml:"job_id"`
	JobTitle     string    `yaml:"job_title"`
	CompanyID    string    `yaml:"company_id"`
	Company      string    `yaml:"company"`
	AppliedAt    time.Time `yaml:"applied_at"`
	Status       string    `yaml:"status"`
	Note         string    `yaml:"note"`
	Resume       string    `yaml:"resume"`
}

// Load parses the embedded fixture file.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse seed fixtures")
	}
	return &f, nil
}

// Apply inserts the fixtures. Rows that already exist are left alone, so it is safe to run on every start.
func Apply(ctx context.Context, db *gorm.DB, f *Fixtures, logger *zap.Logger) error {
	applicants := make(map[string]int)
	for _, a := range f.Applications {
		applicants[a.JobID]++
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// a fresh session per Create, otherwise the statement stays bound to the first table
		insert := func(value any) *gorm.DB {
			return tx.Session(&gorm.Session{}).Clauses(clause.OnConflict{DoNothing: true}).Create(value)
		}

		for _, c := range f.Companies {
			company := models.Company{
				ID:              c.ID,
				Name:            c.Name,
				Email:           c.Email,
				Industry:        c.Industry,
				Description:     c.Description,
				Location:        c.Location,
				EstablishedYear: c.EstablishedYear,
				EmployeeCount:   c.EmployeeCount,
			}
			if err := insert(&company).Error; err != nil {
				return errors.Wrapf(err, "seed company %s", c.ID)
			}
		}

		for _, j := range f.Jobs {
			job := models.Job{
				ID:              j.ID,
				CompanyID:       j.CompanyID,
				CompanyName:     j.Company,
				Title:           j.Title,
				Description:     j.Description,
				Salary:          j.Salary,
				Location:        j.Location,
				Skills:          j.Skills,
				Type:            j.Type,
				PostedAt:        j.PostedAt,
				Status:          models.JobStatus(j.Status),
				ApplicantsCount: applicants[j.ID],
			}
			if err := insert(&job).Error; err != nil {
				return errors.Wrapf(err, "seed job %s", j.ID)
			}
		}

		for _, e := range f.Engineers {
			engineer := models.Engineer{
				ID:            e.ID,
				Name:          e.Name,
				Email:         e.Email,
				Bio:           e.Bio,
				Skills:        e.Skills,
				Experience:    e.Experience,
				HourlyRate:    e.HourlyRate,
				Availability:  e.Availability,
				AvailableFrom: e.AvailableFrom,
				MatchScore:    e.MatchScore,
				Preferences: models.EngineerPreferences{
					WorkLocation: e.Preferences.WorkLocation,
					WorkType:     e.Preferences.WorkType,
					Salary:       e.Preferences.Salary,
				},
			}
			if err := insert(&engineer).Error; err != nil {
				return errors.Wrapf(err, "seed engineer %s", e.ID)
			}
		}

		for _, r := range f.Ratings {
			rating := models.Rating{
				ID:          r.ID,
				EngineerID:  r.EngineerID,
				ProjectName: r.ProjectName,
				CompanyName: r.CompanyName,
				Score:       r.Score,
				Comment:     r.Comment,
				EvaluatedAt: r.EvaluatedAt,
				Skills:      r.Skills,
				Duration:    r.Duration,
			}
			if err := insert(&rating).Error; err != nil {
				return errors.Wrapf(err, "seed rating %s", r.ID)
			}
		}

		for _, r := range f.CompanyRatings {
			rating := models.CompanyRating{
				ID:           r.ID,
				CompanyID:    r.CompanyID,
				EngineerName: r.EngineerName,
				ProjectName:  r.ProjectName,
				Score:        r.Score,
				Comment:      r.Comment,
				EvaluatedAt:  r.EvaluatedAt,
				Skills:       r.Skills,
				Duration:     r.Duration,
			}
			if err := insert(&rating).Error; err != nil {
				return errors.Wrapf(err, "seed company rating %s", r.ID)
			}
		}

		for _, a := range f.Applications {
			app := models.Application{
				ID:           a.ID,
				EngineerID:   a.EngineerID,
				EngineerName: a.EngineerName,
				JobID:        a.JobID,
				JobTitle:     a.JobTitle,
				CompanyID:    a.CompanyID,
				CompanyName:  a.Company,
				AppliedAt:    a.AppliedAt,
				Status:       models.ApplicationStatus(a.Status),
				Note:         a.Note,
				Resume:       a.Resume,
			}
			if err := insert(&app).Error; err != nil {
				return errors.Wrapf(err, "seed application %s", a.ID)
			}
		}

		logger.Info("seed data applied",
			zap.Int("companies", len(f.Companies)),
			zap.Int("jobs", len(f.Jobs)),
			zap.Int("engineers", len(f.Engineers)),
			zap.Int("ratings", len(f.Ratings)),
			zap.Int("company_ratings", len(f.CompanyRatings)),
			zap.Int("applications", len(f.Applications)),
		)
		return nil
	})
}
