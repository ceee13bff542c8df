package services

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	SortByDate  = "date"
	SortByScore = "score"
)

type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// RatingSummary is an engineer's evaluation list. Average and Count cover
// every rating of the engineer; the search only narrows Ratings.
type RatingSummary struct {
	Ratings []models.Rating `json:"ratings"`
	Average float64         `json:"average"`
	Count   int             `json:"count"`
}

// CompanyRatingSummary is the company-side counterpart of RatingSummary.
type CompanyRatingSummary struct {
	Ratings []models.CompanyRating `json:"ratings"`
	Average float64                `json:"average"`
	Count   int                    `json:"count"`
}

// ratedFields is what search and sort read from a rating row.
type ratedFields struct {
	score float64
	date  string
	names []string
}

func engineerRatingFields(r models.Rating) ratedFields {
	return ratedFields{score: r.Score, date: r.EvaluatedAt, names: []string{r.ProjectName, r.CompanyName}}
}

func companyRatingFields(r models.CompanyRating) ratedFields {
	return ratedFields{score: r.Score, date: r.EvaluatedAt, names: []string{r.ProjectName, r.EngineerName}}
}

// ListForEngineer searches an engineer's ratings by project or company name.
func (s *RatingService) ListForEngineer(ctx context.Context, engineerID, query, sortBy string) (*RatingSummary, error) {
	var ratings []models.Rating
	if err := s.DB.WithContext(ctx).Where("engineer_id = ?", engineerID).Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load ratings")
	}
	return &RatingSummary{
		Ratings: searchAndSort(ratings, query, sortBy, engineerRatingFields),
		Average: averageScore(ratings, engineerRatingFields),
		Count:   len(ratings),
	}, nil
}

// ListForCompany searches the ratings a company received by project or engineer name.
func (s *RatingService) ListForCompany(ctx context.Context, companyID, query, sortBy string) (*CompanyRatingSummary, error) {
	var ratings []models.CompanyRating
	if err := s.DB.WithContext(ctx).Where("company_id = ?", companyID).Find(&ratings).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load company ratings")
	}
	return &CompanyRatingSummary{
		Ratings: searchAndSort(ratings, query, sortBy, companyRatingFields),
		Average: averageScore(ratings, companyRatingFields),
		Count:   len(ratings),
	}, nil
}

func searchAndSort[T any](all []T, query, sortBy string, fields func(T) ratedFields) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	matched := make([]T, 0, len(all))
	for _, r := range all {
		if q == "" || nameContains(fields(r).names, q) {
			matched = append(matched, r)
		}
	}

	switch sortBy {
	case SortByScore:
		sort.SliceStable(matched, func(i, j int) bool { return fields(matched[i]).score > fields(matched[j]).score })
	default:
		// dates are ISO formatted, so string order is date order
		sort.SliceStable(matched, func(i, j int) bool { return fields(matched[i]).date > fields(matched[j]).date })
	}
	return matched
}

func nameContains(names []string, q string) bool {
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), q) {
			return true
		}
	}
	return false
}

// averageScore is rounded to one decimal.
func averageScore[T any](ratings []T, fields func(T) ratedFields) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += fields(r).score
	}
	return math.Round(sum/float64(len(ratings))*10) / 10
}
