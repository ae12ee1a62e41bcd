package feedback

import (
	"context"
	"strconv"
	"strings"

	"github.com/apnaswastha/registry-api/internal/model"
	"github.com/apnaswastha/registry-api/internal/repository"
)

type Service struct {
	repo    repository.FeedbackRepository
	workers repository.WorkerRepository
}

func NewService(repo repository.FeedbackRepository, workers repository.WorkerRepository) *Service {
	return &Service{repo: repo, workers: workers}
}

// CreateFeedback records feedback for an existing worker. The rating is
// stored as submitted; range checking is deliberately absent.
func (s *Service) CreateFeedback(ctx context.Context, req *model.CreateFeedbackRequest) (*model.Feedback, error) {
	healthID := strings.TrimSpace(req.HealthID)
	if _, err := s.workers.GetByHealthID(ctx, healthID); err != nil {
		return nil, err
	}

	feedback := &model.Feedback{
		WorkerHealthID: healthID,
		Rating:         parseRating(req.Rating),
		Message:        strings.TrimSpace(req.Message),
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, err
	}
	return feedback, nil
}

func parseRating(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case int:
		return val
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(val))
		return n
	default:
		return 0
	}
}
