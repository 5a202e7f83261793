package service

import "context"

// HealthService проверяет, что хранилище доступно.
type HealthService struct {
	repo HealthRepo
}

func NewHealthService(repo HealthRepo) *HealthService {
	return &HealthService{repo: repo}
}

// Check возвращает ошибку репозитория как есть (обычно ErrUnavailable).
func (s *HealthService) Check(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
