package health

import (
	"context"
	"errors"
	"fmt"
)

// Checker — проверка здоровья зависимости.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase описывает проверку готовности.
type ReadinessUseCase interface {
	Ready(ctx context.Context) error
}

type service struct {
	checkers []Checker
}

// NewService собирает проверки зависимостей. Nil-проверки (ненастроенные необязательные
// зависимости) пропускаются.
func NewService(checkers ...Checker) ReadinessUseCase {
	s := &service{}
	for _, ch := range checkers {
		if ch != nil {
			s.checkers = append(s.checkers, ch)
		}
	}
	return s
}

// Ready запускает все проверки и перечисляет упавшие зависимости по имени.
func (s *service) Ready(ctx context.Context) error {
	var errs []error
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
		}
	}
	return errors.Join(errs...)
}
