package service

import (
	"context"

	"go.uber.org/zap"

	"ecoruta/internal/nav"
	internalredis "ecoruta/internal/redis"
)

// NavigationService keeps each user's current screen and applies the
// transition rules and auth gates from the nav package.
type NavigationService struct {
	screens internalredis.ScreenStoreInterface
	logger  *zap.Logger
}

// NewNavigationService creates a new NavigationService.
func NewNavigationService(screens internalredis.ScreenStoreInterface, logger *zap.Logger) *NavigationService {
	return &NavigationService{screens: screens, logger: logger}
}

// Current returns the user's current screen, applying the auth gates in case
// the session state changed since the screen was stored. New users start on
// the map.
func (s *NavigationService) Current(ctx context.Context, userID string, authenticated bool) (nav.Screen, error) {
	stored, err := s.screens.Get(ctx, userID)
	if err != nil {
		return "", err
	}

	current := nav.Screen(stored)
	if !current.Valid() {
		if authenticated {
			current = nav.ScreenMain
		} else {
			current = nav.ScreenLogin
		}
	}

	enforced := nav.Enforce(current, authenticated)
	if enforced != current {
		if err := s.screens.Set(ctx, userID, string(enforced)); err != nil {
			return "", err
		}
	}
	return enforced, nil
}

// Navigate requests a screen change and returns the screen that actually
// became current after the auth gates.
func (s *NavigationService) Navigate(ctx context.Context, userID string, target nav.Screen, authenticated bool) (nav.Screen, error) {
	if !target.Valid() {
		return "", ErrInvalidScreen
	}

	current, err := s.Current(ctx, userID, authenticated)
	if err != nil {
		return "", err
	}

	next := nav.Navigate(current, target, authenticated)
	if err := s.screens.Set(ctx, userID, string(next)); err != nil {
		return "", err
	}

	if next != target {
		s.logger.Info("navigation gated",
			zap.String("user_id", userID),
			zap.String("requested", string(target)),
			zap.String("landed", string(next)))
	}
	return next, nil
}
