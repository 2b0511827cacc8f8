package services

import (
	"context"
	"fmt"
	"log"

	"github.com/htw-hub/questboard-api/internal/repository"
)

// XPCorrection records a user whose cached XP disagreed with the ledger
type XPCorrection struct {
	UserID   string
	Cached   int
	Recorded int
}

// LedgerService keeps the cached users.xp counter in line with the ledger
type LedgerService struct {
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(userRepo repository.UserRepository, historyRepo repository.HistoryRepository) *LedgerService {
	return &LedgerService{userRepo: userRepo, historyRepo: historyRepo}
}

// ReconcileXP rewrites users.xp from the ledger sum for every user whose
// cached value drifted, and returns the corrections it applied.
func (s *LedgerService) ReconcileXP(ctx context.Context) ([]XPCorrection, error) {
	totals, err := s.historyRepo.XPTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum ledger: %w", err)
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	corrections := []XPCorrection{}
	for _, user := range users {
		recorded := int(totals[user.ID])
		if user.XP == recorded {
			continue
		}

		if err := s.userRepo.SetXP(ctx, user.ID, recorded); err != nil {
			return corrections, fmt.Errorf("failed to correct xp for user %s: %w", user.ID, err)
		}

		log.Printf("reconciled xp for user %s: %d -> %d", user.ID, user.XP, recorded)
		corrections = append(corrections, XPCorrection{
			UserID:   user.ID,
			Cached:   user.XP,
			Recorded: recorded,
		})
	}

	return corrections, nil
}
