package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"teammatch/internal/models"
	"teammatch/internal/storage"
	"teammatch/internal/taxonomy"
)

const (
	// HistoryWindow is how many recent searches feed a recommendation.
	HistoryWindow = 5
	// MaxRecommendations caps every recommendation list.
	MaxRecommendations = 6
)

// RecommendationContext carries per-session state into recommendation calls.
type RecommendationContext struct {
	// LastSearchedCategory is the category of the most recent categorized
	// search, or "" when there is none.
	LastSearchedCategory string
}

// RecommendationService ranks directory users for a requester.
type RecommendationService interface {
	// Recommend ranks users against the requester's recent searches.
	Recommend(ctx context.Context, userID uint) ([]models.User, error)
	// RecommendForSession lists users of the session's last searched category,
	// falling back to Recommend when there is none.
	RecommendForSession(ctx context.Context, userID uint, rc RecommendationContext) ([]models.User, error)
	// FindTeammates lists every user of the session's category, or every user,
	// other than the requester.
	FindTeammates(ctx context.Context, userID uint, rc RecommendationContext) ([]models.User, error)
}

type recommendationService struct {
	users    storage.UserRepository
	history  storage.SearchHistoryRepository
	taxonomy *taxonomy.Taxonomy
}

// NewRecommendationService creates a RecommendationService over tx.
func NewRecommendationService(users storage.UserRepository, history storage.SearchHistoryRepository, tx *taxonomy.Taxonomy) RecommendationService {
	return &recommendationService{
		users:    users,
		history:  history,
		taxonomy: tx,
	}
}

// candidate is one occurrence of a user gathered for a search term.
type candidate struct {
	user  models.User
	score int
}

func (s *recommendationService) Recommend(ctx context.Context, userID uint) ([]models.User, error) {
	terms, err := s.history.RecentTerms(ctx, userID, HistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load search history: %w", err)
	}

	if len(terms) == 0 {
		users, err := s.users.ListExcept(ctx, userID, MaxRecommendations)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return users, nil
	}

	// Tokens are compared against the raw terms, not the category keywords.
	searched := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		searched[t] = struct{}{}
	}

	var candidates []candidate
	for _, term := range terms {
		category, ok := s.taxonomy.Lookup(term)
		if !ok {
			continue
		}
		matches, err := s.users.FilterBySkillSubstring(ctx, s.taxonomy.Keywords(category), userID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to scan users for category %q: %w", category, err)
		}
		for _, u := range matches {
			candidates = append(candidates, candidate{user: u, score: overlap(u, searched)})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	seen := make(map[uint]struct{}, len(candidates))
	result := make([]models.User, 0, MaxRecommendations)
	for _, c := range candidates {
		if _, dup := seen[c.user.ID]; dup {
			continue
		}
		seen[c.user.ID] = struct{}{}
		result = append(result, c.user)
		if len(result) == MaxRecommendations {
			break
		}
	}
	return result, nil
}

// overlap counts the user's skill tokens that equal a searched term.
func overlap(u models.User, searched map[string]struct{}) int {
	n := 0
	for token := range u.SkillSet() {
		if _, ok := searched[token]; ok {
			n++
		}
	}
	return n
}

func (s *recommendationService) RecommendForSession(ctx context.Context, userID uint, rc RecommendationContext) ([]models.User, error) {
	category := s.sessionCategory(rc)
	if category == "" {
		return s.Recommend(ctx, userID)
	}
	// The category listing includes the requester.
	users, err := s.users.FilterBySkillSubstring(ctx, s.taxonomy.Keywords(category), 0, MaxRecommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to scan users for category %q: %w", category, err)
	}
	return users, nil
}

func (s *recommendationService) FindTeammates(ctx context.Context, userID uint, rc RecommendationContext) ([]models.User, error) {
	category := s.sessionCategory(rc)
	var (
		users []models.User
		err   error
	)
	if category == "" {
		users, err = s.users.ListExcept(ctx, userID, 0)
	} else {
		users, err = s.users.FilterBySkillSubstring(ctx, s.taxonomy.Keywords(category), userID, 0)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find teammates: %w", err)
	}
	return users, nil
}

// sessionCategory returns the context's category if the taxonomy knows it.
func (s *recommendationService) sessionCategory(rc RecommendationContext) string {
	category := strings.TrimSpace(rc.LastSearchedCategory)
	if category == "" || !s.taxonomy.Has(category) {
		return ""
	}
	return category
}
