package feedback

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"campfire/internal/shared/metrics"
	"campfire/internal/shared/util"
	"campfire/internal/users"
)

// UserDirectory resolves display names to users.
type UserDirectory interface {
	Ensure(ctx context.Context, name string) (users.User, error)
	Lookup(ctx context.Context, name string) (users.User, error)
}

type Service struct {
	Repo  Repo
	Users UserDirectory
}

func NewService(repo Repo, dir UserDirectory) *Service {
	return &Service{Repo: repo, Users: dir}
}

// List returns all suggestions ordered by score, newest first on ties.
// viewerName is optional; when it names a known user their votes are included.
func (s *Service) List(ctx context.Context, viewerName string) ([]SuggestionView, error) {
	var viewerID int64
	if name := util.SanitizeName(viewerName); name != "" {
		u, err := s.Users.Lookup(ctx, name)
		switch {
		case err == nil:
			viewerID = u.ID
		case !errors.Is(err, users.ErrNotFound):
			return nil, err
		}
	}
	rows, err := s.Repo.List(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []SuggestionView{}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows, nil
}

// Submit stores a new suggestion, creating the author on first use.
func (s *Service) Submit(ctx context.Context, userName, content string) (Suggestion, error) {
	name := util.SanitizeName(userName)
	content = strings.TrimSpace(content)
	if name == "" {
		return Suggestion{}, fmt.Errorf("%w: Name is required", ErrInvalidInput)
	}
	if content == "" {
		return Suggestion{}, fmt.Errorf("%w: Suggestion cannot be empty", ErrInvalidInput)
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return Suggestion{}, fmt.Errorf("%w: Suggestion must be %d characters or fewer", ErrInvalidInput, MaxContentLength)
	}
	u, err := s.Users.Ensure(ctx, name)
	if err != nil {
		return Suggestion{}, err
	}
	return s.Repo.Create(ctx, u.ID, content)
}

// Vote applies an up (+1) or down (-1) vote. Repeating the current vote
// removes it and the opposite vote replaces it. It returns the new score.
func (s *Service) Vote(ctx context.Context, userName string, suggestionID int64, vote int) (int, error) {
	name := util.SanitizeName(userName)
	if name == "" {
		return 0, fmt.Errorf("%w: Name is required", ErrInvalidInput)
	}
	if suggestionID <= 0 {
		return 0, fmt.Errorf("%w: suggestion_id is required", ErrInvalidInput)
	}
	if vote != 1 && vote != -1 {
		return 0, fmt.Errorf("%w: vote_type must be 1 or -1", ErrInvalidInput)
	}
	ok, err := s.Repo.Exists(ctx, suggestionID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNotFound
	}
	u, err := s.Users.Ensure(ctx, name)
	if err != nil {
		return 0, err
	}

	current, err := s.Repo.GetVote(ctx, suggestionID, u.ID)
	if err != nil {
		return 0, err
	}
	var action string
	switch current {
	case vote:
		action = ActionRemoved
		err = s.Repo.DeleteVote(ctx, suggestionID, u.ID)
	case 0:
		action = ActionAdded
		err = s.Repo.SetVote(ctx, suggestionID, u.ID, vote)
	default:
		action = ActionSwitched
		err = s.Repo.SetVote(ctx, suggestionID, u.ID, vote)
	}
	if err != nil {
		return 0, fmt.Errorf("apply vote: %w", err)
	}
	metrics.IncFeedbackVote(action)
	return s.Repo.Score(ctx, suggestionID)
}
