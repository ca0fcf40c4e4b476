package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"teammatch/internal/apptypes"
	"teammatch/internal/models"
	"teammatch/internal/storage"
	"teammatch/internal/taxonomy"
)

// SearchPageSize is the number of users per search results page.
const SearchPageSize = 6

var (
	ErrInvalidFileType = errors.New("profile picture must be a png, jpg or jpeg file")
	ErrFileTooLarge    = errors.New("profile picture is too large")
)

var allowedPictureExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// PictureUpload is an uploaded profile picture.
type PictureUpload struct {
	Reader   io.Reader
	Size     int64
	FileName string
	MimeType string
}

// ProfileUpdate holds the editable profile fields. Text fields overwrite the
// stored values, empty included. A nil Picture keeps the current one.
type ProfileUpdate struct {
	Bio      string
	Location string
	GitHub   string
	LinkedIn string
	Picture  *PictureUpload
}

// SearchResult is one page of a skill search.
type SearchResult struct {
	Users []models.User
	Term  string
	// Category is set when a recorded term resolved to a taxonomy category.
	Category string
	Page     int
	PerPage  int
	Total    int64
}

// Pages returns the number of pages, at least 1.
func (r *SearchResult) Pages() int {
	if r.Total == 0 || r.PerPage <= 0 {
		return 1
	}
	return int((r.Total + int64(r.PerPage) - 1) / int64(r.PerPage))
}

func (r *SearchResult) HasPrev() bool { return r.Page > 1 }
func (r *SearchResult) HasNext() bool { return r.Page < r.Pages() }
func (r *SearchResult) PrevNum() int  { return r.Page - 1 }
func (r *SearchResult) NextNum() int  { return r.Page + 1 }

// UserService serves profiles and the skill search.
type UserService interface {
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error)
	// SearchBySkill pages through users whose skills contain term. A logged in
	// searcher (searcherID != 0) with a non-empty term has the term recorded;
	// everyone else gets the whole directory.
	SearchBySkill(ctx context.Context, searcherID uint, term string, page int) (*SearchResult, error)
}

type userService struct {
	userRepo       storage.UserRepository
	historyRepo    storage.SearchHistoryRepository
	storageService apptypes.StorageService
	taxonomy       *taxonomy.Taxonomy
	maxPictureSize int64
}

// NewUserService creates a new UserService. maxPictureSize <= 0 disables the
// size check.
func NewUserService(
	userRepo storage.UserRepository,
	historyRepo storage.SearchHistoryRepository,
	storageService apptypes.StorageService,
	tx *taxonomy.Taxonomy,
	maxPictureSize int64,
) UserService {
	return &userService{
		userRepo:       userRepo,
		historyRepo:    historyRepo,
		storageService: storageService,
		taxonomy:       tx,
		maxPictureSize: maxPictureSize,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Validate the picture before touching anything.
	if p := update.Picture; p != nil {
		if _, ok := allowedPictureExtensions[strings.ToLower(filepath.Ext(p.FileName))]; !ok {
			return nil, ErrInvalidFileType
		}
		if s.maxPictureSize > 0 && p.Size > s.maxPictureSize {
			return nil, ErrFileTooLarge
		}
	}

	user.Bio = update.Bio
	user.Location = update.Location
	user.GitHub = update.GitHub
	user.LinkedIn = update.LinkedIn

	if p := update.Picture; p != nil {
		info, err := s.storageService.UploadFile(ctx, p.Reader, p.Size, filepath.Base(p.FileName), p.MimeType)
		if err != nil {
			return nil, fmt.Errorf("failed to store profile picture: %w", err)
		}
		user.ProfilePicture = info.URL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) SearchBySkill(ctx context.Context, searcherID uint, term string, page int) (*SearchResult, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if page < 1 {
		page = 1
	}
	result := &SearchResult{Term: term, Page: page, PerPage: SearchPageSize}

	filter := ""
	if term != "" && searcherID != 0 {
		if err := s.historyRepo.Record(ctx, searcherID, term); err != nil {
			return nil, fmt.Errorf("failed to record search: %w", err)
		}
		if category, ok := s.taxonomy.Lookup(term); ok {
			result.Category = category
		}
		filter = term
	}

	users, total, err := s.userRepo.SearchBySkill(ctx, filter, (page-1)*SearchPageSize, SearchPageSize)
	if err != nil {
		log.Printf("Error searching users for %q: %v", filter, err)
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	result.Users = users
	result.Total = total
	return result, nil
}
