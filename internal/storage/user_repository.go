package storage

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"teammatch/internal/models"
)

// UserRepository defines the interface for directory data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// ListExcept returns users other than excludeID in directory order.
	// A limit <= 0 means no limit.
	ListExcept(ctx context.Context, excludeID uint, limit int) ([]models.User, error)
	// FilterBySkillSubstring returns users whose skills contain any keyword,
	// in directory order. excludeID 0 excludes nobody; limit <= 0 means no limit.
	FilterBySkillSubstring(ctx context.Context, keywords []string, excludeID uint, limit int) ([]models.User, error)
	// SearchBySkill pages through users whose skills contain term. An empty
	// term pages through the whole directory.
	SearchBySkill(ctx context.Context, term string, offset, limit int) ([]models.User, int64, error)
}

// gormUserRepository implements UserRepository using GORM.
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based UserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create creates a new user record in the database.
func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by their ID.
func (r *gormUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err // Handles gorm.ErrRecordNotFound as well
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username.
func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update saves all fields of an existing user.
func (r *gormUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.ID == 0 {
		return gorm.ErrMissingWhereClause
	}
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *gormUserRepository) ListExcept(ctx context.Context, excludeID uint, limit int) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Scopes(ExcludingUser(excludeID), DirectoryOrder)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserRepository) FilterBySkillSubstring(ctx context.Context, keywords []string, excludeID uint, limit int) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Scopes(SkillMatchesAny(keywords), ExcludingUser(excludeID), DirectoryOrder)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserRepository) SearchBySkill(ctx context.Context, term string, offset, limit int) ([]models.User, int64, error) {
	term = strings.TrimSpace(term)
	// A fresh chain per statement; gorm chains are not reusable after a finisher.
	matching := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.User{})
		if term != "" {
			q = q.Scopes(SkillMatchesAny([]string{term}))
		}
		return q
	}

	var total int64
	if err := matching().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := matching().Scopes(DirectoryOrder).Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
