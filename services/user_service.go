package services

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rleomotos-api/models"
	"rleomotos-api/utils"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserInput struct {
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Password string             `json:"password"`
	StoreID  *uint              `json:"storeId"`
	Status   *models.UserStatus `json:"status"`
	Roles    []string           `json:"roles"`
}

func userAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Store").Preload("Roles")
}

// FindAll lists active accounts; soft-deleted (inactive) users are hidden.
func (s *UserService) FindAll() ([]models.User, error) {
	var users []models.User
	err := userAssociations(s.db).
		Where("status = ?", models.UserStatusActive).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) FindOne(id uint) (*models.User, error) {
	var user models.User
	err := userAssociations(s.db).
		Where("status = ?", models.UserStatusActive).
		First(&user, id).Error
	if err != nil {
		return nil, NotFound("User not found")
	}
	return &user, nil
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := userAssociations(s.db).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Create(input UserInput, actorID *uint) (*models.User, error) {
	if !utils.IsValidEmail(input.Email) {
		return nil, BadRequest("Invalid email address")
	}
	if !utils.IsValidPassword(input.Password) {
		return nil, BadRequest("Password must be at least 6 characters")
	}

	var created *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return BadRequest("Email already registered")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: string(hash),
			Status:       models.UserStatusActive,
		}
		if input.Status != nil {
			user.Status = *input.Status
		}
		if input.StoreID != nil {
			var store models.Store
			if err := tx.First(&store, *input.StoreID).Error; err != nil {
				return NotFound("Store not found")
			}
			user.StoreID = &store.ID
		}

		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			return err
		}

		roles := input.Roles
		if len(roles) == 0 {
			roles = []string{"client"}
		}
		if err := assignRoles(tx, user.ID, roles); err != nil {
			return err
		}
		if err := RecordAudit(tx, actorID, "users", user.ID, "create",
			models.JSONMap{"email": user.Email}); err != nil {
			return err
		}

		reloaded := models.User{}
		if err := userAssociations(tx).First(&reloaded, user.ID).Error; err != nil {
			return err
		}
		created = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *UserService) Update(id uint, input UserInput, actorID *uint) (*models.User, error) {
	var updated *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return NotFound("User not found")
		}

		if input.Email != "" && input.Email != user.Email {
			if !utils.IsValidEmail(input.Email) {
				return BadRequest("Invalid email address")
			}
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return BadRequest("Email already used by another user")
			}
			user.Email = input.Email
		}
		if input.StoreID != nil {
			var store models.Store
			if err := tx.First(&store, *input.StoreID).Error; err != nil {
				return NotFound("Store not found")
			}
			user.StoreID = &store.ID
		}
		if input.Password != "" {
			if !utils.IsValidPassword(input.Password) {
				return BadRequest("Password must be at least 6 characters")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			user.PasswordHash = string(hash)
		}
		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Status != nil {
			user.Status = *input.Status
		}

		if err := tx.Omit(clause.Associations).Save(&user).Error; err != nil {
			return err
		}

		// Full replace semantics: the requested set becomes the user's roles.
		if input.Roles != nil {
			if err := assignRoles(tx, user.ID, input.Roles); err != nil {
				return err
			}
		}
		if err := RecordAudit(tx, actorID, "users", user.ID, "update", nil); err != nil {
			return err
		}

		reloaded := models.User{}
		if err := userAssociations(tx).First(&reloaded, user.ID).Error; err != nil {
			return err
		}
		updated = &reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SoftDelete marks the account inactive; the row is kept.
func (s *UserService) SoftDelete(id uint, actorID *uint) (*models.User, error) {
	var user models.User
	if err := userAssociations(s.db).First(&user, id).Error; err != nil {
		return nil, NotFound("User not found")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("status", models.UserStatusInactive).Error; err != nil {
			return err
		}
		return RecordAudit(tx, actorID, "users", user.ID, "delete", nil)
	})
	if err != nil {
		return nil, err
	}
	user.Status = models.UserStatusInactive
	return &user, nil
}

// assignRoles replaces the user's role set: duplicates collapsed, every name
// validated against the fixed role list, old join rows deleted first.
func assignRoles(tx *gorm.DB, userID uint, roles []string) error {
	seen := make(map[string]bool)
	unique := make([]string, 0, len(roles))
	for _, name := range roles {
		if seen[name] {
			continue
		}
		if !models.IsValidRole(name) {
			return BadRequest("Invalid role: " + name)
		}
		seen[name] = true
		unique = append(unique, name)
	}

	var stored []models.Role
	if err := tx.Where("name IN ?", unique).Find(&stored).Error; err != nil {
		return err
	}
	if len(stored) != len(unique) {
		return BadRequest("One or more roles are invalid")
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
		return err
	}
	for _, role := range stored {
		if err := tx.Create(&models.UserRole{UserID: userID, RoleID: role.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}
