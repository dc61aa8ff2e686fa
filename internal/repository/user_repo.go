package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"risearc_back_end/internal/models"
	"risearc_back_end/internal/utils"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// RegisterInput regroupe les champs du formulaire d'inscription.
// L'email sert aussi d'identifiant de connexion.
type RegisterInput struct {
	Email         string
	Password      string
	FullName      string
	Address       string
	ContactNumber string
	DateOfBirth   time.Time
}

// Register crée le compte et son profil dans une seule transaction.
// Email déjà pris ⇒ ErrEmailDejaUtilise, aucun doublon créé (l'index
// unique sur email couvre aussi la course entre deux inscriptions).
func (r *UserRepo) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleCustomer,
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ?", input.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailDejaUtilise
		}

		if err := tx.Create(user).Error; err != nil {
			return err
		}

		profile := &models.UserProfile{
			UserID:        user.ID,
			FullName:      input.FullName,
			Address:       input.Address,
			ContactNumber: input.ContactNumber,
			DateOfBirth:   input.DateOfBirth,
			IsActive:      true,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		user.Profile = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate vérifie les credentials puis l'activation du profil.
// L'ordre compte : un mot de passe faux donne ErrIdentifiantsInvalides,
// un profil désactivé donne ErrCompteInactif une fois les credentials
// acceptés — et aucun token ne sera émis dans ce cas.
func (r *UserRepo) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Profile").
		First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIdentifiantsInvalides
		}
		return nil, err
	}

	ok, err := utils.VerifyPassword(password, user.Password)
	if err != nil || !ok {
		return nil, ErrIdentifiantsInvalides
	}

	if user.Profile != nil && !user.Profile.IsActive {
		return nil, ErrCompteInactif
	}
	return &user, nil
}

// GetByID renvoie l'utilisateur avec son profil.
func (r *UserRepo) GetByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Profile").
		First(&user, "id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfileByUserID renvoie le profil associé au compte.
func (r *UserRepo) GetProfileByUserID(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).
		First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile met à jour les champs modifiables du profil.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID uint, fullName, address, contactNumber string, dateOfBirth time.Time) (*models.UserProfile, error) {
	res := r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"full_name":      fullName,
			"address":        address,
			"contact_number": contactNumber,
			"date_of_birth":  dateOfBirth,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetProfileByUserID(ctx, userID)
}

// SetProfilePhoto enregistre la clé d'objet MinIO de la photo.
func (r *UserRepo) SetProfilePhoto(ctx context.Context, userID uint, objectKey string) error {
	res := r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("profile_photo", objectKey)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ToggleActive inverse le flag d'activation du profil visé en une seule
// requête. Appliqué deux fois, le profil revient à son état d'origine.
func (r *UserRepo) ToggleActive(ctx context.Context, profileID uint) (*models.UserProfile, error) {
	res := r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("id = ?", profileID).
		UpdateColumn("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var profile models.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", profileID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles renvoie tous les profils, les plus récents d'abord (vue admin).
func (r *UserRepo) ListProfiles(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&profiles).Error
	return profiles, err
}

// CountProfiles renvoie (total, actifs).
func (r *UserRepo) CountProfiles(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).Model(&models.UserProfile{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
