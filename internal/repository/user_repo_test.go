package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"risearc_back_end/internal/models"
)

type UserRepoSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *UserRepo
}

func TestUserRepoSuite(t *testing.T) {
	suite.Run(t, new(UserRepoSuite))
}

func (s *UserRepoSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.repo = NewUserRepo(s.db)
}

func (s *UserRepoSuite) registerInput(email string) RegisterInput {
	return RegisterInput{
		Email:         email,
		Password:      "motdepasse123",
		FullName:      "Jean Dupont",
		Address:       "12 rue de la Paix, Bruxelles",
		ContactNumber: "0470123456",
		DateOfBirth:   time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
	}
}

func (s *UserRepoSuite) TestRegisterCreatesUserAndProfile() {
	ctx := context.Background()

	user, err := s.repo.Register(ctx, s.registerInput("jean@risearc.com"))
	s.Require().NoError(err)
	s.Equal(models.RoleCustomer, user.Role)
	s.NotEqual("motdepasse123", user.Password, "le mot de passe doit être hashé")
	s.Require().NotNil(user.Profile)
	s.True(user.Profile.IsActive)
	s.Equal("Jean Dupont", user.Profile.FullName)
}

func (s *UserRepoSuite) TestRegisterDuplicateEmail() {
	ctx := context.Background()

	_, err := s.repo.Register(ctx, s.registerInput("jean@risearc.com"))
	s.Require().NoError(err)

	_, err = s.repo.Register(ctx, s.registerInput("jean@risearc.com"))
	s.Require().ErrorIs(err, ErrEmailDejaUtilise)

	var count int64
	s.Require().NoError(s.db.Model(&models.User{}).
		Where("email = ?", "jean@risearc.com").Count(&count).Error)
	s.EqualValues(1, count, "un seul compte doit exister")
}

func (s *UserRepoSuite) TestAuthenticate() {
	ctx := context.Background()

	created, err := s.repo.Register(ctx, s.registerInput("jean@risearc.com"))
	s.Require().NoError(err)

	user, err := s.repo.Authenticate(ctx, "jean@risearc.com", "motdepasse123")
	s.Require().NoError(err)
	s.Equal(created.ID, user.ID)

	_, err = s.repo.Authenticate(ctx, "jean@risearc.com", "mauvais-mot-de-passe")
	s.Require().ErrorIs(err, ErrIdentifiantsInvalides)

	_, err = s.repo.Authenticate(ctx, "inconnu@risearc.com", "motdepasse123")
	s.Require().ErrorIs(err, ErrIdentifiantsInvalides)
}

func (s *UserRepoSuite) TestAuthenticateInactiveAccount() {
	ctx := context.Background()

	user, err := s.repo.Register(ctx, s.registerInput("jean@risearc.com"))
	s.Require().NoError(err)

	_, err = s.repo.ToggleActive(ctx, user.Profile.ID)
	s.Require().NoError(err)

	// Credentials corrects, mais compte désactivé : pas de token possible.
	_, err = s.repo.Authenticate(ctx, "jean@risearc.com", "motdepasse123")
	s.Require().ErrorIs(err, ErrCompteInactif)
}

func (s *UserRepoSuite) TestToggleActiveIsAnInvolution() {
	ctx := context.Background()

	user, err := s.repo.Register(ctx, s.registerInput("jean@risearc.com"))
	s.Require().NoError(err)
	profileID := user.Profile.ID

	toggled, err := s.repo.ToggleActive(ctx, profileID)
	s.Require().NoError(err)
	s.False(toggled.IsActive)

	toggled, err = s.repo.ToggleActive(ctx, profileID)
	s.Require().NoError(err)
	s.True(toggled.IsActive, "deux bascules doivent revenir à l'état d'origine")

	_, err = s.repo.ToggleActive(ctx, 9999)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *UserRepoSuite) TestUpdateProfile() {
	ctx := context.Background()

	user, err := s.repo.Register(ctx, s.registerInput("jean@risearc.com"))
	s.Require().NoError(err)

	newDOB := time.Date(1991, 7, 3, 0, 0, 0, 0, time.UTC)
	profile, err := s.repo.UpdateProfile(ctx, user.ID,
		"Jean Martin", "8 avenue Louise, Bruxelles", "0480654321", newDOB)
	s.Require().NoError(err)
	s.Equal("Jean Martin", profile.FullName)
	s.Equal("8 avenue Louise, Bruxelles", profile.Address)
	s.Equal("0480654321", profile.ContactNumber)

	_, err = s.repo.UpdateProfile(ctx, 9999, "X", "Y", "Z", newDOB)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *UserRepoSuite) TestCountProfiles() {
	ctx := context.Background()

	a, err := s.repo.Register(ctx, s.registerInput("a@risearc.com"))
	s.Require().NoError(err)
	_, err = s.repo.Register(ctx, s.registerInput("b@risearc.com"))
	s.Require().NoError(err)

	_, err = s.repo.ToggleActive(ctx, a.Profile.ID)
	s.Require().NoError(err)

	total, active, err := s.repo.CountProfiles(ctx)
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.EqualValues(1, active)
}
