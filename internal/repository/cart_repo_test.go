package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"risearc_back_end/internal/models"
)

type CartRepoSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *CartRepo
	polo models.Product
}

func TestCartRepoSuite(t *testing.T) {
	suite.Run(t, new(CartRepoSuite))
}

func (s *CartRepoSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.repo = NewCartRepo(s.db)

	category := createCategory(s.T(), s.db, "Premium Mens Collection")
	s.polo = createProduct(s.T(), s.db, category.ID, "RiseArc Signature Polo", "89.99", 50)
}

func (s *CartRepoSuite) TestAddItemMergesQuantities() {
	ctx := context.Background()
	sessionKey := "session-a"

	first, err := s.repo.AddItem(ctx, sessionKey, s.polo.ID, 2)
	s.Require().NoError(err)
	s.Equal(2, first.Quantity)

	second, err := s.repo.AddItem(ctx, sessionKey, s.polo.ID, 3)
	s.Require().NoError(err)
	s.Equal(5, second.Quantity)
	s.Equal(first.ID, second.ID, "le même produit doit rester sur une seule ligne")

	var count int64
	s.Require().NoError(s.db.Model(&models.CartItem{}).
		Where("session_key = ?", sessionKey).Count(&count).Error)
	s.EqualValues(1, count)

	view, err := s.repo.ViewCart(ctx, sessionKey)
	s.Require().NoError(err)
	s.True(view.Total.Equal(decimal.RequireFromString("449.95")),
		"total attendu 449.95, obtenu %s", view.Total)
}

func (s *CartRepoSuite) TestAddItemRejectsInvalidQuantity() {
	ctx := context.Background()

	_, err := s.repo.AddItem(ctx, "session-a", s.polo.ID, 0)
	s.Require().ErrorIs(err, ErrQuantiteInvalide)

	_, err = s.repo.AddItem(ctx, "session-a", s.polo.ID, -3)
	s.Require().ErrorIs(err, ErrQuantiteInvalide)

	view, err := s.repo.ViewCart(ctx, "session-a")
	s.Require().NoError(err)
	s.Empty(view.Items)
}

func (s *CartRepoSuite) TestAddItemUnknownOrInactiveProduct() {
	ctx := context.Background()

	_, err := s.repo.AddItem(ctx, "session-a", 9999, 1)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	s.Require().NoError(s.db.Model(&models.Product{}).
		Where("id = ?", s.polo.ID).Update("is_active", false).Error)

	_, err = s.repo.AddItem(ctx, "session-a", s.polo.ID, 1)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *CartRepoSuite) TestRemoveItemEnforcesSessionOwnership() {
	ctx := context.Background()

	item, err := s.repo.AddItem(ctx, "session-a", s.polo.ID, 2)
	s.Require().NoError(err)

	// Une autre session ne peut pas supprimer la ligne.
	err = s.repo.RemoveItem(ctx, "session-b", item.ID)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	view, err := s.repo.ViewCart(ctx, "session-a")
	s.Require().NoError(err)
	s.Len(view.Items, 1, "la ligne doit survivre à la tentative étrangère")

	// La session propriétaire, si.
	s.Require().NoError(s.repo.RemoveItem(ctx, "session-a", item.ID))

	view, err = s.repo.ViewCart(ctx, "session-a")
	s.Require().NoError(err)
	s.Empty(view.Items)
}

func (s *CartRepoSuite) TestViewCartEmptySession() {
	view, err := s.repo.ViewCart(context.Background(), "session-inconnue")
	s.Require().NoError(err)
	s.NotNil(view.Items)
	s.Empty(view.Items)
	s.True(view.Total.IsZero())
}

func (s *CartRepoSuite) TestCartsAreIsolatedBySession() {
	ctx := context.Background()
	category := createCategory(s.T(), s.db, "Designer Footwear")
	sneakers := createProduct(s.T(), s.db, category.ID, "Premium Sneakers", "179.99", 45)

	_, err := s.repo.AddItem(ctx, "session-a", s.polo.ID, 1)
	s.Require().NoError(err)
	_, err = s.repo.AddItem(ctx, "session-b", sneakers.ID, 2)
	s.Require().NoError(err)

	viewA, err := s.repo.ViewCart(ctx, "session-a")
	s.Require().NoError(err)
	viewB, err := s.repo.ViewCart(ctx, "session-b")
	s.Require().NoError(err)

	s.Len(viewA.Items, 1)
	s.Len(viewB.Items, 1)
	s.Equal("RiseArc Signature Polo", viewA.Items[0].Name)
	s.Equal("Premium Sneakers", viewB.Items[0].Name)
}

func (s *CartRepoSuite) TestClearCart() {
	ctx := context.Background()

	_, err := s.repo.AddItem(ctx, "session-a", s.polo.ID, 4)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.ClearCart(ctx, "session-a"))

	view, err := s.repo.ViewCart(ctx, "session-a")
	s.Require().NoError(err)
	s.Empty(view.Items)
	s.True(view.Total.IsZero())

	// Vider un panier déjà vide n'est pas une erreur.
	require.NoError(s.T(), s.repo.ClearCart(ctx, "session-a"))
}
