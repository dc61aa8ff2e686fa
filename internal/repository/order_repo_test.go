package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"risearc_back_end/internal/models"
)

type OrderRepoSuite struct {
	suite.Suite
	db       *gorm.DB
	orders   *OrderRepo
	cart     *CartRepo
	client   models.User
	polo     models.Product
	sneakers models.Product
}

func TestOrderRepoSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoSuite))
}

func (s *OrderRepoSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.orders = NewOrderRepo(s.db)
	s.cart = NewCartRepo(s.db)

	s.client = createUser(s.T(), s.db, "client@risearc.com")
	category := createCategory(s.T(), s.db, "Premium Mens Collection")
	s.polo = createProduct(s.T(), s.db, category.ID, "RiseArc Signature Polo", "89.99", 50)
	s.sneakers = createProduct(s.T(), s.db, category.ID, "Premium Sneakers", "179.99", 45)
}

func (s *OrderRepoSuite) TestCreateFromCartMaterializesAndClears() {
	ctx := context.Background()
	sessionKey := "session-a"

	_, err := s.cart.AddItem(ctx, sessionKey, s.polo.ID, 2)
	s.Require().NoError(err)
	_, err = s.cart.AddItem(ctx, sessionKey, s.sneakers.ID, 1)
	s.Require().NoError(err)

	order, err := s.orders.CreateFromCart(ctx, s.client.ID, sessionKey)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, order.Status)
	s.Len(order.Items, 2)

	// 2 × 89.99 + 1 × 179.99 = 359.97
	s.True(order.TotalAmount.Equal(decimal.RequireFromString("359.97")),
		"total attendu 359.97, obtenu %s", order.TotalAmount)

	// Le panier est vidé dans la même transaction.
	view, err := s.cart.ViewCart(ctx, sessionKey)
	s.Require().NoError(err)
	s.Empty(view.Items)
}

func (s *OrderRepoSuite) TestCreateFromEmptyCartCreatesNothing() {
	ctx := context.Background()

	_, err := s.orders.CreateFromCart(ctx, s.client.ID, "session-vide")
	s.Require().ErrorIs(err, ErrPanierVide)

	var orderCount, itemCount int64
	s.Require().NoError(s.db.Model(&models.Order{}).Count(&orderCount).Error)
	s.Require().NoError(s.db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	s.Zero(orderCount)
	s.Zero(itemCount)
}

func (s *OrderRepoSuite) TestOrderPriceIsSnapshottedAtPurchase() {
	ctx := context.Background()
	sessionKey := "session-a"

	_, err := s.cart.AddItem(ctx, sessionKey, s.polo.ID, 1)
	s.Require().NoError(err)

	order, err := s.orders.CreateFromCart(ctx, s.client.ID, sessionKey)
	s.Require().NoError(err)

	// Le prix catalogue change après l'achat.
	s.Require().NoError(s.db.Model(&models.Product{}).
		Where("id = ?", s.polo.ID).
		Update("price", decimal.RequireFromString("999.99")).Error)

	reloaded, err := s.orders.GetByID(ctx, order.ID, s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(reloaded.Items, 1)
	s.True(reloaded.Items[0].Price.Equal(decimal.RequireFromString("89.99")),
		"le prix de la commande doit rester figé à 89.99")
	s.True(reloaded.TotalAmount.Equal(decimal.RequireFromString("89.99")))
}

func (s *OrderRepoSuite) TestGetByIDEnforcesOwnership() {
	ctx := context.Background()
	other := createUser(s.T(), s.db, "autre@risearc.com")

	_, err := s.cart.AddItem(ctx, "session-a", s.polo.ID, 1)
	s.Require().NoError(err)
	order, err := s.orders.CreateFromCart(ctx, s.client.ID, "session-a")
	s.Require().NoError(err)

	_, err = s.orders.GetByID(ctx, order.ID, other.ID)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *OrderRepoSuite) TestUpdateStatusFollowsTransitionGraph() {
	ctx := context.Background()

	_, err := s.cart.AddItem(ctx, "session-a", s.polo.ID, 1)
	s.Require().NoError(err)
	order, err := s.orders.CreateFromCart(ctx, s.client.ID, "session-a")
	s.Require().NoError(err)

	// pending → confirmed → shipped → delivered
	for _, next := range []models.OrderStatus{models.StatusConfirmed, models.StatusShipped, models.StatusDelivered} {
		updated, err := s.orders.UpdateStatus(ctx, order.ID, next)
		s.Require().NoError(err)
		s.Equal(next, updated.Status)
	}

	// delivered est terminal.
	_, err = s.orders.UpdateStatus(ctx, order.ID, models.StatusCancelled)
	s.Require().ErrorIs(err, ErrTransitionInvalide)

	reloaded, err := s.orders.GetByID(ctx, order.ID, s.client.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusDelivered, reloaded.Status)
}

func (s *OrderRepoSuite) TestUpdateStatusRejectsSkipsAndUnknownStatus() {
	ctx := context.Background()

	_, err := s.cart.AddItem(ctx, "session-a", s.polo.ID, 1)
	s.Require().NoError(err)
	order, err := s.orders.CreateFromCart(ctx, s.client.ID, "session-a")
	s.Require().NoError(err)

	// pending → shipped saute une étape.
	_, err = s.orders.UpdateStatus(ctx, order.ID, models.StatusShipped)
	s.Require().ErrorIs(err, ErrTransitionInvalide)

	_, err = s.orders.UpdateStatus(ctx, order.ID, models.OrderStatus("expédiée"))
	s.Require().ErrorIs(err, ErrTransitionInvalide)

	_, err = s.orders.UpdateStatus(ctx, 9999, models.StatusConfirmed)
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *OrderRepoSuite) TestTotalRevenue() {
	ctx := context.Background()

	// Sans commandes : 0, pas une erreur.
	revenue, err := s.orders.TotalRevenue(ctx)
	s.Require().NoError(err)
	s.True(revenue.IsZero())

	_, err = s.cart.AddItem(ctx, "session-a", s.polo.ID, 2)
	s.Require().NoError(err)
	_, err = s.orders.CreateFromCart(ctx, s.client.ID, "session-a")
	s.Require().NoError(err)

	_, err = s.cart.AddItem(ctx, "session-b", s.sneakers.ID, 1)
	s.Require().NoError(err)
	_, err = s.orders.CreateFromCart(ctx, s.client.ID, "session-b")
	s.Require().NoError(err)

	// 179.98 + 179.99 = 359.97
	revenue, err = s.orders.TotalRevenue(ctx)
	s.Require().NoError(err)
	s.True(revenue.Equal(decimal.RequireFromString("359.97")),
		"chiffre d'affaires attendu 359.97, obtenu %s", revenue)
}

func (s *OrderRepoSuite) TestGetByUserIDNewestFirst() {
	ctx := context.Background()

	_, err := s.cart.AddItem(ctx, "session-a", s.polo.ID, 1)
	s.Require().NoError(err)
	first, err := s.orders.CreateFromCart(ctx, s.client.ID, "session-a")
	s.Require().NoError(err)

	_, err = s.cart.AddItem(ctx, "session-a", s.sneakers.ID, 1)
	s.Require().NoError(err)
	second, err := s.orders.CreateFromCart(ctx, s.client.ID, "session-a")
	s.Require().NoError(err)

	orders, err := s.orders.GetByUserID(ctx, s.client.ID)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Contains([]uint{first.ID, second.ID}, orders[0].ID)
	s.Contains([]uint{first.ID, second.ID}, orders[1].ID)
	s.NotEqual(orders[0].ID, orders[1].ID)
}
