package users

import (
	"context"

	"go.uber.org/zap"

	"github.com/dalemusser/userhub/internal/app/system/events"
	"github.com/dalemusser/userhub/internal/app/system/respond"
	"github.com/dalemusser/userhub/internal/domain/models"
)

// Store is the persistence contract the service depends on. It is satisfied
// by *userstore.Store and by in-memory fakes in tests.
type Store interface {
	Exists(ctx context.Context, userID *int64, username *string) (bool, error)
	Insert(ctx context.Context, u models.User) (models.User, error)
	GetByUserID(ctx context.Context, userID int64) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	ReplaceByUserID(ctx context.Context, userID int64, u models.User) (models.User, error)
	AppendOrder(ctx context.Context, userID int64, order models.Order) error
}

// Service holds the business logic for user CRUD and order aggregation.
// Every operation returns a result envelope; expected failures (duplicate,
// not found, empty list) are envelope content, never Go errors.
type Service struct {
	store  Store
	events *events.Publisher
	log    *zap.Logger
}

// NewService constructs a Service. The events publisher may be nil,
// in which case no events are emitted.
func NewService(store Store, pub *events.Publisher, logger *zap.Logger) *Service {
	return &Service{store: store, events: pub, log: logger}
}

type ordersData struct {
	Orders []models.Order `json:"orders"`
}

type totalPriceData struct {
	TotalPrice float64 `json:"totalPrice"`
}

// noUsersFound is the policy for an empty collection: an empty list is
// reported as a failure, not a success with zero rows. Debatable, but it is
// the documented API contract; keep the decision in this one place.
func noUsersFound() respond.Envelope {
	return respond.Fail("No users found")
}

// userNotFound is the shared outcome for every id-scoped operation on an
// absent user.
func userNotFound() respond.Envelope {
	return respond.NotFound("User not found")
}

// CreateUser inserts a new user unless one already exists with the same
// user id or username. The existence check and insert are not atomic; a
// concurrent duplicate that slips past the check fails on the unique index
// and lands in the generic error branch.
func (s *Service) CreateUser(ctx context.Context, u models.User) respond.Envelope {
	exists, err := s.store.Exists(ctx, &u.UserID, &u.Username)
	if err != nil {
		s.log.Error("existence check failed", zap.Int64("user_id", u.UserID), zap.Error(err))
		return respond.Unexpected(err)
	}
	if exists {
		return respond.Fail("User already exists")
	}

	created, err := s.store.Insert(ctx, u)
	if err != nil {
		s.log.Error("user insert failed", zap.Int64("user_id", u.UserID), zap.Error(err))
		return respond.Unexpected(err)
	}

	s.log.Info("user created", zap.Int64("user_id", created.UserID))
	s.events.PublishUserCreated(events.UserCreated{
		UserID:      created.UserID,
		Username:    created.Username,
		DateCreated: created.DateCreated,
	})

	return respond.OK("User created successfully", created)
}

// GetUsers returns all users.
func (s *Service) GetUsers(ctx context.Context) respond.Envelope {
	users, err := s.store.GetAll(ctx)
	if err != nil {
		s.log.Error("user list failed", zap.Error(err))
		return respond.Unexpected(err)
	}
	if len(users) == 0 {
		return noUsersFound()
	}
	return respond.OK("Users fetched successfully!", users)
}

// GetUserByUserID returns one user by its numeric id.
func (s *Service) GetUserByUserID(ctx context.Context, userID int64) respond.Envelope {
	exists, err := s.store.Exists(ctx, &userID, nil)
	if err != nil {
		s.log.Error("existence check failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	if !exists {
		return userNotFound()
	}

	u, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Error("user fetch failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	return respond.OK("User fetched successfully!", u)
}

// UpdateUserByID replaces the whole document for an existing user and
// returns the post-update record.
func (s *Service) UpdateUserByID(ctx context.Context, userID int64, u models.User) respond.Envelope {
	exists, err := s.store.Exists(ctx, &userID, nil)
	if err != nil {
		s.log.Error("existence check failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	if !exists {
		return userNotFound()
	}

	updated, err := s.store.ReplaceByUserID(ctx, userID, u)
	if err != nil {
		s.log.Error("user replace failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	return respond.OK("User updated successfully!", updated)
}

// AddOrder appends one order to an existing user. The updated order list
// is not echoed back; the data payload is an explicit null.
func (s *Service) AddOrder(ctx context.Context, userID int64, order models.Order) respond.Envelope {
	exists, err := s.store.Exists(ctx, &userID, nil)
	if err != nil {
		s.log.Error("existence check failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	if !exists {
		return userNotFound()
	}

	if err := s.store.AppendOrder(ctx, userID, order); err != nil {
		s.log.Error("order append failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	return respond.OK("Order added successfully", respond.NullData)
}

// GetOrders returns the order list for an existing user. A user with no
// orders is a success with an empty list, unlike the empty users
// collection which is a failure.
func (s *Service) GetOrders(ctx context.Context, userID int64) respond.Envelope {
	exists, err := s.store.Exists(ctx, &userID, nil)
	if err != nil {
		s.log.Error("existence check failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	if !exists {
		return userNotFound()
	}

	u, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Error("user fetch failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	return respond.OK("Orders fetched successfully", ordersData{Orders: u.Orders})
}

// GetOrdersTotalPrice sums the price field across a user's orders.
// Quantity is not factored in; the total is a sum of unit prices.
func (s *Service) GetOrdersTotalPrice(ctx context.Context, userID int64) respond.Envelope {
	exists, err := s.store.Exists(ctx, &userID, nil)
	if err != nil {
		s.log.Error("existence check failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}
	if !exists {
		return userNotFound()
	}

	u, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		s.log.Error("user fetch failed", zap.Int64("user_id", userID), zap.Error(err))
		return respond.Unexpected(err)
	}

	var total float64
	for _, o := range u.Orders {
		total += o.Price
	}
	return respond.OK("Total price fetched successfully", totalPriceData{TotalPrice: total})
}
