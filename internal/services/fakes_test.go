package services

import (
	"errors"

	"food_ordering/internal/models"
	"food_ordering/internal/repository"

	"gorm.io/gorm"
)

// In-memory stand-ins for the repository and store interfaces.

type fakeMenuRepo struct {
	items   map[uint]models.MenuItem
	failIDs map[uint]bool // GetByID returns an error for these ids
	nextID  uint
}

func newFakeMenuRepo(items ...models.MenuItem) *fakeMenuRepo {
	repo := &fakeMenuRepo{
		items:   make(map[uint]models.MenuItem),
		failIDs: make(map[uint]bool),
		nextID:  1,
	}
	for _, item := range items {
		repo.items[item.ID] = item
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
	}
	return repo
}

func (r *fakeMenuRepo) Create(item *models.MenuItem) error {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return nil
}

func (r *fakeMenuRepo) GetByID(id uint) (*models.MenuItem, error) {
	if r.failIDs[id] {
		return nil, errors.New("read timeout")
	}
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := item
	return &copied, nil
}

func (r *fakeMenuRepo) GetByIDs(ids []uint) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeMenuRepo) GetAll(category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range r.items {
		if category == "" || item.Category == category {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeMenuRepo) GetEnabled(category string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	for _, item := range r.items {
		if item.Enabled && (category == "" || item.Category == category) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *fakeMenuRepo) Update(item *models.MenuItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeMenuRepo) Delete(id uint) error {
	delete(r.items, id)
	return nil
}

type fakeOrderRepo struct {
	menu       *fakeMenuRepo
	orders     map[uint]models.Order
	nextID     uint
	decrements []repository.StockDecrement
}

func newFakeOrderRepo(menu *fakeMenuRepo) *fakeOrderRepo {
	return &fakeOrderRepo{menu: menu, orders: make(map[uint]models.Order), nextID: 1}
}

// CreateWithStockDecrement mimics the transactional conditional decrement:
// either every line succeeds and the order is stored, or nothing changes.
func (r *fakeOrderRepo) CreateWithStockDecrement(order *models.Order, decrements []repository.StockDecrement) error {
	updated := make(map[uint]models.MenuItem)
	for _, d := range decrements {
		item, ok := r.menu.items[d.MenuItemID]
		if pending, dirty := updated[d.MenuItemID]; dirty {
			item = pending
		}
		if !ok {
			return &repository.InsufficientStockError{MenuItemID: d.MenuItemID, ItemName: d.ItemName}
		}
		if item.Stock == models.UnlimitedStock {
			continue
		}
		if item.Stock < d.Quantity {
			return &repository.InsufficientStockError{MenuItemID: d.MenuItemID, ItemName: d.ItemName}
		}
		item.Stock -= d.Quantity
		updated[d.MenuItemID] = item
	}

	for id, item := range updated {
		r.menu.items[id] = item
	}
	r.decrements = append(r.decrements, decrements...)

	order.ID = r.nextID
	r.nextID++
	for i := range order.Lines {
		order.Lines[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := order
	return &copied, nil
}

func (r *fakeOrderRepo) GetByRef(ref string) (*models.Order, error) {
	for _, order := range r.orders {
		if order.OrderRef == ref {
			copied := order
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetByUserID(userID uint, statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		if len(statuses) == 0 || containsStatus(statuses, order.Status) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) GetAll(statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	for _, order := range r.orders {
		if len(statuses) == 0 || containsStatus(statuses, order.Status) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(id uint, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	r.orders[id] = order
	return nil
}

func (r *fakeOrderRepo) Delete(id uint) error {
	delete(r.orders, id)
	return nil
}

func containsStatus(statuses []models.OrderStatus, status models.OrderStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

type fakeCartStore struct {
	carts map[uint]map[uint]int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: make(map[uint]map[uint]int)}
}

func (s *fakeCartStore) SetCartItem(userID, itemID uint, quantity int) error {
	cart, ok := s.carts[userID]
	if !ok {
		cart = make(map[uint]int)
		s.carts[userID] = cart
	}
	if quantity == 0 {
		delete(cart, itemID)
		return nil
	}
	cart[itemID] = quantity
	return nil
}

func (s *fakeCartStore) GetCart(userID uint) (map[uint]int, error) {
	cart := make(map[uint]int, len(s.carts[userID]))
	for id, qty := range s.carts[userID] {
		cart[id] = qty
	}
	return cart, nil
}

func (s *fakeCartStore) ClearCart(userID uint) error {
	delete(s.carts, userID)
	return nil
}

type fakeIdemStore struct {
	reserved  map[string]bool
	orders    map[string]uint
	recordErr error
}

func newFakeIdemStore() *fakeIdemStore {
	return &fakeIdemStore{reserved: make(map[string]bool), orders: make(map[string]uint)}
}

func (s *fakeIdemStore) ReserveCheckout(key string) (bool, error) {
	if s.reserved[key] {
		return false, nil
	}
	s.reserved[key] = true
	return true, nil
}

func (s *fakeIdemStore) RecordCheckoutOrder(key string, orderID uint) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.orders[key] = orderID
	return nil
}

func (s *fakeIdemStore) GetCheckoutOrder(key string) (uint, bool, error) {
	orderID, ok := s.orders[key]
	return orderID, ok, nil
}

func (s *fakeIdemStore) ReleaseCheckout(key string) error {
	delete(s.reserved, key)
	delete(s.orders, key)
	return nil
}

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := user
	return &copied, nil
}

func (r *fakeUserRepo) GetByIdentifier(identifier string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == identifier || user.Phone == identifier {
			copied := user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ExistsByEmailPhoneOrUsername(email, phone, username string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email || user.Phone == phone || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) GetCustomers(status string) ([]models.User, error) {
	var users []models.User
	for _, user := range r.users {
		if user.Role == string(models.RoleAdmin) {
			continue
		}
		if status == "" || user.Status == status {
			users = append(users, user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateStatus(id uint, status string) error {
	user, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Status = status
	r.users[id] = user
	return nil
}

var _ repository.MenuRepository = (*fakeMenuRepo)(nil)
var _ repository.OrderRepository = (*fakeOrderRepo)(nil)
var _ repository.UserRepository = (*fakeUserRepo)(nil)
var _ CartStore = (*fakeCartStore)(nil)
var _ IdempotencyStore = (*fakeIdemStore)(nil)
