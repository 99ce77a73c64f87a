package entity

import (
	"errors"
	"strings"
)

var (
	ErrInvalidItem  = errors.New("cart item must have a non-empty id")
	ErrItemNotFound = errors.New("item not found in cart")
)

// LineItem is one product entry in the cart. The JSON field names are the
// persisted snapshot format.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Product describes an item being added; quantity is owned by the cart.
type Product struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

func (p Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrInvalidItem
	}
	return nil
}

type Summary struct {
	ItemCount int     `json:"item_count"`
	Total     float64 `json:"total"`
}

// Cart is an insertion-ordered sequence of line items with unique ids.
type Cart struct {
	Items []LineItem `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: make([]LineItem, 0)}
}

// NewCartFromItems rebuilds a cart from persisted items, dropping entries that
// could never have been written by a valid mutation. The second return value
// reports how many items were dropped.
func NewCartFromItems(items []LineItem) (*Cart, int) {
	c := NewCart()
	dropped := 0
	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" || item.Quantity <= 0 {
			dropped++
			continue
		}
		if existing, _ := c.GetItem(item.ID); existing != nil {
			existing.Quantity += item.Quantity
			dropped++
			continue
		}
		c.Items = append(c.Items, item)
	}
	return c, dropped
}

func (c *Cart) GetItem(id string) (*LineItem, int) {
	for i, item := range c.Items {
		if item.ID == id {
			return &c.Items[i], i
		}
	}
	return nil, -1
}

// AddProduct bumps the quantity of an existing line or appends a new one at 1.
func (c *Cart) AddProduct(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if item, _ := c.GetItem(p.ID); item != nil {
		item.Quantity++
		return nil
	}

	c.Items = append(c.Items, LineItem{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: 1,
	})
	return nil
}

func (c *Cart) Increment(id string) error {
	item, _ := c.GetItem(id)
	if item == nil {
		return ErrItemNotFound
	}
	item.Quantity++
	return nil
}

// Decrement lowers the quantity by one and drops the line when it reaches zero.
func (c *Cart) Decrement(id string) error {
	item, index := c.GetItem(id)
	if item == nil {
		return ErrItemNotFound
	}

	if item.Quantity <= 1 {
		c.Items = append(c.Items[:index], c.Items[index+1:]...)
		return nil
	}
	item.Quantity--
	return nil
}

func (c *Cart) Clear() {
	c.Items = make([]LineItem, 0)
}

func (c *Cart) Summary() Summary {
	var s Summary
	for _, item := range c.Items {
		s.ItemCount += item.Quantity
		s.Total += item.Price * float64(item.Quantity)
	}
	return s
}

// Clone returns a deep copy so callers never share the backing array.
func (c *Cart) Clone() *Cart {
	items := make([]LineItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items}
}
