package inventory

// Session wires a ProductStore and a CategoryStore over a single API client.
// Both stores share the client but hold independent state.
type Session struct {
	products   *ProductStore
	categories *CategoryStore
}

// NewSession constructs a session over the given client.
func NewSession(client *Client) *Session {
	if client == nil {
		panic("inventory: NewSession called with nil client")
	}
	return &Session{
		products:   newProductStore(client),
		categories: newCategoryStore(client),
	}
}

// Products returns the session's product store. Using a zero-value Session
// is a programming error and fails loudly rather than silently no-opping.
func (s *Session) Products() *ProductStore {
	if s == nil || s.products == nil {
		panic("inventory: Products called on uninitialized Session, use NewSession")
	}
	return s.products
}

// Categories returns the session's category store, with the same
// initialization contract as Products.
func (s *Session) Categories() *CategoryStore {
	if s == nil || s.categories == nil {
		panic("inventory: Categories called on uninitialized Session, use NewSession")
	}
	return s.categories
}
