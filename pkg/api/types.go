package api

// Role is the closed set of account roles the storefront understands.
type Role string

const (
	// RoleAdministrator grants access to the admin dashboard.
	RoleAdministrator Role = "administrator"

	// RoleCustomer is an ordinary shopper account.
	RoleCustomer Role = "customer"
)

// Admin reports whether the role passes the admin gate. The gate is
// advisory: the remote API re-authorizes every privileged operation.
func (r Role) Admin() bool {
	return r == RoleAdministrator
}

// User is the profile body returned by the profile endpoint.
type User struct {
	ID             string  `json:"_id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Username       string  `json:"username"`
	AccountBalance float64 `json:"accountBalance"`
	Role           Role    `json:"role"`
}

// ProductInput is the create-request body. Price stays a string on the
// wire; the remote API owns numeric validation.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"imageUrls"`
}

// Product is a created resource as echoed by the remote API. The ID is
// assigned server-side; the client never fabricates one.
type Product struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	ImageURLs   []string `json:"imageUrls"`
}
