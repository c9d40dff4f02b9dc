package bank

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

var lastClientID atomic.Int64

type Client struct {
	id        int64
	surname   string
	givenName string
	email     string
	phone     string

	mu       sync.Mutex
	accounts []*Account
}

func NewClient(surname, givenName, email, phone string) *Client {
	return &Client{
		id:        lastClientID.Add(1),
		surname:   surname,
		givenName: givenName,
		email:     email,
		phone:     phone,
	}
}

func (c *Client) ID() int64         { return c.id }
func (c *Client) Surname() string   { return c.surname }
func (c *Client) GivenName() string { return c.givenName }
func (c *Client) Email() string     { return c.email }
func (c *Client) Phone() string     { return c.phone }

func (c *Client) Name() string {
	return c.surname + " " + c.givenName
}

func (c *Client) AddAccount(a *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, a)
}

// RemoveAccount drops the first occurrence of a. It returns false when the
// client owns no such account.
func (c *Client) RemoveAccount(a *Account) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, owned := range c.accounts {
		if owned == a {
			c.accounts = append(c.accounts[:i], c.accounts[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Client) Accounts() []*Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Client) Info() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %d\n", c.id)
	fmt.Fprintf(&b, "Name: %s\n", c.Name())
	fmt.Fprintf(&b, "Email: %s\n", c.email)
	fmt.Fprintf(&b, "Phone: %s\n", c.phone)
	return b.String()
}
