package models

import "strings"

type Client struct {
	Id           uint   `json:"id" gorm:"primaryKey"`
	ClientName   string `json:"client_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Active       bool   `json:"-"`
}

// DisplayName picks the best available label: the explicit client name,
// then first+last name, then the business name. A client with none of
// the three is still displayable as "Unknown Client".
func (c *Client) DisplayName() string {
	if name := strings.TrimSpace(c.ClientName); name != "" {
		return name
	}
	full := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if full != "" {
		return full
	}
	if name := strings.TrimSpace(c.BusinessName); name != "" {
		return name
	}
	return "Unknown Client"
}
