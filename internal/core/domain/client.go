package domain

type Client struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Address     string `db:"address"`
	PhoneNumber string `db:"phone_number"`
}

func NewClient(name, address, phoneNumber string) *Client {
	return &Client{
		Name:        name,
		Address:     address,
		PhoneNumber: phoneNumber,
	}
}

// Apply copies the values in changes onto the client. Unknown fields are ignored.
func (c *Client) Apply(changes Changes) {
	for field, value := range changes {
		switch field {
		case FieldName:
			c.Name = value
		case FieldAddress:
			c.Address = value
		case FieldPhoneNumber:
			c.PhoneNumber = value
		}
	}
}
