package domain

// ClientAccountSuffix is appended to the name of the client created for a
// self-registered user.
const ClientAccountSuffix = " (Minha Conta)"

// Client is a billing entity owned by exactly one User.
type Client struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// House is a metered property belonging to a Client.
type House struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Label    string `json:"label"`
	Address  string `json:"address"`
}
