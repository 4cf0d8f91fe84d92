package line

// Config represents the configuration for the LINE Login client
type Config struct {
	// ChannelID is the LINE Login channel ID
	ChannelID string

	// ChannelSecret is the LINE Login channel secret
	ChannelSecret string

	// CallbackURL is the redirect URL registered with the channel
	CallbackURL string

	// AuthorizeURL is the LINE authorization endpoint
	AuthorizeURL string

	// TokenURL is the LINE token endpoint
	TokenURL string

	// ProfileURL is the LINE profile endpoint
	ProfileURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ChannelID == "" {
		return ErrInvalidConfig
	}
	if c.ChannelSecret == "" {
		return ErrInvalidConfig
	}
	if c.CallbackURL == "" {
		return ErrInvalidConfig
	}
	if c.AuthorizeURL == "" {
		return ErrInvalidConfig
	}
	if c.TokenURL == "" {
		return ErrInvalidConfig
	}
	if c.ProfileURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
