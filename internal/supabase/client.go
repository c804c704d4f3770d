package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
	"marketing-studio-backend/internal/config"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// NewServiceClient builds a client authenticated with the data API key, which
// is the service role key when one is configured.
func NewServiceClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.DataAPIKey(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase service client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}
