package config

import "time"

type Catalog struct {
	FeedURL          string        `env:"CATALOG_FEED_URL"`
	RefreshInterval  time.Duration `env:"CATALOG_REFRESH_INTERVAL" envDefault:"5m"`
	HotDealThreshold int           `env:"CATALOG_HOT_DEAL_THRESHOLD" envDefault:"40"`
}
