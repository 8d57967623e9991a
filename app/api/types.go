package api

import (
	"linkfeed/app/config"
	"linkfeed/app/database"
	"linkfeed/app/feed"
)

type GeneratorInterface interface {
	Run(channel config.ChannelInfo, items []database.Item) (string, error)
}

var _ GeneratorInterface = (*feed.Generator)(nil)

type Handler struct {
	itemRepo  database.ItemRepository
	generator GeneratorInterface
	channel   *config.ChannelConfig
}
