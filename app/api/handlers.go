package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/unicode/norm"

	"linkfeed/app/cfg"
	"linkfeed/app/config"
	"linkfeed/app/database"
	"linkfeed/app/feed"
)

// maxTitleLength bounds titles so a runaway payload cannot wreck
// feed-reader rendering
const maxTitleLength = 500

func NewHandler(itemRepo database.ItemRepository, channel *config.ChannelConfig) *Handler {
	return &Handler{
		itemRepo:  itemRepo,
		generator: feed.NewGenerator(),
		channel:   channel,
	}
}

type addItemRequest struct {
	Link  string `json:"link" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// AddItem stores a submitted link. Re-submitting an already stored link is a
// success for the caller (a save shortcut re-tapped on the same page), but the
// stored row stays untouched.
func (h *Handler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "link and title are required"})
		return
	}

	link := strings.TrimSpace(req.Link)
	if err := validateLink(link); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title := norm.NFC.String(strings.TrimSpace(req.Title))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		return
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title exceeds maximum length"})
		return
	}

	item, err := h.itemRepo.Insert(c.Request.Context(), link, title)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateLink) {
			slog.Info("Duplicate link submitted", "link", link)
			c.JSON(http.StatusOK, gin.H{"status": "ok", "duplicate": true})
			return
		}
		slog.Error("Database error", "operation", "insert_item", "link", link, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store link"})
		return
	}

	slog.Info("Link stored", "id", item.ID, "link", item.Link)
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "id": item.ID})
}

// GetFeed renders the RSS document from the most recent stored items.
// Every fetch re-reads the store; at personal-archive volumes a cache
// would cost more than it saves.
func (h *Handler) GetFeed(c *gin.Context) {
	items, err := h.itemRepo.ListRecent(c.Request.Context(), h.channel.Settings.MaxItems)
	if err != nil {
		slog.Error("Database error", "operation", "list_recent", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(h.channel.Channel, items)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(items)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   cfg.Get().Version,
	}

	if count, err := h.itemRepo.GetItemCount(c.Request.Context()); err == nil {
		health["items"] = count
	}

	c.JSON(http.StatusOK, health)
}

// validateLink requires a syntactically valid absolute http(s) URL
func validateLink(link string) error {
	if link == "" {
		return errors.New("link must not be empty")
	}

	u, err := url.Parse(link)
	if err != nil {
		return errors.New("link is not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("link must be an absolute http or https URL")
	}
	if u.Host == "" {
		return errors.New("link must include a host")
	}

	return nil
}
