package useragent

import (
	"fmt"
	"os"
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

// Classifier answers one question about a User-Agent string: bot or not.
type Classifier struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// Substrings that mark a crawler even when the regex set misses it.
var botIndicators = []string{
	"googlebot", "bingbot", "slurp", "duckduckbot", "baiduspider",
	"yandexbot", "facebookexternalhit", "twitterbot", "linkedinbot",
	"whatsapp", "telegrambot", "skypeuripreview", "bot", "crawler",
	"spider", "scraper", "curl", "wget", "python-requests",
}

// NewClassifier creates a classifier. With an empty regexesPath the parser
// definitions compiled into uap-go are used, so no asset file is required.
func NewClassifier(regexesPath string, log *zap.Logger) (*Classifier, error) {
	if regexesPath == "" {
		return &Classifier{parser: uaparser.NewFromSaved(), log: log}, nil
	}

	regexBytes, err := os.ReadFile(regexesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read regexes file: %w", err)
	}

	parser, err := uaparser.NewFromBytes(regexBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create User-Agent parser: %w", err)
	}

	log.Info("User-Agent parser initialized", zap.String("regexes_file", regexesPath))
	return &Classifier{parser: parser, log: log}, nil
}

// IsBot classifies a raw User-Agent string. An empty string is not a bot;
// a browser that sends nothing is more likely a privacy tool than a crawler.
func (c *Classifier) IsBot(userAgent string) bool {
	if userAgent == "" {
		return false
	}

	client := c.parser.Parse(userAgent)

	// uap marks crawlers with the Spider device family.
	if client.Device.Family == "Spider" {
		return true
	}

	lower := strings.ToLower(userAgent)
	family := strings.ToLower(client.UserAgent.Family)
	for _, indicator := range botIndicators {
		if strings.Contains(lower, indicator) || strings.Contains(family, indicator) {
			return true
		}
	}

	return false
}
