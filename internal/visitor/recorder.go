package visitor

import (
	"Relink-Backend/internal/domain"
	"Relink-Backend/internal/repository"
	"context"

	"go.uber.org/zap"
)

// BotClassifier classifies a raw User-Agent string.
type BotClassifier interface {
	IsBot(userAgent string) bool
}

// CountryResolver maps an IP address to a 2-letter country code, "" on miss.
type CountryResolver interface {
	Country(ip string) string
}

// Recorder turns a Visit into one Engagement row. Writes are detached: the
// caller never waits and never learns whether the insert succeeded.
type Recorder struct {
	sink repository.EngagementSink
	bots BotClassifier
	geo  CountryResolver
	log  *zap.Logger
}

func NewRecorder(sink repository.EngagementSink, bots BotClassifier, geo CountryResolver, log *zap.Logger) *Recorder {
	return &Recorder{
		sink: sink,
		bots: bots,
		geo:  geo,
		log:  log,
	}
}

// RecordAndForget starts the engagement write and returns immediately.
// Failures (including panics in the classifier or geo lookup) are logged and
// discarded; there is no retry and no backpressure.
func (rec *Recorder) RecordAndForget(v *Visit) {
	go func() {
		defer func() {
			if p := recover(); p != nil {
				rec.log.Error("panic while recording engagement",
					zap.String("code", v.ShortCode), zap.Any("panic", p))
			}
		}()

		// The request context is gone by now; the write gets its own.
		if err := rec.sink.RecordEngagement(context.Background(), rec.build(v)); err != nil {
			rec.log.Error("failed to record engagement",
				zap.String("code", v.ShortCode), zap.Error(err))
		}
	}()
}

func (rec *Recorder) build(v *Visit) *domain.Engagement {
	country := v.CountryHint
	if country == "" && v.IP != "" && rec.geo != nil {
		country = rec.geo.Country(v.IP)
	}

	isBot := false
	if rec.bots != nil {
		isBot = rec.bots.IsBot(v.UserAgent)
	}

	return &domain.Engagement{
		ShortCode:       v.ShortCode,
		IP:              optional(v.IP),
		Country:         optional(country),
		Referer:         optional(v.Referer),
		UserAgent:       optional(v.UserAgent),
		IsBot:           isBot,
		SecChUa:         optional(v.SecChUa),
		SecChUaMobile:   optional(v.SecChUaMobile),
		SecChUaPlatform: optional(v.SecChUaPlatform),
	}
}

// optional maps "" to NULL so absent headers stay absent in storage.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
