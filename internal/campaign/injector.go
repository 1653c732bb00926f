package campaign

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"
)

// Rule appends one generated query parameter to the redirect target of a
// reserved code. Value is a template: "{nonce}" expands to a zero-padded
// decimal of NonceWidth digits, "{time}" to the current time in UTC+8.
// The expanded value is URL-encoded as a whole, literal text included.
type Rule struct {
	Code       string `yaml:"code"`
	Param      string `yaml:"param"`
	Value      string `yaml:"value"`
	NonceWidth int    `yaml:"nonce_width"`
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Campaign times are rendered in a fixed +8 offset regardless of host zone.
var tzUTC8 = time.FixedZone("UTC+8", 8*60*60)

const timeLayout = "2006-01-02 15:04"

// Injector rewrites redirect targets for codes with a campaign rule.
// Codes match case-insensitively; everything else passes through unchanged.
type Injector struct {
	rules   map[string]Rule
	log     *zap.Logger
	now     func() time.Time
	randInt func(n int64) int64
}

// New builds an injector from an explicit rule list.
func New(rules []Rule, log *zap.Logger) (*Injector, error) {
	byCode := make(map[string]Rule, len(rules))
	for _, rule := range rules {
		if rule.Code == "" || rule.Param == "" {
			return nil, fmt.Errorf("campaign rule needs code and param, got %+v", rule)
		}
		if strings.Contains(rule.Value, "{nonce}") && rule.NonceWidth <= 0 {
			return nil, fmt.Errorf("campaign rule %q uses {nonce} without nonce_width", rule.Code)
		}
		byCode[strings.ToLower(rule.Code)] = rule
	}

	return &Injector{
		rules:   byCode,
		log:     log,
		now:     time.Now,
		randInt: rand.Int64N,
	}, nil
}

// Load reads the rule table from a yaml file. An empty path yields an
// injector with no rules, so campaigns stay optional configuration.
func Load(path string, log *zap.Logger) (*Injector, error) {
	if path == "" {
		return New(nil, log)
	}

	var file ruleFile
	if err := cleanenv.ReadConfig(path, &file); err != nil {
		return nil, fmt.Errorf("failed to read campaign rules from %s: %w", path, err)
	}

	injector, err := New(file.Rules, log)
	if err != nil {
		return nil, err
	}

	log.Info("loaded campaign rules", zap.String("path", path), zap.Int("rules", len(file.Rules)))
	return injector, nil
}

// Inject returns the final redirect target for code. Pure data
// transformation: no storage access, no side effects.
func (i *Injector) Inject(code, longURL string) string {
	rule, ok := i.rules[strings.ToLower(code)]
	if !ok {
		return longURL
	}

	return longURL + "?" + rule.Param + "=" + url.QueryEscape(i.expand(rule))
}

func (i *Injector) expand(rule Rule) string {
	value := rule.Value

	if strings.Contains(value, "{nonce}") {
		nonce := fmt.Sprintf("%0*d", rule.NonceWidth, i.randInt(pow10(rule.NonceWidth)))
		value = strings.ReplaceAll(value, "{nonce}", nonce)
	}
	if strings.Contains(value, "{time}") {
		value = strings.ReplaceAll(value, "{time}", i.now().In(tzUTC8).Format(timeLayout))
	}

	return value
}

func pow10(k int) int64 {
	n := int64(1)
	for ; k > 0; k-- {
		n *= 10
	}
	return n
}
