package domain

import "time"

// Engagement is one recorded visit. Rows are write-once: there is no
// UpdatedAt column and nothing in the service mutates them after insert.
type Engagement struct {
	ID              int64     `gorm:"primaryKey;column:id" json:"id"`
	ShortCode       string    `gorm:"column:short_code;size:20;not null;index" json:"short_code"`
	IP              *string   `gorm:"column:ip;size:45" json:"ip,omitempty"`
	Country         *string   `gorm:"column:country;size:2" json:"country,omitempty"` // ISO country code
	Referer         *string   `gorm:"column:referer;size:2048" json:"referer,omitempty"`
	UserAgent       *string   `gorm:"column:user_agent;size:2048" json:"user_agent,omitempty"`
	IsBot           bool      `gorm:"column:is_bot" json:"is_bot"`
	SecChUa         *string   `gorm:"column:sec_ch_ua;size:200" json:"sec_ch_ua,omitempty"`
	SecChUaMobile   *string   `gorm:"column:sec_ch_ua_mobile;size:50" json:"sec_ch_ua_mobile,omitempty"`
	SecChUaPlatform *string   `gorm:"column:sec_ch_ua_platform;size:50" json:"sec_ch_ua_platform,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for GORM
func (Engagement) TableName() string {
	return "engagements"
}
