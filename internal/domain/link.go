package domain

// Link is one short-code to long-URL mapping. Rows are created and managed
// out-of-band; this service only reads them and bumps ClickCount.
type Link struct {
	ID         int64   `gorm:"primaryKey;column:id" json:"id"`
	ShortCode  string  `gorm:"column:short_code;size:20;not null;uniqueIndex" json:"short_code"`
	Title      *string `gorm:"column:title;size:200" json:"title,omitempty"`
	LongURL    string  `gorm:"column:long_url;size:2048;not null" json:"long_url"`
	ClickCount uint    `gorm:"column:click_count;not null;default:0" json:"click_count"`
	CreatorID  *int64  `gorm:"column:creator_id" json:"creator_id,omitempty"`
	Deleted    bool    `gorm:"column:deleted;not null;default:false" json:"deleted"`
}

// TableName returns the table name for GORM
func (Link) TableName() string {
	return "urls"
}
