package model

import "gorm.io/gorm"

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Meeting{},
		&Area{},
		&Group{},
		&Location{},
		&Session{},
		&Document{},
		&Download{},
		&RFC{},
		&RFCUpdate{},
		&RFCObsolete{},
		&Author{},
		&DocFormat{},
		&Keyword{},
		&Presentation{},
		&Setting{},
	)
}
