package models

import "printshop/db"

func Init() {
	db.Instance.AutoMigrate(&SizeOption{})
	db.Instance.AutoMigrate(&FramePrice{})
}
