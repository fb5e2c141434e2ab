package db

import (
	"log"
	"os"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=truthpill port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial data
	seedCategories(DB)
	seedAdSlots(DB)
}

// Migrate 执行全部模型迁移，测试用内存库复用同一份表结构
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Article{},
		&models.Comment{},
		&models.Reaction{},
		&models.Bookmark{},
		// 通讯相关模型
		&models.Subscriber{},
		&models.QueuedEmail{},
		// 广告与统计
		&models.AdSlot{},
		&models.PageView{},
	)
}

func seedCategories(gdb *gorm.DB) {
	var count int64
	gdb.Model(&models.Category{}).Count(&count)
	if count > 0 {
		log.Println("Categories already seeded, skipping")
		return
	}

	categories := []models.Category{
		{Name: "Health", Slug: "health", Description: "Evidence-based health and medicine"},
		{Name: "Science", Slug: "science", Description: "Research, studies and what they actually say"},
		{Name: "Society", Slug: "society", Description: "Culture, policy and public debate"},
		{Name: "Opinion", Slug: "opinion", Description: "Editorials and guest columns"},
	}

	for _, cat := range categories {
		if err := gdb.Create(&cat).Error; err != nil {
			log.Printf("Failed to create category %s: %v", cat.Name, err)
		}
	}
	log.Println("Initial categories created successfully")
}

func seedAdSlots(gdb *gorm.DB) {
	var count int64
	gdb.Model(&models.AdSlot{}).Count(&count)
	if count > 0 {
		return
	}

	// 预置广告位，默认关闭，后台启用并填入广告代码
	slots := []models.AdSlot{
		{Name: "article_top"},
		{Name: "article_bottom"},
		{Name: "sidebar"},
	}
	for _, slot := range slots {
		if err := gdb.Create(&slot).Error; err != nil {
			log.Printf("Failed to create ad slot %s: %v", slot.Name, err)
		}
	}
	log.Println("Default ad slots created")
}
