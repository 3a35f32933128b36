package database

import (
	"fmt"
	"log"

	"github.com/riaz37/portfolio-backend/internal/config"
	"github.com/riaz37/portfolio-backend/internal/model"
	"github.com/riaz37/portfolio-backend/internal/progress"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// In release mode migrations only run when forced with -migrate, so a
	// routine restart cannot alter the schema.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.CareerPath{},
			&model.LearningPath{},
			&model.Skill{},
			&model.Resource{},
			&model.ProgressSnapshot{},
			&model.CompletionRecord{},
			&model.StreakState{},
			&model.Subscriber{},
		)
		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")

		if err := seedCurriculum(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// seedCurriculum inserts the default curriculum when the database is empty.
// The prerequisite graph is validated before anything is written: a cyclic
// curriculum would leave its skills permanently locked.
func seedCurriculum(db *gorm.DB) error {
	var count int64
	db.Model(&model.CareerPath{}).Count(&count)
	if count > 0 {
		return nil
	}

	career := model.CareerPath{
		UUIDBase:    model.UUIDBase{ID: "career-fullstack"},
		Title:       "Full-Stack Developer",
		Description: "From web fundamentals to production backends.",
		Icon:        "code",
		Position:    1,
	}

	paths := []model.LearningPath{
		{
			UUIDBase:      model.UUIDBase{ID: "path-web-foundations"},
			CareerPathID:  career.ID,
			Title:         "Web Foundations",
			Description:   "HTML, CSS and the JavaScript needed for everything else.",
			Difficulty:    model.Beginner,
			EstimatedTime: "6 weeks",
			Position:      1,
		},
		{
			UUIDBase:      model.UUIDBase{ID: "path-backend-go"},
			CareerPathID:  career.ID,
			Title:         "Backend Development with Go",
			Description:   "HTTP services, persistence and deployment.",
			Difficulty:    model.Intermediate,
			EstimatedTime: "8 weeks",
			Position:      2,
		},
	}

	skills := []model.Skill{
		{
			UUIDBase:       model.UUIDBase{ID: "skill-html-css"},
			LearningPathID: "path-web-foundations",
			Name:           "HTML & CSS",
			Level:          model.Beginner,
			Position:       1,
			Prerequisites:  model.NewStringSet(),
		},
		{
			UUIDBase:       model.UUIDBase{ID: "skill-javascript"},
			LearningPathID: "path-web-foundations",
			Name:           "JavaScript Essentials",
			Level:          model.Beginner,
			Position:       2,
			Prerequisites:  model.NewStringSet("skill-html-css"),
		},
		{
			UUIDBase:       model.UUIDBase{ID: "skill-go-basics"},
			LearningPathID: "path-backend-go",
			Name:           "Go Basics",
			Level:          model.Intermediate,
			Position:       1,
			Prerequisites:  model.NewStringSet(),
		},
		{
			UUIDBase:       model.UUIDBase{ID: "skill-go-web"},
			LearningPathID: "path-backend-go",
			Name:           "Web Services in Go",
			Level:          model.Intermediate,
			Position:       2,
			Prerequisites:  model.NewStringSet("skill-go-basics"),
		},
	}

	resources := []model.Resource{
		{UUIDBase: model.UUIDBase{ID: "res-html-intro"}, SkillID: "skill-html-css", Title: "HTML Crash Course", Type: model.Video, Level: model.Beginner, URL: "https://example.com/html", Tags: model.NewStringSet("html", "frontend"), Position: 1},
		{UUIDBase: model.UUIDBase{ID: "res-css-layout"}, SkillID: "skill-html-css", Title: "CSS Layout Guide", Type: model.Article, Level: model.Beginner, URL: "https://example.com/css", Tags: model.NewStringSet("css", "frontend"), Position: 2},
		{UUIDBase: model.UUIDBase{ID: "res-js-basics"}, SkillID: "skill-javascript", Title: "JavaScript Fundamentals", Type: model.Course, Level: model.Beginner, URL: "https://example.com/js", Tags: model.NewStringSet("javascript"), Position: 1},
		{UUIDBase: model.UUIDBase{ID: "res-js-dom"}, SkillID: "skill-javascript", Title: "Working with the DOM", Type: model.Practice, Level: model.Beginner, Tags: model.NewStringSet("javascript", "dom"), Position: 2, CodeLanguage: "javascript"},
		{UUIDBase: model.UUIDBase{ID: "res-go-tour"}, SkillID: "skill-go-basics", Title: "A Tour of Go", Type: model.Documentation, Level: model.Intermediate, URL: "https://go.dev/tour", Tags: model.NewStringSet("go"), Position: 1},
		{UUIDBase: model.UUIDBase{ID: "res-go-http"}, SkillID: "skill-go-web", Title: "Building HTTP Services", Type: model.Article, Level: model.Intermediate, URL: "https://example.com/go-http", Tags: model.NewStringSet("go", "http"), Position: 1},
	}

	graph := make(map[string][]string, len(skills))
	for _, s := range skills {
		graph[s.ID] = s.Prerequisites
	}
	if err := progress.ValidateGraph(graph); err != nil {
		return fmt.Errorf("seed curriculum: %w", err)
	}

	if err := db.Create(&career).Error; err != nil {
		return err
	}
	if err := db.Create(&paths).Error; err != nil {
		return err
	}
	if err := db.Create(&skills).Error; err != nil {
		return err
	}
	if err := db.Create(&resources).Error; err != nil {
		return err
	}

	log.Println("Default curriculum seeded")
	return nil
}
